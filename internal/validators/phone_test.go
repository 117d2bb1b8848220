package validators

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(11) 98888-7777", "11988887777"},
		{"+55 11 98888-7777", "11988887777"},
		{"5511988887777", "11988887777"},
		{"11988887777", "11988887777"},
		{"988887777", "988887777"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}
