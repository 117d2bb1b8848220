package schedule

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:00", 0, true},
		{"09:60", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
		{"09:00:00", 0, true},
	}

	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ToMinutes(%q): esperava erro, veio %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToMinutes(%q): erro inesperado: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToMinutes(%q) = %d, esperava %d", tc.in, got, tc.want)
		}
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for min := 0; min < 24*60; min++ {
		s := FromMinutes(min)
		got, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("FromMinutes(%d) = %q não é parseável: %v", min, s, err)
		}
		if got != min {
			t.Fatalf("round trip falhou: %d -> %q -> %d", min, s, got)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		startA, durA, startB, durB int
		want                       bool
	}{
		{"identical", 540, 30, 540, 30, true},
		{"partial", 540, 30, 555, 30, true},
		{"contained", 540, 60, 555, 10, true},
		{"adjacent end-start", 540, 30, 570, 30, false},
		{"adjacent start-end", 570, 30, 540, 30, false},
		{"disjoint", 540, 30, 600, 30, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.startA, tc.durA, tc.startB, tc.durB); got != tc.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, esperava %v",
					tc.startA, tc.durA, tc.startB, tc.durB, got, tc.want)
			}
			// A sobreposição é simétrica.
			if got := Overlaps(tc.startB, tc.durB, tc.startA, tc.durA); got != tc.want {
				t.Errorf("Overlaps não é simétrico para %q", tc.name)
			}
		})
	}
}
