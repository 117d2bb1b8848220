package schedule

import (
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	cases := []string{"25/12/2026", "25-12-2026", "2026-12-25"}
	for _, in := range cases {
		got, err := ParseDate(in, loc)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if got.Year() != 2026 || got.Month() != time.December || got.Day() != 25 {
			t.Errorf("ParseDate(%q) = %v", in, got)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("ParseDate(%q) não está à meia-noite: %v", in, got)
		}
		if got.Location() != loc {
			t.Errorf("ParseDate(%q) fora da localização do negócio", in)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	loc := time.UTC
	for _, in := range []string{"", "amanhã", "32/01/2026", "12/13/2026", "25.12.2026", "25/12"} {
		if _, err := ParseDate(in, loc); err == nil {
			t.Errorf("ParseDate(%q): esperava erro", in)
		}
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	loc := time.UTC
	d, err := ParseDate("03/07/2026", loc)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDate(d); got != "03/07/2026" {
		t.Errorf("FormatDate = %q, esperava 03/07/2026", got)
	}
}

func TestAt(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	// O dia pode chegar em UTC do banco; o instante sai na localização pedida.
	d := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	got := At(d, 9*60+30, loc)
	want := time.Date(2026, 1, 10, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("At = %v, esperava %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("At fora da localização pedida: %v", got.Location())
	}
}
