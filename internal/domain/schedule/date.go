package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dates travel as DD/MM/YYYY on the wire for compatibility with the booking
// agents; callers may also send DD-MM-YYYY or ISO YYYY-MM-DD. Internally
// everything is a time.Time at midnight in the business location, and the
// string form only reappears at the boundary via FormatDate.

// ParseDate normalizes a date string to midnight in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	var day, month, year string
	switch {
	case strings.Contains(raw, "/"):
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("data inválida: %q", raw)
		}
		day, month, year = parts[0], parts[1], parts[2]
	case strings.Contains(raw, "-"):
		parts := strings.Split(raw, "-")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("data inválida: %q", raw)
		}
		if len(parts[0]) == 4 {
			year, month, day = parts[0], parts[1], parts[2]
		} else {
			day, month, year = parts[0], parts[1], parts[2]
		}
	default:
		return time.Time{}, fmt.Errorf("data inválida: %q (use DD/MM/YYYY, DD-MM-YYYY ou YYYY-MM-DD)", raw)
	}

	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	y, err3 := strconv.Atoi(year)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("data inválida: %q", raw)
	}

	t, err := time.ParseInLocation("02/01/2006", fmt.Sprintf("%02d/%02d/%04d", d, m, y), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida: %q", raw)
	}
	return t, nil
}

// FormatDate renders a date as DD/MM/YYYY, the wire and storage display form.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// At combines a calendar day with a minutes-since-midnight offset into an
// absolute instant in loc. The day's own location is ignored: rows loaded
// from the database may carry UTC even though the day is a business-local
// date.
func At(date time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc)
}
