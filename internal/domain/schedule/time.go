package schedule

import (
	"fmt"
	"regexp"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ToMinutes converts a strict "HH:MM" string to minutes since midnight.
// Malformed input is an error, never a silent default.
func ToMinutes(hhmm string) (int, error) {
	m := hhmmPattern.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, fmt.Errorf("horário inválido: %q (esperado HH:MM)", hhmm)
	}
	h := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	mm := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return h*60 + mm, nil
}

// FromMinutes renders minutes since midnight as "HH:MM". It round-trips
// ToMinutes for every value in [0, 1440).
func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Overlaps reports whether [startA, startA+durA) intersects
// [startB, startB+durB). All values are minutes since midnight.
func Overlaps(startA, durA, startB, durB int) bool {
	return startA < startB+durB && startA+durA > startB
}
