package validators

import "strings"

// NormalizePhone reduces a phone number to DDD + number: digits only, with a
// leading Brazilian country code stripped.
//
//	"+55 11 99988-7766" -> "11999887766"
//	"(11) 99988-7766"   -> "11999887766"
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, "55") && len(digits) > 11 {
		return digits[2:]
	}
	return digits
}
