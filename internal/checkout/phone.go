package checkout

import "strings"

// Nigerian numbering plan: 11 digits starting with 0, or the same
// number with the 234 country code (13 digits), with or without a plus.

func digitsOf(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, phone)
}

func ValidPhone(phone string) bool {
	digits := digitsOf(phone)

	if len(digits) == 13 && strings.HasPrefix(digits, "234") {
		return true
	}

	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		return true
	}

	return false
}

// NormalizePhone converts a valid number to the canonical +234 form.
// Input that does not match the numbering plan is returned unchanged.
func NormalizePhone(phone string) string {
	digits := digitsOf(phone)

	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		return "+234" + digits[1:]
	}

	if len(digits) == 13 && strings.HasPrefix(digits, "234") {
		return "+" + digits
	}

	return phone
}
