package logger

import "strings"

// MaskEmail keeps the first character of the local part.
// Example: john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	username, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if username == "" {
		return "***@" + domain
	}

	return username[:1] + "***@" + domain
}

// MaskPhone keeps only the last four digits.
// Example: 010-1234-5678 -> ***-****-5678
func MaskPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) < 4 {
		return "***"
	}
	return "***-****-" + digits[len(digits)-4:]
}
