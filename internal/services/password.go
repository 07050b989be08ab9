package services

import "strings"

const specialChars = "@$!%*?#&"

// StrongPassword enforces the reset-password strength gate: at least 8
// characters with one lowercase, one uppercase, one digit and one special
// character from a fixed set.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return lower && upper && digit && special
}
