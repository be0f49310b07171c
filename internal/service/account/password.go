package account

import (
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	// bcrypt refuses longer input
	MaxPasswordBytes = 72
	PasswordSymbols   = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"
)

// StrongPassword reports whether password has at least MinPasswordLength characters and one
// lowercase letter, one uppercase letter, one digit and one of PasswordSymbols.
func StrongPassword(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
