package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// specialChars is the fixed punctuation set a password must draw from to
// satisfy the special-character rule.
const specialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// PasswordReport holds the five independent facts about a candidate
// password. Each field is computed on its own; validity is their
// conjunction. Recomputed on every keystroke so screens can render live
// per-rule feedback.
type PasswordReport struct {
	MinLength bool
	Uppercase bool
	Lowercase bool
	Digit     bool
	Special   bool
}

// CheckPassword evaluates the candidate against all five rules.
func CheckPassword(password string) PasswordReport {
	// Length counts characters, not bytes
	report := PasswordReport{
		MinLength: utf8.RuneCountInString(password) >= MinPasswordLength,
	}

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			report.Uppercase = true
		case unicode.IsLower(r):
			report.Lowercase = true
		case unicode.IsDigit(r):
			report.Digit = true
		case strings.ContainsRune(specialChars, r):
			report.Special = true
		}
	}

	return report
}

// Valid reports whether every rule passed.
func (r PasswordReport) Valid() bool {
	return r.MinLength && r.Uppercase && r.Lowercase && r.Digit && r.Special
}

// PasswordsMatch reports whether the confirmation is non-empty and identical
// to the password.
func PasswordsMatch(password, confirm string) bool {
	return confirm != "" && password == confirm
}

// Username checks the 3-50 character constraint and returns a message
// suitable for inline display, or "" when the name is acceptable.
func Username(username string) string {
	length := utf8.RuneCountInString(username)
	if length < MinUsernameLength {
		return "Username must be at least 3 characters"
	}
	if length > MaxUsernameLength {
		return "Username must be at most 50 characters"
	}
	return ""
}
