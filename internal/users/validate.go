package users

import "unicode"

// ValidUsername reports whether name is a valid username: ASCII letters and
// digits only, at least 3 characters.
func ValidUsername(name string) bool {
	if len(name) < 3 {
		return false
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// ValidPassword reports whether pw satisfies the password policy: at least
// 8 characters, with at least one uppercase letter, one lowercase letter
// and one digit. Special characters are allowed but not required.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
