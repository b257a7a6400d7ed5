package service

import "unicode"

const (
	// 密码最小长度
	minPasswordLen = 8
	// 密码最大长度, bcrypt ignores anything past 72 bytes
	maxPasswordLen = 64
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IsValidPassword requires 8 to 64 characters drawn from at least three of: digits,
// lower case, upper case, punctuation or symbols.
func IsValidPassword(password string) bool {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return false
	}

	var hasNumber, hasLower, hasUpper, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// 至少包含数字、小写字母、大写字母、特殊字符中的三种
	return boolToInt(hasNumber)+boolToInt(hasLower)+boolToInt(hasUpper)+boolToInt(hasSpecial) >= 3
}
