package service

import (
	"regexp"
	"strings"

	"github.com/givehub/server/internal/common/constants"
)

// Deliberately loose: one non-whitespace, non-@ run before the @, a dot
// somewhere after it. "a@b.c" passes. Real mailbox verification is out of
// scope, this only catches obvious typos.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeEmail trims surrounding whitespace and lowercases, the canonical
// form stored and matched against.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

func validatePassword(password string) bool {
	return len(password) >= constants.PasswordMinLength
}
