package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// phoneRe accepts international phone-like strings: optional +, then 7 to 15
// digits with common separators.
var phoneRe = regexp.MustCompile(`^\+?[0-9](?:[0-9\s\-().]{5,18})[0-9]$`)

// IsPhoneLike reports whether s looks like a phone number.
func IsPhoneLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return phoneRe.MatchString(s)
}

// emailRe is a pragmatic address shape check, not an RFC parser.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}
