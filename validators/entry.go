// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLen    = 30
	MaxMessageLen = 500
)

var (
	ErrEntryEmpty   = errors.New("name and message can't be empty")
	ErrEntryTooLong = errors.New("name or message is too long")
	ErrEntryBlocked = errors.New("message contains a blocked word")
)

// EntryValidator trims and checks a guestbook submission. It returns
// the trimmed name and message so callers persist exactly what was
// validated. Lengths are counted in runes, blocked words match as
// case-sensitive substrings anywhere in the message
func EntryValidator(name, message string, blockedWords []string) (string, string, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)

	if name == "" || message == "" {
		return "", "", ErrEntryEmpty
	}

	if utf8.RuneCountInString(name) > MaxNameLen || utf8.RuneCountInString(message) > MaxMessageLen {
		return "", "", ErrEntryTooLong
	}

	for _, w := range blockedWords {
		if w != "" && strings.Contains(message, w) {
			return "", "", ErrEntryBlocked
		}
	}

	return name, message, nil
}

// allowedRedirects are the only pages a submission may bounce back to
var allowedRedirects = []string{"/tromperie", "/verite"}

// DefaultRedirect is used whenever the client-supplied target isn't
// on the allowlist
const DefaultRedirect = "/tromperie"

// SafeRedirect coerces target onto the allowlist instead of rejecting,
// so a tampered form can never push visitors off-site
func SafeRedirect(target string) string {
	for _, allowed := range allowedRedirects {
		if target == allowed {
			return target
		}
	}

	return DefaultRedirect
}
