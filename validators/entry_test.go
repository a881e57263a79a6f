package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blocked = []string{"casino", "scam"}

func TestEntryValidatorTrimsAndAccepts(t *testing.T) {
	name, message, err := EntryValidator("  Alice  ", "\tBonjour a tous\n", blocked)
	require.NoError(t, err)

	assert.Equal(t, "Alice", name)
	assert.Equal(t, "Bonjour a tous", message)
}

func TestEntryValidatorRejectsEmpty(t *testing.T) {
	cases := []struct {
		name    string
		message string
	}{
		{"", "hello"},
		{"Alice", ""},
		{"   ", "hello"},
		{"Alice", " \t\n "},
		{"", ""},
	}

	for _, tc := range cases {
		_, _, err := EntryValidator(tc.name, tc.message, blocked)
		assert.ErrorIs(t, err, ErrEntryEmpty, "name=%q message=%q", tc.name, tc.message)
	}
}

func TestEntryValidatorLengthLimits(t *testing.T) {
	longName := strings.Repeat("a", MaxNameLen+1)
	longMessage := strings.Repeat("b", MaxMessageLen+1)

	_, _, err := EntryValidator(longName, "ok", blocked)
	assert.ErrorIs(t, err, ErrEntryTooLong)

	_, _, err = EntryValidator("Alice", longMessage, blocked)
	assert.ErrorIs(t, err, ErrEntryTooLong)

	// Exactly at the limit passes
	_, _, err = EntryValidator(strings.Repeat("a", MaxNameLen), strings.Repeat("b", MaxMessageLen), blocked)
	assert.NoError(t, err)
}

func TestEntryValidatorCountsRunesNotBytes(t *testing.T) {
	// 30 two-byte runes, 60 bytes, still a valid name
	name := strings.Repeat("é", MaxNameLen)

	_, _, err := EntryValidator(name, "hello", blocked)
	assert.NoError(t, err)
}

func TestEntryValidatorBlockedWords(t *testing.T) {
	_, _, err := EntryValidator("Alice", "visit my casino now", blocked)
	assert.ErrorIs(t, err, ErrEntryBlocked)

	// Substring matching triggers inside longer words too
	_, _, err = EntryValidator("Alice", "the scammer returns", blocked)
	assert.ErrorIs(t, err, ErrEntryBlocked)

	// Matching is case sensitive
	_, _, err = EntryValidator("Alice", "CASINO", blocked)
	assert.NoError(t, err)

	// Only the message is scanned
	_, _, err = EntryValidator("casino", "hello", blocked)
	assert.NoError(t, err)
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/tromperie", SafeRedirect("/tromperie"))
	assert.Equal(t, "/verite", SafeRedirect("/verite"))

	for _, bad := range []string{"", "/admin", "https://evil.example", "//evil.example", "/tromperie/../admin"} {
		assert.Equal(t, DefaultRedirect, SafeRedirect(bad), "target %q must be coerced", bad)
	}
}
