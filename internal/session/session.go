// Package session gives the cookie session a typed shape. Only this
// package touches the raw session keys, everything else goes through
// the accessors so an invalid state can't be written by accident
package session

import (
	"crypto/subtle"

	"enigme/event-site/pkg/security"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Name is the cookie the session rides in
const Name = "event_session"

const (
	keyCSRF  = "_csrf"
	keyAdmin = "is_admin"
)

// State is the full per-client session content. Zero value means an
// anonymous session with no token minted yet
type State struct {
	CSRFToken string
	IsAdmin   bool
}

// Get reads the current session into a State
func Get(c *gin.Context) State {
	s := sessions.Default(c)

	var st State
	if v, ok := s.Get(keyCSRF).(string); ok {
		st.CSRFToken = v
	}
	if v, ok := s.Get(keyAdmin).(bool); ok {
		st.IsAdmin = v
	}

	return st
}

// EnsureCSRF returns the session's CSRF token, minting and saving one
// on first use
func EnsureCSRF(c *gin.Context) (string, error) {
	s := sessions.Default(c)

	if v, ok := s.Get(keyCSRF).(string); ok && v != "" {
		return v, nil
	}

	token, err := security.NewCSRFToken()
	if err != nil {
		return "", err
	}

	s.Set(keyCSRF, token)
	if err := s.Save(); err != nil {
		return "", err
	}

	return token, nil
}

// VerifyCSRF reports whether token matches the one stored in the
// session. An empty token or a session without a token never verifies
func VerifyCSRF(c *gin.Context, token string) bool {
	stored := Get(c).CSRFToken
	if token == "" || stored == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}

// SetAdmin marks the session as admin-authenticated
func SetAdmin(c *gin.Context) error {
	s := sessions.Default(c)
	s.Set(keyAdmin, true)
	return s.Save()
}

// IsAdmin reports whether the session passed the admin login
func IsAdmin(c *gin.Context) bool {
	return Get(c).IsAdmin
}

// Clear wipes the whole session, token included
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}
