// Package session holds the signed-in user's bearer token and the named
// server profiles the CLI can talk to.
//
// A *Session is created once and handed to the HTTP client; nothing else
// reads the token from disk.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the current authenticated identity.
type Session struct {
	Token     string
	UserID    string
	Role      string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Anonymous returns a session with no credentials.
func Anonymous() *Session { return &Session{} }

// FromToken builds a session from a bearer token, reading the sub/user_id,
// role and exp claims. The signature is not verified here; the server does
// that on every request.
func FromToken(token string) (*Session, error) {
	if token == "" {
		return Anonymous(), nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	s := &Session{Token: token}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		s.UserID = sub
	} else if uid, ok := claims["user_id"]; ok {
		s.UserID = fmt.Sprint(uid)
	}
	if role, ok := claims["role"].(string); ok {
		s.Role = role
	}
	return s, nil
}

// Expired reports whether the token has passed its exp claim at now.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Authorization returns the Authorization header value, or "" when there is
// no usable token.
func (s *Session) Authorization(now time.Time) string {
	if s == nil || s.Token == "" || s.Expired(now) {
		return ""
	}
	return "Bearer " + s.Token
}

// IsAuthenticated reports whether the session carries an unexpired token.
func (s *Session) IsAuthenticated(now time.Time) bool {
	return s.Authorization(now) != ""
}
