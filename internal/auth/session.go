// Package auth bridges sign-in state from the parent platform into this site.
//
// Every page load gets its own Cycle, attached to the request context by
// Middleware. The Bridge resolves a Cycle by running its strategies in order
// (URL token, cookie, cross-origin check); the first one to produce a
// Session wins. Failures never escape the Bridge: they only show up as the
// Anonymous state.
package auth

import (
	"errors"
	"time"
)

var (
	// ErrNoToken means a strategy had no credential to work with.
	ErrNoToken = errors.New("no token")
	// ErrTokenRejected means the parent platform refused the token.
	ErrTokenRejected = errors.New("token rejected")
	// ErrPlatformUnavailable means the parent platform could not be reached.
	ErrPlatformUnavailable = errors.New("platform unavailable")
	// ErrUntrustedOrigin means a message came from an origin not on the allow-list.
	ErrUntrustedOrigin = errors.New("untrusted origin")
	// ErrUnknownCycle means no pending load cycle has the given ID.
	ErrUnknownCycle = errors.New("unknown load cycle")
	// ErrCheckTimeout means the cross-origin check sent nothing in time.
	ErrCheckTimeout = errors.New("cross-origin check timed out")
	// ErrUnverifiedMessage means a cross-origin message claimed a user
	// without a token to validate.
	ErrUnverifiedMessage = errors.New("cross-origin message carried no token")
)

// Plan is the subscription tier of a user on the parent platform.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// User is the profile the parent platform reports for a token.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Plan   Plan   `json:"plan"`
}

// Initial returns the first letter of the user's name, or of the email when
// the name is empty. Used when there is no avatar.
func (u User) Initial() string {
	for _, s := range []string{u.Name, u.Email} {
		for _, r := range s {
			return string(r)
		}
	}
	return "?"
}

// Session is an authenticated user within one load cycle. Token always
// passed the platform's validate or profile check.
type Session struct {
	Token  string
	User   User
	Expiry time.Time
}

// Valid reports whether the session is still usable at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && (s.Expiry.IsZero() || now.Before(s.Expiry))
}
