package auth

import (
	"net/http"
	"strings"
	"time"
)

// DefaultCookieName is the cookie the parent platform's token is kept in.
const DefaultCookieName = "codeunia_auth_token"

// DefaultCookieMaxAge is how long a persisted token lives in the browser.
const DefaultCookieMaxAge = 7 * 24 * time.Hour

// Cookies describes the auth cookie envelope.
type Cookies struct {
	Name   string
	MaxAge time.Duration
	Secure bool // Set in production.
}

func (c Cookies) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

func (c Cookies) maxAge() time.Duration {
	if c.MaxAge <= 0 {
		return DefaultCookieMaxAge
	}
	return c.MaxAge
}

// ReadToken returns the trimmed token cookie value when present.
func (c Cookies) ReadToken(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(c.name())
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// WriteToken persists token. Callers only pass tokens that just passed
// validation.
func (c Cookies) WriteToken(w http.ResponseWriter, token string) {
	if w == nil || token == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    strings.TrimSpace(token),
		Path:     "/",
		MaxAge:   int(c.maxAge() / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearToken expires the token cookie.
func (c Cookies) ClearToken(w http.ResponseWriter) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
