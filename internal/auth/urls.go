package auth

import (
	"net/url"
	"strings"
)

// TokenParam is the query parameter the parent platform hands tokens over in.
const TokenParam = "token"

// ReturnParam carries the page to come back to after signing in.
const ReturnParam = "returnUrl"

// Links builds URLs on the parent platform.
type Links struct {
	SiteURL       string
	SignInPath    string
	SignUpPath    string
	LogoutPath    string
	CheckPath     string
	DashboardPath string
	SettingsPath  string
}

// SignInURL links to the parent sign-in page, returning to returnURL.
func (l Links) SignInURL(returnURL string) string {
	return l.withReturn(l.SignInPath, returnURL)
}

// SignUpURL links to the parent sign-up page, returning to returnURL.
func (l Links) SignUpURL(returnURL string) string {
	return l.withReturn(l.SignUpPath, returnURL)
}

func (l Links) LogoutURL() string    { return l.resolve(l.LogoutPath).String() }
func (l Links) DashboardURL() string { return l.resolve(l.DashboardPath).String() }
func (l Links) SettingsURL() string  { return l.resolve(l.SettingsPath).String() }

// CheckURL is the parent's auth-check page, told to answer to origin.
func (l Links) CheckURL(origin string) string {
	u := l.resolve(l.CheckPath)
	q := u.Query()
	q.Set("origin", origin)
	u.RawQuery = q.Encode()
	return u.String()
}

// Origin is the scheme and host of the parent site.
func (l Links) Origin() string {
	return OriginOf(l.SiteURL)
}

func (l Links) withReturn(path, returnURL string) string {
	u := l.resolve(path)
	if returnURL != "" {
		q := u.Query()
		q.Set(ReturnParam, returnURL)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (l Links) resolve(path string) *url.URL {
	base, err := url.Parse(l.SiteURL)
	if err != nil {
		base = &url.URL{}
	}
	ref, err := url.Parse(path)
	if err != nil {
		return base
	}
	return base.ResolveReference(ref)
}

// StripToken returns a copy of u without the token query parameter. It is
// idempotent: stripping a stripped URL returns an equal URL.
func StripToken(u *url.URL) *url.URL {
	out := *u
	q := out.Query()
	if _, ok := q[TokenParam]; !ok {
		return &out
	}
	q.Del(TokenParam)
	out.RawQuery = q.Encode()
	return &out
}

// HasToken reports whether u carries a token query parameter.
func HasToken(u *url.URL) bool {
	_, ok := u.Query()[TokenParam]
	return ok
}

// OriginOf returns the scheme://host part of raw, or "" if raw has none.
func OriginOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

// LocalPath reports raw as a same-site path, or "/" when raw points
// elsewhere. Used for returnUrl values so callbacks cannot redirect offsite.
func LocalPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `/\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return StripToken(u).String()
}
