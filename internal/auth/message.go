package auth

import (
	"sort"
	"strings"
)

// MessageType is the type field of a cross-origin auth message.
type MessageType string

const (
	MessageToken  MessageType = "CODEUNIA_AUTH_TOKEN"
	MessageStatus MessageType = "CODEUNIA_AUTH_STATUS"
)

// Message is the payload the parent's auth-check page posts back.
type Message struct {
	Type          MessageType `json:"type"`
	Token         string      `json:"token,omitempty"`
	User          *User       `json:"user,omitempty"`
	Authenticated *bool       `json:"authenticated,omitempty"`
}

// Recognized reports whether m has one of the known shapes.
func (m Message) Recognized() bool {
	return m.Type == MessageToken || m.Type == MessageStatus
}

// signedOut reports whether the parent says nobody is signed in.
func (m Message) signedOut() bool {
	return m.Authenticated != nil && !*m.Authenticated && m.Token == ""
}

// Origins is an exact-match allow-list of message origins.
type Origins struct {
	set map[string]struct{}
}

// NewOrigins builds an allow-list. Entries are compared verbatim, apart from
// surrounding whitespace.
func NewOrigins(origins ...string) Origins {
	o := Origins{set: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		o.set[origin] = struct{}{}
	}
	return o
}

// Trusted reports whether origin is on the list.
func (o Origins) Trusted(origin string) bool {
	if origin == "" {
		return false
	}
	_, ok := o.set[origin]
	return ok
}

// List returns the allowed origins.
func (o Origins) List() []string {
	out := make([]string, 0, len(o.set))
	for origin := range o.set {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}
