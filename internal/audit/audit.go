// Package audit keeps a log of auth events: sign-ins, sign-outs, rejected
// tokens and ignored cross-origin messages. Tokens are never stored.
package audit

import (
	"time"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
)

// Kind is the type of an auth event.
type Kind = auth.EventKind

// Entry is a single audit trail record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// FromEvent converts a bridge event into an entry.
func FromEvent(e auth.Event) Entry {
	entry := Entry{
		Kind:    e.Kind,
		Subject: e.Subject,
		Origin:  e.Origin,
		Detail:  e.Detail,
	}
	if e.User != nil {
		entry.UserID = e.User.ID
		entry.Email = e.User.Email
	}
	return entry
}
