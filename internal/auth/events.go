package auth

import "context"

// EventKind names an auth event worth recording.
type EventKind string

const (
	EventSignIn           EventKind = "sign_in"
	EventSignOut          EventKind = "sign_out"
	EventTokenRejected    EventKind = "token_rejected"
	EventUntrustedMessage EventKind = "untrusted_message"
)

// Event is reported to an EventSink. It never carries a token.
type Event struct {
	Kind    EventKind
	User    *User
	Subject string
	Origin  string
	Detail  string
}

// EventSink receives auth events.
type EventSink interface {
	Record(ctx context.Context, e Event)
}

type nopSink struct{}

func (nopSink) Record(context.Context, Event) {}
