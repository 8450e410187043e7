package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is where a load cycle is in resolving its visitor.
type State int

const (
	Unresolved State = iota
	Resolving
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Settled reports whether s is terminal.
func (s State) Settled() bool { return s == Authenticated || s == Anonymous }

// Outcome lists what the HTTP layer must do once a cycle settles.
type Outcome struct {
	Persist string // Validated token to write as the cookie.
	Clear   bool   // The request's cookie was stale.
	Strip   bool   // The page URL carried a token.
}

// Cycle is the auth state of one page load. It is created per request and
// lives in the Registry only while a cross-origin check is pending.
type Cycle struct {
	ID          string
	URLToken    string
	CookieToken string
	// Gated cycles may fall back to the cross-origin check.
	Gated bool
	// Subject is the page being gated, if any.
	Subject string
	// ReturnURL is the page address without the token parameter.
	ReturnURL string
	Created   time.Time

	mu        sync.Mutex
	state     State
	session   *Session
	outcome   Outcome
	settledAt time.Time

	inbox     chan Message
	awaiting  chan struct{}
	settled   chan struct{}
	awaitOnce sync.Once
}

// NewCycle starts a load cycle from the credentials a request carries.
func NewCycle(urlToken, cookieToken string) *Cycle {
	return &Cycle{
		ID:          uuid.New().String(),
		URLToken:    urlToken,
		CookieToken: cookieToken,
		Created:     time.Now(),
		inbox:       make(chan Message, 1),
		awaiting:    make(chan struct{}),
		settled:     make(chan struct{}),
	}
}

// State returns the current state.
func (c *Cycle) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the session, or nil unless the cycle is Authenticated.
func (c *Cycle) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// User returns the signed-in user, if any.
func (c *Cycle) User() *User {
	if s := c.Session(); s != nil {
		u := s.User
		return &u
	}
	return nil
}

// Outcome returns the cookie and URL actions collected so far.
func (c *Cycle) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Settled is closed once the cycle is Authenticated or Anonymous.
func (c *Cycle) Settled() <-chan struct{} { return c.settled }

// Awaiting is closed once the cycle waits on the browser for a
// cross-origin message.
func (c *Cycle) Awaiting() <-chan struct{} { return c.awaiting }

func (c *Cycle) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Unresolved {
		return false
	}
	c.state = Resolving
	return true
}

func (c *Cycle) await() {
	c.awaitOnce.Do(func() { close(c.awaiting) })
}

// settle moves the cycle to a terminal state once. Later calls are no-ops,
// so nothing overrides a settled cycle.
func (c *Cycle) settle(state State, s *Session, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Settled() {
		return false
	}
	c.state = state
	c.session = s
	c.settledAt = now
	close(c.settled)
	return true
}

func (c *Cycle) settledSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settledAt, c.state.Settled()
}

func (c *Cycle) note(f func(*Outcome)) {
	c.mu.Lock()
	f(&c.outcome)
	c.mu.Unlock()
}

// deliver hands m to a waiting cross-origin check. It reports false when
// the cycle is settled or already holds an undelivered message.
func (c *Cycle) deliver(m Message) bool {
	if c.State().Settled() {
		return false
	}
	select {
	case c.inbox <- m:
		return true
	default:
		return false
	}
}

type cycleKey struct{}

// WithCycle returns ctx carrying c.
func WithCycle(ctx context.Context, c *Cycle) context.Context {
	return context.WithValue(ctx, cycleKey{}, c)
}

// FromContext returns the load cycle of the request, or nil.
func FromContext(ctx context.Context) *Cycle {
	c, _ := ctx.Value(cycleKey{}).(*Cycle)
	return c
}
