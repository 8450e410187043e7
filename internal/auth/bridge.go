package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/logging"
)

// DefaultCheckTimeout bounds the cross-origin check.
const DefaultCheckTimeout = 5 * time.Second

// settledGrace keeps settled cycles around for late polls.
const settledGrace = 30 * time.Second

// Options configures a Bridge.
type Options struct {
	Platform       Platform
	TrustedOrigins []string
	CheckTimeout   time.Duration
	// CrossOrigin enables the cross-origin check on gated pages.
	CrossOrigin bool
	// SessionTTL is how long a resolved session stays valid.
	SessionTTL time.Duration
	// CycleTTL is how long a pending cycle stays reachable.
	CycleTTL time.Duration
	Cookies  Cookies
	Sink     EventSink
	Logger   *zap.Logger
}

// Bridge resolves load cycles against the parent platform.
type Bridge struct {
	platform   Platform
	strategies []Strategy
	origins    Origins
	timeout    time.Duration
	sessionTTL time.Duration
	cookies    Cookies
	registry   *Registry
	sink       EventSink
	logger     *zap.Logger
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBridge creates a Bridge. Close it to stop pending checks.
func NewBridge(opts Options) *Bridge {
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = DefaultCheckTimeout
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = opts.Cookies.maxAge()
	}
	if opts.CycleTTL <= 0 {
		opts.CycleTTL = 4*opts.CheckTimeout + time.Minute
	}
	if opts.Sink == nil {
		opts.Sink = nopSink{}
	}

	strategies := []Strategy{
		URLTokenStrategy{Platform: opts.Platform},
		CookieStrategy{Platform: opts.Platform},
	}
	if opts.CrossOrigin {
		strategies = append(strategies, CrossOriginStrategy{Platform: opts.Platform, Timeout: opts.CheckTimeout})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		platform:   opts.Platform,
		strategies: strategies,
		origins:    NewOrigins(opts.TrustedOrigins...),
		timeout:    opts.CheckTimeout,
		sessionTTL: opts.SessionTTL,
		cookies:    opts.Cookies,
		registry:   NewRegistry(opts.CycleTTL, settledGrace),
		sink:       opts.Sink,
		logger:     logging.OrNop(opts.Logger),
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Strategies returns the strategy names in the order they run.
func (b *Bridge) Strategies() []string {
	names := make([]string, len(b.strategies))
	for i, s := range b.strategies {
		names[i] = s.Name()
	}
	return names
}

// Origins returns the message allow-list.
func (b *Bridge) Origins() Origins { return b.origins }

// CheckTimeout is how long the cross-origin check may take.
func (b *Bridge) CheckTimeout() time.Duration { return b.timeout }

// Cookies returns the cookie envelope.
func (b *Bridge) Cookies() Cookies { return b.cookies }

// Platform returns the parent platform client.
func (b *Bridge) Platform() Platform { return b.platform }

// NewCycle starts a load cycle for r.
func (b *Bridge) NewCycle(r *http.Request) *Cycle {
	cookie, _ := b.cookies.ReadToken(r)
	c := NewCycle(r.URL.Query().Get(TokenParam), cookie)
	c.ReturnURL = StripToken(r.URL).RequestURI()
	return c
}

// Resolve runs the strategies in order until one yields a session and
// returns the settled state. Strategy errors are absorbed: they only make
// the cycle fall through to the next strategy and finally to Anonymous.
func (b *Bridge) Resolve(ctx context.Context, c *Cycle) State {
	if !c.begin() {
		select {
		case <-c.Settled():
		case <-ctx.Done():
		}
		return c.State()
	}

	for _, s := range b.strategies {
		sess, err := s.Resolve(ctx, c)
		if err != nil {
			b.absorb(ctx, c, s, err)
		}
		if sess == nil {
			continue
		}
		if sess.Expiry.IsZero() {
			sess.Expiry = b.now().Add(b.sessionTTL)
		}
		if c.settle(Authenticated, sess, b.now()) {
			if c.Outcome().Persist != "" {
				u := sess.User
				b.sink.Record(ctx, Event{Kind: EventSignIn, User: &u, Subject: c.Subject, Detail: s.Name()})
			}
			b.logger.Debug("load cycle authenticated",
				zap.String("cycle", c.ID),
				zap.String("strategy", s.Name()),
				zap.String("user", sess.User.ID))
		}
		return c.State()
	}

	c.settle(Anonymous, nil, b.now())
	return c.State()
}

func (b *Bridge) absorb(ctx context.Context, c *Cycle, s Strategy, err error) {
	b.logger.Debug("auth strategy fell through",
		zap.String("cycle", c.ID),
		zap.String("strategy", s.Name()),
		zap.Error(err))
	if errors.Is(err, ErrTokenRejected) {
		b.sink.Record(ctx, Event{Kind: EventTokenRejected, Subject: c.Subject, Detail: s.Name()})
	}
}

// Begin resolves c in the background and returns once it settles or starts
// waiting on the browser for the cross-origin check. The cycle is
// registered so the browser can deliver messages and poll it.
func (b *Bridge) Begin(ctx context.Context, c *Cycle) State {
	b.registry.Add(c)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.Resolve(b.ctx, c)
	}()

	select {
	case <-c.Settled():
	case <-c.Awaiting():
	case <-ctx.Done():
	}
	return c.State()
}

// Lookup returns a registered cycle.
func (b *Bridge) Lookup(id string) (*Cycle, error) {
	return b.registry.Get(id)
}

// Wait blocks until c settles, ctx ends or the check timeout passes,
// whichever is first, and returns the state at that point.
func (b *Bridge) Wait(ctx context.Context, c *Cycle) State {
	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case <-c.Settled():
	case <-ctx.Done():
	case <-timer.C:
	}
	return c.State()
}

// HandleMessage feeds a cross-origin message into c. The origin is checked
// before anything in m is looked at; an untrusted origin leaves c as it was.
func (b *Bridge) HandleMessage(ctx context.Context, c *Cycle, origin string, m Message) error {
	if !b.origins.Trusted(origin) {
		b.logger.Debug("ignored message from untrusted origin",
			zap.String("cycle", c.ID),
			zap.String("origin", origin))
		b.sink.Record(ctx, Event{Kind: EventUntrustedMessage, Subject: c.Subject, Origin: origin})
		return ErrUntrustedOrigin
	}
	if !m.Recognized() {
		return nil
	}
	if !c.deliver(m) {
		b.logger.Debug("message arrived after cycle settled", zap.String("cycle", c.ID))
	}
	return nil
}

// Logout ends c's session. The caller clears the cookie and sends the
// browser to the parent's logout page.
func (b *Bridge) Logout(ctx context.Context, c *Cycle) {
	var user *User
	if c != nil {
		user = c.User()
		c.mu.Lock()
		c.session = nil
		wasSettled := c.state.Settled()
		c.state = Anonymous
		c.outcome.Persist = ""
		c.outcome.Clear = true
		if !wasSettled {
			c.settledAt = b.now()
			close(c.settled)
		}
		c.mu.Unlock()
	}
	b.sink.Record(ctx, Event{Kind: EventSignOut, User: user})
}

// Close cancels pending checks, waits for them and stops the registry.
func (b *Bridge) Close() {
	b.cancel()
	b.wg.Wait()
	b.registry.Close()
}
