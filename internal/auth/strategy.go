package auth

import (
	"context"
	"time"
)

// Strategy is one way to find out who the visitor is. A nil session with a
// nil error means the strategy had nothing to go on.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, c *Cycle) (*Session, error)
}

// URLTokenStrategy validates a token handed over in the page URL. The URL
// is marked for stripping whatever the result.
type URLTokenStrategy struct {
	Platform Platform
}

func (URLTokenStrategy) Name() string { return "url_token" }

func (s URLTokenStrategy) Resolve(ctx context.Context, c *Cycle) (*Session, error) {
	if c.URLToken == "" {
		return nil, nil
	}
	c.note(func(o *Outcome) { o.Strip = true })

	user, err := s.Platform.Validate(ctx, c.URLToken)
	if err != nil {
		return nil, err
	}
	c.note(func(o *Outcome) { o.Persist = c.URLToken })
	return &Session{Token: c.URLToken, User: user}, nil
}

// CookieStrategy fetches the profile for a previously persisted token. A
// cookie the platform no longer accepts is marked for clearing.
type CookieStrategy struct {
	Platform Platform
}

func (CookieStrategy) Name() string { return "cookie" }

func (s CookieStrategy) Resolve(ctx context.Context, c *Cycle) (*Session, error) {
	if c.CookieToken == "" {
		return nil, nil
	}
	user, err := s.Platform.Profile(ctx, c.CookieToken)
	if err != nil {
		c.note(func(o *Outcome) { o.Clear = true })
		return nil, err
	}
	return &Session{Token: c.CookieToken, User: user}, nil
}

// CrossOriginStrategy waits for the parent's auth-check page to report
// back through the browser. Only a token the platform validates signs the
// visitor in. It only runs for gated cycles and gives up after Timeout.
type CrossOriginStrategy struct {
	Platform Platform
	Timeout  time.Duration
}

func (CrossOriginStrategy) Name() string { return "cross_origin" }

func (s CrossOriginStrategy) Resolve(ctx context.Context, c *Cycle) (*Session, error) {
	if !c.Gated {
		return nil, nil
	}
	c.await()

	timer := time.NewTimer(s.Timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, ErrCheckTimeout
		case m := <-c.inbox:
			switch {
			case m.Token != "":
				user, err := s.Platform.Validate(ctx, m.Token)
				if err != nil {
					return nil, err
				}
				c.note(func(o *Outcome) { o.Persist = m.Token })
				return &Session{Token: m.Token, User: user}, nil
			case m.signedOut():
				return nil, nil
			default:
				// The relay can write anything into a message, so a user
				// without a token proves nothing.
				return nil, ErrUnverifiedMessage
			}
		}
	}
}
