package auth

import (
	"sync"
	"time"
)

// Registry holds the load cycles the browser may still talk to.
type Registry struct {
	mu     sync.Mutex
	cycles map[string]*Cycle
	ttl    time.Duration
	grace  time.Duration
	now    func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewRegistry starts a registry whose janitor drops cycles older than ttl,
// and settled cycles once grace has passed since they settled.
func NewRegistry(ttl, grace time.Duration) *Registry {
	r := &Registry{
		cycles: make(map[string]*Cycle),
		ttl:    ttl,
		grace:  grace,
		now:    time.Now,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go r.janitor()
	return r
}

func (r *Registry) Add(c *Cycle) {
	r.mu.Lock()
	r.cycles[c.ID] = c
	r.mu.Unlock()
}

// Get returns the cycle with id, or ErrUnknownCycle.
func (r *Registry) Get(id string) (*Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return nil, ErrUnknownCycle
	}
	return c, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.cycles, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cycles)
}

// Sweep drops expired cycles and reports how many went.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, c := range r.cycles {
		at, settled := c.settledSince()
		if now.Sub(c.Created) > r.ttl || (settled && now.Sub(at) > r.grace) {
			delete(r.cycles, id)
			removed++
		}
	}
	return removed
}

// Close stops the janitor.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

func (r *Registry) janitor() {
	defer close(r.done)

	interval := r.grace
	if interval <= 0 || interval > r.ttl {
		interval = r.ttl
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
