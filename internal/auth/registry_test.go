package auth

import (
	"errors"
	"testing"
	"time"
)

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry(time.Hour, time.Minute)
	defer r.Close()

	now := time.Now()
	r.now = func() time.Time { return now }

	pending := NewCycle("", "")
	stale := NewCycle("", "")
	stale.Created = now.Add(-2 * time.Hour)
	done := NewCycle("", "")
	done.settle(Anonymous, nil, now.Add(-2*time.Minute))
	recent := NewCycle("", "")
	recent.settle(Anonymous, nil, now)

	for _, c := range []*Cycle{pending, stale, done, recent} {
		r.Add(c)
	}

	if n := r.Sweep(); n != 2 {
		t.Errorf("Sweep removed %d, want 2", n)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	for _, c := range []*Cycle{pending, recent} {
		if _, err := r.Get(c.ID); err != nil {
			t.Errorf("Get(%s): %v", c.ID, err)
		}
	}
	if _, err := r.Get(stale.ID); !errors.Is(err, ErrUnknownCycle) {
		t.Errorf("Get(stale) err = %v, want ErrUnknownCycle", err)
	}

	r.Remove(pending.ID)
	if r.Len() != 1 {
		t.Errorf("Len after Remove = %d, want 1", r.Len())
	}
}

func TestRegistryCloseIsIdempotent(t *testing.T) {
	r := NewRegistry(time.Second, time.Second)
	r.Close()
	r.Close()
}

func TestStateNames(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Unresolved, "unresolved"},
		{Resolving, "resolving"},
		{Authenticated, "authenticated"},
		{Anonymous, "anonymous"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if Resolving.Settled() || !Anonymous.Settled() {
		t.Error("Settled reports wrong terminal states")
	}
}
