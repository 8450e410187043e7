package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
	"github.com/ziadkadry99/cheatsheet/internal/logging"
)

// Sink records bridge events in a Store.
type Sink struct {
	store  *Store
	logger *zap.Logger
}

var _ auth.EventSink = (*Sink)(nil)

// NewSink creates a Sink. Write failures are logged, never returned.
func NewSink(store *Store, logger *zap.Logger) *Sink {
	return &Sink{store: store, logger: logging.OrNop(logger)}
}

func (s *Sink) Record(ctx context.Context, e auth.Event) {
	// The request may be gone by now; the event should still be kept.
	ctx = context.WithoutCancel(ctx)
	if _, err := s.store.Record(ctx, FromEvent(e)); err != nil {
		s.logger.Warn("recording auth event", zap.String("kind", string(e.Kind)), zap.Error(err))
	}
}
