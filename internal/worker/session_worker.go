package worker

import (
	"context"
	"log/slog"
	"time"
)

type Evicter interface {
	Evict(ttl time.Duration) int
}

// SessionWorker periodically drops idle client sessions from memory.
type SessionWorker struct {
	sessions Evicter
	ttl      time.Duration
	interval time.Duration
}

func NewSessionWorker(sessions Evicter, ttl time.Duration) *SessionWorker {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return &SessionWorker{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
	}
}

func (w *SessionWorker) Start(ctx context.Context) {
	slog.Info("starting session worker", "ttl", w.ttl, "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionWorker) sweep() {
	if n := w.sessions.Evict(w.ttl); n > 0 {
		slog.Info("evicted idle sessions", "count", n)
	}
}
