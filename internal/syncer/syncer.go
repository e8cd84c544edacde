// Package syncer re-hydrates the collection when the cloud-backed
// key-value store reports a remote change.
package syncer

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"apple-inventory/internal/collection"
	"apple-inventory/internal/kvstore"
)

// Syncer listens for backend change notifications and runs a full
// reload for each one. A call-count guard drops notifications that
// arrive while a reload is already in flight.
type Syncer struct {
	coll     *collection.Collection
	watcher  kvstore.Watcher
	log      zerolog.Logger
	inFlight atomic.Int32
}

// New creates a syncer for the given collection and watcher.
func New(coll *collection.Collection, watcher kvstore.Watcher, log zerolog.Logger) *Syncer {
	return &Syncer{
		coll:    coll,
		watcher: watcher,
		log:     log.With().Str("component", "syncer").Logger(),
	}
}

// Run blocks watching for remote changes until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	s.watcher.Watch(ctx, s.onChange)
}

func (s *Syncer) onChange() {
	// Re-entrancy guard: the watch callback can fire again before a
	// reload finishes; those notifications are dropped.
	if s.inFlight.Add(1) > 1 {
		s.inFlight.Add(-1)
		s.log.Debug().Msg("reload already in flight, dropping notification")
		return
	}
	defer s.inFlight.Add(-1)

	report, err := s.coll.LoadAll()
	if err != nil {
		s.log.Error().Err(err).Msg("remote reload failed")
		return
	}
	s.log.Info().
		Int("loaded", report.Loaded).
		Int("skipped", report.Skipped).
		Msg("reloaded after remote change")
}
