package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/filter"
	"github.com/hversten/bookmirror/internal/history"
	"github.com/hversten/bookmirror/internal/logger"
	"github.com/hversten/bookmirror/internal/metrics"
	redisstore "github.com/hversten/bookmirror/internal/store/redis"
	"github.com/hversten/bookmirror/internal/treesync"
)

// Reloader is implemented by sources that re-read a backing file.
// Event-driven sources do not need it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Resyncer periodically rebuilds every derived structure from the
// browser store: registry, history index, filter match set. Event
// handling keeps the caches fresh between resyncs; the resync is the
// safety net that clears out any accumulated drift.
type Resyncer struct {
	tree          *treesync.Manager
	history       *history.Manager
	filter        *filter.Manager
	store         *redisstore.Store
	broadcaster   *events.Broadcaster
	reloader      Reloader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewResyncer creates a new resyncer. store, broadcaster and reloader
// may be nil.
func NewResyncer(
	tree *treesync.Manager,
	hist *history.Manager,
	fil *filter.Manager,
	store *redisstore.Store,
	broadcaster *events.Broadcaster,
	reloader Reloader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Resyncer {
	return &Resyncer{
		tree:          tree,
		history:       hist,
		filter:        fil,
		store:         store,
		broadcaster:   broadcaster,
		reloader:      reloader,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs an initial resync and begins the periodic process
func (r *Resyncer) Start(ctx context.Context) error {
	if err := r.Resync(ctx); err != nil {
		return fmt.Errorf("initial resync failed: %w", err)
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.Resync(ctx); err != nil {
					r.logger.Error("resync failed", logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual resync triggered")
				if err := r.Resync(ctx); err != nil {
					r.logger.Error("manual resync failed", logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the resyncer
func (r *Resyncer) Stop() {
	close(r.stopCh)
}

// Resync rebuilds the registry and derived indexes from the browser
// store and saves a fresh snapshot to Redis
func (r *Resyncer) Resync(ctx context.Context) error {
	start := time.Now()
	r.logger.Info("resyncing from browser store")

	if r.reloader != nil {
		if err := r.reloader.Reload(ctx); err != nil {
			return fmt.Errorf("failed to reload source: %w", err)
		}
	}

	if err := r.tree.LoadBookmarks(ctx); err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	r.history.UnloadHistory()
	r.history.Init()
	if err := r.history.LoadHistory(ctx); err != nil {
		// Partial loads are usable; failed lookups keep their zero
		// value until the next resync.
		r.logger.Warn("history load incomplete", logger.Error(err))
	}

	r.filter.Recompute()

	r.saveSnapshot(ctx)

	if r.broadcaster != nil {
		r.broadcaster.Publish(events.Event{Type: events.EventTreeReloaded})
	}

	elapsed := time.Since(start)
	metrics.ObserveResyncDuration(elapsed)
	r.logger.Info("resync completed",
		logger.Int("folders", r.tree.Registry().Count()),
		logger.Duration("elapsed", elapsed))

	return nil
}

// saveSnapshot persists the current state to Redis (best effort)
func (r *Resyncer) saveSnapshot(ctx context.Context) {
	if r.store == nil {
		return
	}

	reg := r.tree.Registry()
	if err := r.store.SaveFoldersMany(ctx, reg.Folders()); err != nil {
		r.logger.Warn("failed to save folder snapshot to redis", logger.Error(err))
		return
	}
	if err := r.store.SaveBuiltin(ctx, reg.Builtin()); err != nil {
		r.logger.Warn("failed to save builtin layout to redis", logger.Error(err))
	}
	if err := r.store.SaveVisits(ctx, r.history.Snapshot()); err != nil {
		r.logger.Warn("failed to save visit snapshot to redis", logger.Error(err))
	}
}
