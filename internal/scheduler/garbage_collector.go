package scheduler

import (
	"context"
	"time"

	"github.com/hversten/bookmirror/internal/index"
	"github.com/hversten/bookmirror/internal/logger"
)

// snapshotStore is the slice of the Redis store the collector needs.
type snapshotStore interface {
	FolderIDs(ctx context.Context) ([]string, error)
	HasFolder(ctx context.Context, id string) (bool, error)
	DeleteFolder(ctx context.Context, id string) error
	PruneFolderID(ctx context.Context, id string) error
}

// GarbageCollector removes snapshot entries for folders that no
// longer exist in the live registry, and set members whose value keys
// have already expired.
type GarbageCollector struct {
	store    snapshotStore
	registry *index.Registry
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store snapshotStore,
	registry *index.Registry,
	log logger.Logger,
	interval time.Duration,
) *GarbageCollector {
	return &GarbageCollector{
		store:    store,
		registry: registry,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect prunes orphaned snapshot entries
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	// An empty registry means no resync has completed yet; the
	// snapshot may be all that survives a restart, so leave it alone.
	if gc.registry.Count() == 0 {
		gc.logger.Debug("registry empty, skipping snapshot collection")
		return nil
	}

	ids, err := gc.store.FolderIDs(ctx)
	if err != nil {
		return err
	}

	orphans := 0
	expired := 0
	for _, id := range ids {
		if gc.registry.Has(id) {
			continue
		}

		live, err := gc.store.HasFolder(ctx, id)
		if err != nil {
			gc.logger.Warn("failed to check folder snapshot",
				logger.String("folder_id", id),
				logger.Error(err))
			continue
		}

		if !live {
			// Value key expired on its own; drop the set membership.
			if err := gc.store.PruneFolderID(ctx, id); err != nil {
				gc.logger.Warn("failed to prune folder id",
					logger.String("folder_id", id),
					logger.Error(err))
				continue
			}
			expired++
			continue
		}

		if err := gc.store.DeleteFolder(ctx, id); err != nil {
			gc.logger.Warn("failed to delete folder snapshot",
				logger.String("folder_id", id),
				logger.Error(err))
			continue
		}
		orphans++
	}

	if orphans > 0 || expired > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("orphans_deleted", orphans),
			logger.Int("expired_pruned", expired))
	} else {
		gc.logger.Debug("no snapshot entries to garbage collect")
	}

	return nil
}
