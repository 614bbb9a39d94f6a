package scheduler

import (
	"context"

	"github.com/hversten/bookmirror/internal/history"
	"github.com/hversten/bookmirror/internal/index"
	"github.com/hversten/bookmirror/internal/logger"
	redisstore "github.com/hversten/bookmirror/internal/store/redis"
)

// RedisSyncer warms the registry and history index from the snapshot
// in Redis on startup, so the daemon can serve a tree before the first
// resync against the browser store completes.
type RedisSyncer struct {
	store    *redisstore.Store
	registry *index.Registry
	history  *history.Manager
	logger   logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	registry *index.Registry,
	hist *history.Manager,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:    store,
		registry: registry,
		history:  hist,
		logger:   log,
	}
}

// Sync loads the snapshot from Redis into the registry and history
// index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("warming registry from redis snapshot")

	folders, err := rs.store.GetAllFolders(ctx)
	if err != nil {
		return err
	}

	if len(folders) == 0 {
		rs.logger.Info("no snapshot found in redis")
		return nil
	}

	builtin, err := rs.store.GetBuiltin(ctx)
	if err != nil {
		return err
	}

	rs.registry.ReplaceAll(folders)
	rs.registry.SetBuiltin(builtin)

	visits, err := rs.store.GetVisits(ctx)
	if err != nil {
		return err
	}
	if len(visits) > 0 {
		rs.history.Restore(visits)
	}

	rs.logger.Info("warmed registry from redis",
		logger.Int("folders", len(folders)),
		logger.Int("visits", len(visits)))

	return nil
}
