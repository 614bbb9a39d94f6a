// Package redis persists registry and history snapshots so a restart
// can serve a warm tree before the first resync against the browser
// store completes.
package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSnapshotTTL is the TTL for snapshot entries (48 hours).
	// A daemon that has been down longer resyncs from scratch.
	DefaultSnapshotTTL = 48 * time.Hour
)

// Store handles Redis operations for tree and history snapshots.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
