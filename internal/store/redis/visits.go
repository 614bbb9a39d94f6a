package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SaveVisits stores the visit-time snapshot (bookmark ID to last-visit
// milliseconds)
func (s *Store) SaveVisits(ctx context.Context, visits map[string]int64) error {
	data, err := json.Marshal(visits)
	if err != nil {
		return fmt.Errorf("failed to marshal visits: %w", err)
	}
	if err := s.client.Set(ctx, KeyVisits, data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save visits: %w", err)
	}
	return nil
}

// GetVisits retrieves the visit-time snapshot. A missing key returns
// an empty map and no error.
func (s *Store) GetVisits(ctx context.Context) (map[string]int64, error) {
	data, err := s.client.Get(ctx, KeyVisits).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}

	var visits map[string]int64
	if err := json.Unmarshal(data, &visits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal visits: %w", err)
	}
	return visits, nil
}
