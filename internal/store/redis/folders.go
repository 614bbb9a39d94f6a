package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hversten/bookmirror/internal/domain"
)

// SaveFolder stores one folder snapshot in Redis
func (s *Store) SaveFolder(ctx context.Context, folder *domain.Node) error {
	data, err := json.Marshal(folder)
	if err != nil {
		return fmt.Errorf("failed to marshal folder: %w", err)
	}

	key := FolderKey(folder.ID)

	// Store folder data
	if err := s.client.Set(ctx, key, data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save folder: %w", err)
	}

	// Add to set of all folders
	if err := s.client.SAdd(ctx, AllFoldersKey(), folder.ID).Err(); err != nil {
		return fmt.Errorf("failed to add folder to set: %w", err)
	}

	return nil
}

// SaveFoldersMany stores multiple folder snapshots in Redis (bulk operation)
func (s *Store) SaveFoldersMany(ctx context.Context, folders []*domain.Node) error {
	pipe := s.client.Pipeline()

	for _, folder := range folders {
		data, err := json.Marshal(folder)
		if err != nil {
			return fmt.Errorf("failed to marshal folder %s: %w", folder.ID, err)
		}

		key := FolderKey(folder.ID)
		pipe.Set(ctx, key, data, DefaultSnapshotTTL)
		pipe.SAdd(ctx, AllFoldersKey(), folder.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save folders: %w", err)
	}

	return nil
}

// GetFolder retrieves a folder snapshot from Redis by ID
func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Node, error) {
	key := FolderKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("folder not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	var folder domain.Node
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, fmt.Errorf("failed to unmarshal folder: %w", err)
	}

	return &folder, nil
}

// GetAllFolders retrieves all folder snapshots from Redis
func (s *Store) GetAllFolders(ctx context.Context) ([]*domain.Node, error) {
	ids, err := s.client.SMembers(ctx, AllFoldersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Node{}, nil
	}

	folders := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		folder, err := s.GetFolder(ctx, id)
		if err != nil {
			// Skip folders whose keys have expired; the garbage
			// collector prunes the set membership.
			continue
		}
		folders = append(folders, folder)
	}

	return folders, nil
}

// DeleteFolder removes a folder snapshot from Redis
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	key := FolderKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	if err := s.client.SRem(ctx, AllFoldersKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove folder from set: %w", err)
	}

	return nil
}

// FolderIDs returns the IDs currently in the all-folders set
func (s *Store) FolderIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, AllFoldersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder IDs: %w", err)
	}
	return ids, nil
}

// HasFolder reports whether a folder snapshot key is still live
func (s *Store) HasFolder(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, FolderKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check folder key: %w", err)
	}
	return n > 0, nil
}

// PruneFolderID removes a folder ID from the all-folders set only
func (s *Store) PruneFolderID(ctx context.Context, id string) error {
	if err := s.client.SRem(ctx, AllFoldersKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to prune folder ID: %w", err)
	}
	return nil
}

// SaveBuiltin stores the built-in folder layout
func (s *Store) SaveBuiltin(ctx context.Context, builtin domain.Builtin) error {
	data, err := json.Marshal(builtin)
	if err != nil {
		return fmt.Errorf("failed to marshal builtin layout: %w", err)
	}
	if err := s.client.Set(ctx, KeyBuiltin, data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save builtin layout: %w", err)
	}
	return nil
}

// GetBuiltin retrieves the built-in folder layout. A missing key
// returns the zero layout and no error.
func (s *Store) GetBuiltin(ctx context.Context) (domain.Builtin, error) {
	data, err := s.client.Get(ctx, KeyBuiltin).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Builtin{}, nil
		}
		return domain.Builtin{}, fmt.Errorf("failed to get builtin layout: %w", err)
	}

	var builtin domain.Builtin
	if err := json.Unmarshal(data, &builtin); err != nil {
		return domain.Builtin{}, fmt.Errorf("failed to unmarshal builtin layout: %w", err)
	}
	return builtin, nil
}
