package yamlfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/hversten/bookmirror/internal/domain"
)

// RootID identifies the synthetic root the seed roots hang from.
const RootID = "seed________"

// Mapper converts a seed Config into a native bookmark tree.
type Mapper struct{}

// NewMapper creates a new mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapTree converts the config to a single native root node. Node IDs
// are derived from the entry's path in the tree, so reloading an
// unchanged file yields the same IDs.
func (m *Mapper) MapTree(config Config) (*domain.NativeNode, error) {
	if len(config.Roots) == 0 {
		return nil, fmt.Errorf("no roots found in seed config")
	}

	root := &domain.NativeNode{
		ID:   RootID,
		Type: "folder",
	}
	root.Children = m.mapEntries(config.Roots, root.ID, "")
	return root, nil
}

func (m *Mapper) mapEntries(entries []Entry, parentID, path string) []*domain.NativeNode {
	out := make([]*domain.NativeNode, 0, len(entries))
	for i, entry := range entries {
		entryPath := fmt.Sprintf("%s/%d:%s", path, i, entry.Title)
		node := &domain.NativeNode{
			ID:       generateNodeID(entryPath, entry.URL),
			ParentID: parentID,
			Index:    i,
			Title:    entry.Title,
		}
		switch {
		case entry.Separator:
			node.Type = domain.NativeTypeSeparator
			node.Title = ""
		case entry.URL != "":
			node.URL = entry.URL
		default:
			node.Type = "folder"
			node.Children = m.mapEntries(entry.Children, node.ID, entryPath)
		}
		out = append(out, node)
	}
	return out
}

// generateNodeID creates a stable ID from the entry's tree path and
// URL using a SHA-256 hash. The same seed file always produces the
// same IDs.
func generateNodeID(path, url string) string {
	hash := sha256.Sum256([]byte(path + "\x00" + url))
	return hex.EncodeToString(hash[:])[:16]
}
