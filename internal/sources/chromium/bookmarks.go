// Package chromium reads the bookmark and history stores of a
// Chromium-family browser profile. Bookmarks come from the profile's
// "Bookmarks" JSON file, visits from its "History" SQLite database.
package chromium

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hversten/bookmirror/internal/domain"
)

// RootID is the synthetic root above the three Chromium roots. It
// matches the parent ID Chromium records on them.
const RootID = "0"

// jsonNode mirrors one node of the Bookmarks file.
type jsonNode struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	URL      string     `json:"url"`
	Children []jsonNode `json:"children"`
}

// bookmarksFile mirrors the top level of the Bookmarks file. The roots
// appear in a fixed order: bookmark bar, other, synced (mobile).
type bookmarksFile struct {
	Roots struct {
		BookmarkBar jsonNode `json:"bookmark_bar"`
		Other       jsonNode `json:"other"`
		Synced      jsonNode `json:"synced"`
	} `json:"roots"`
	Version int `json:"version"`
}

// ParseBookmarksFile reads a Chromium Bookmarks file and returns the
// tree under a synthetic root node.
func ParseBookmarksFile(path string) (*domain.NativeNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	var file bookmarksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks file: %w", err)
	}

	root := &domain.NativeNode{
		ID:   RootID,
		Type: "folder",
	}
	for _, jn := range []jsonNode{file.Roots.BookmarkBar, file.Roots.Other, file.Roots.Synced} {
		if jn.ID == "" {
			continue
		}
		root.Children = append(root.Children, mapNode(jn, root.ID, len(root.Children)))
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("no roots found in bookmarks file")
	}
	return root, nil
}

func mapNode(jn jsonNode, parentID string, index int) *domain.NativeNode {
	n := &domain.NativeNode{
		ID:       jn.ID,
		ParentID: parentID,
		Index:    index,
		Title:    jn.Name,
	}
	switch jn.Type {
	case "folder":
		n.Type = "folder"
		for i, c := range jn.Children {
			n.Children = append(n.Children, mapNode(c, n.ID, i))
		}
	default:
		n.URL = jn.URL
	}
	return n
}
