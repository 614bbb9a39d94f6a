package treesync

import (
	"github.com/hversten/bookmirror/internal/domain"
)

// convertChildren maps one level of native children into node model
// entries. Grandchildren are not descended into; nested folders get
// their own registry entries with their own children lists.
// Unrecognized native shapes are dropped rather than erroring: the
// browser is the source of truth and may expose node kinds this model
// does not cover. The reserved mobile root never converts.
func convertChildren(children []*domain.NativeNode, skipID string) []domain.Node {
	out := make([]domain.Node, 0, len(children))
	for _, c := range children {
		if skipID != "" && c.ID == skipID {
			continue
		}
		if n, ok := convertChild(c); ok {
			out = append(out, n)
		}
	}
	return out
}

func convertChild(c *domain.NativeNode) (domain.Node, bool) {
	switch {
	case c.IsSeparator():
		return domain.Node{
			Kind:     domain.KindSeparator,
			ID:       c.ID,
			ParentID: c.ParentID,
		}, true
	case c.URL != "":
		return domain.Node{
			Kind:     domain.KindBookmark,
			ID:       c.ID,
			ParentID: c.ParentID,
			Title:    c.Title,
			URL:      c.URL,
		}, true
	case c.Type == "" || c.Type == "folder":
		return domain.Node{
			Kind:     domain.KindFolder,
			ID:       c.ID,
			ParentID: c.ParentID,
			Title:    c.Title,
		}, true
	default:
		return domain.Node{}, false
	}
}

// folderEntry assembles a registry entry for a folder from its native
// node and its freshly fetched children.
func folderEntry(native *domain.NativeNode, children []*domain.NativeNode, skipID string) *domain.Node {
	return &domain.Node{
		Kind:     domain.KindFolder,
		ID:       native.ID,
		ParentID: native.ParentID,
		Title:    native.Title,
		Children: convertChildren(children, skipID),
	}
}
