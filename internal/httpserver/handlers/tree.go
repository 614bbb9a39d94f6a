package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/httpserver/deps"
)

// treeNode is the presentation shape of one mirrored node. Bookmarks
// carry their last visit time; when a filter is active every node
// reports whether it is in the match set.
type treeNode struct {
	Kind      string     `json:"kind"`
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	URL       string     `json:"url,omitempty"`
	LastVisit int64      `json:"lastVisit,omitempty"`
	Matched   *bool      `json:"matched,omitempty"`
	Children  []treeNode `json:"children,omitempty"`
}

type treeResponse struct {
	RootID  string     `json:"rootId"`
	Filter  string     `json:"filter,omitempty"`
	Folders []treeNode `json:"folders"`
}

// Tree serves the full mirrored tree, expanded from the permanent
// top-level folders down.
func Tree(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		builtin := d.Registry.Builtin()
		filterText := d.Filter.Filter()

		resp := treeResponse{
			RootID: builtin.RootID,
			Filter: filterText,
		}
		for _, id := range builtin.FolderIDs {
			folder, ok := d.Registry.Get(id)
			if !ok {
				continue
			}
			resp.Folders = append(resp.Folders, expandFolder(d, folder, filterText != ""))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// expandFolder turns one registry entry into a presentation node,
// resolving child folder stubs through the registry.
func expandFolder(d deps.Deps, folder *domain.Node, filtered bool) treeNode {
	out := treeNode{
		Kind:  string(folder.Kind),
		ID:    folder.ID,
		Title: folder.Title,
	}
	if filtered {
		m := d.Filter.Matches(folder.ID)
		out.Matched = &m
	}

	for _, child := range folder.Children {
		switch child.Kind {
		case domain.KindFolder:
			if full, ok := d.Registry.Get(child.ID); ok {
				out.Children = append(out.Children, expandFolder(d, full, filtered))
				continue
			}
			// Stub without a registry entry: render it empty rather
			// than dropping it.
			out.Children = append(out.Children, treeNode{
				Kind:  string(child.Kind),
				ID:    child.ID,
				Title: child.Title,
			})
		case domain.KindBookmark:
			n := treeNode{
				Kind:      string(child.Kind),
				ID:        child.ID,
				Title:     child.Title,
				URL:       child.URL,
				LastVisit: d.History.LastVisit(child.ID),
			}
			if filtered {
				m := d.Filter.Matches(child.ID)
				n.Matched = &m
			}
			out.Children = append(out.Children, n)
		default:
			out.Children = append(out.Children, treeNode{
				Kind: string(child.Kind),
				ID:   child.ID,
			})
		}
	}
	return out
}
