// Package treesync keeps the folder registry mirroring the browser's
// bookmark tree: a full build on load, then incremental repair per
// create/remove/change/move event.
package treesync

import (
	"context"
	"errors"
	"fmt"

	"github.com/hversten/bookmirror/internal/browser"
	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/index"
)

// ErrNotFolder reports that a folder refresh was asked for an ID the
// browser resolves to a non-folder. This is a logic error or an
// unexpected native response shape, not a recoverable condition; the
// handler aborts without partial recovery.
var ErrNotFolder = errors.New("refresh target is not a folder")

// Manager is the tree synchronizer. It is the only writer of the
// registry. Handlers are expected to be invoked to completion in the
// order the underlying mutations occurred for any given node; they do
// not retry, and a failed handler leaves the touched entries stale
// until the next successful mutation or full reload.
type Manager struct {
	api      browser.BookmarkAPI
	registry *index.Registry

	// mobileRootID is the reserved permanent folder excluded from the
	// node model entirely.
	mobileRootID string
}

// New creates a tree synchronizer writing into registry.
func New(api browser.BookmarkAPI, registry *index.Registry, mobileRootID string) *Manager {
	return &Manager{
		api:          api,
		registry:     registry,
		mobileRootID: mobileRootID,
	}
}

// Registry exposes read access to the folder registry.
func (m *Manager) Registry() *index.Registry { return m.registry }

// LoadBookmarks fetches the full native tree and rebuilds the registry
// from it: one entry per folder, including the super-root, each
// holding immediate children only. The reserved mobile subtree is
// excluded from the built-in folder list and from the model.
//
// The traversal is iterative; bookmark trees are user data and can be
// arbitrarily deep.
func (m *Manager) LoadBookmarks(ctx context.Context) error {
	root, err := m.api.Tree(ctx)
	if err != nil {
		return fmt.Errorf("fetch bookmark tree: %w", err)
	}

	builtin := domain.Builtin{RootID: root.ID}
	for _, c := range root.Children {
		if c.ID == m.mobileRootID {
			continue
		}
		builtin.FolderIDs = append(builtin.FolderIDs, c.ID)
	}

	var folders []*domain.Node
	stack := []*domain.NativeNode{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		folders = append(folders, folderEntry(cur, cur.Children, m.mobileRootID))

		for _, c := range cur.Children {
			if c.ID == m.mobileRootID || !c.IsFolder() {
				continue
			}
			stack = append(stack, c)
		}
	}

	m.registry.ReplaceAll(folders)
	m.registry.SetBuiltin(builtin)
	return nil
}

// HandleBookmarkCreated registers a new folder entry when the created
// node is itself a folder, then refreshes the parent so the new child
// appears in its Children at the right position. The parent refresh is
// a full reconvert, not a point patch.
func (m *Manager) HandleBookmarkCreated(ctx context.Context, id string, native *domain.NativeNode) error {
	if native.IsFolder() {
		children, err := m.api.Children(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch children of created folder %s: %w", id, err)
		}
		m.registry.Put(folderEntry(native, children, m.mobileRootID))
	}
	return m.refreshFolder(ctx, native.ParentID)
}

// HandleBookmarkRemoved deletes the removed node's entries and returns
// every removed node ID: the node itself plus, for folders, all
// descendants at all levels.
//
// Folder children are discovered by scanning the registry for entries
// whose ParentID is the current folder, not by trusting the stale
// Children field, which may reference entries already removed. Each
// visited folder's entry is deleted as it is visited. The former
// parent entry is refreshed last to mirror the remaining children.
func (m *Manager) HandleBookmarkRemoved(ctx context.Context, id string, info domain.RemoveInfo) ([]string, error) {
	var removed []string

	if m.registry.Has(id) {
		stack := []string{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entry, ok := m.registry.Get(cur)
			if !ok {
				continue
			}
			removed = append(removed, cur)
			for _, c := range entry.Children {
				if c.Kind != domain.KindFolder {
					removed = append(removed, c.ID)
				}
			}
			stack = append(stack, m.registry.ChildFolderIDs(cur)...)
			m.registry.Delete(cur)
		}
	} else {
		removed = []string{id}
	}

	if err := m.refreshFolder(ctx, info.ParentID); err != nil {
		return removed, err
	}
	return removed, nil
}

// HandleBookmarkChanged refreshes the changed folder directly when id
// is a known folder; otherwise it is a bookmark change and the current
// parent is refreshed instead.
func (m *Manager) HandleBookmarkChanged(ctx context.Context, id string, _ domain.ChangeInfo) error {
	if m.registry.Has(id) {
		return m.refreshFolder(ctx, id)
	}

	native, err := m.api.Node(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch changed node %s: %w", id, err)
	}
	return m.refreshFolder(ctx, native.ParentID)
}

// HandleBookmarkMoved refreshes the new parent and, for cross-folder
// moves, the old parent. A reorder within one folder is covered by the
// new-parent refresh alone since position is encoded in the refetched
// children.
func (m *Manager) HandleBookmarkMoved(ctx context.Context, id string, info domain.MoveInfo) error {
	if err := m.refreshFolder(ctx, info.ParentID); err != nil {
		return err
	}
	if info.OldParentID != info.ParentID {
		return m.refreshFolder(ctx, info.OldParentID)
	}
	return nil
}

// refreshFolder is the shared repair primitive: refetch the node,
// verify it is a folder, refetch its children and overwrite the
// registry entry. Refetch-and-reconvert is chosen over diffing because
// the browser APIs do not carry enough information to patch
// positionally in all cases, reordering in particular.
func (m *Manager) refreshFolder(ctx context.Context, id string) error {
	if m.mobileRootID != "" && id == m.mobileRootID {
		// Events under the excluded mobile subtree must not pull its
		// root into the registry through a parent refresh.
		return nil
	}

	native, err := m.api.Node(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch folder %s: %w", id, err)
	}
	if !native.IsFolder() {
		return fmt.Errorf("%w: %s", ErrNotFolder, id)
	}

	children, err := m.api.Children(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch children of %s: %w", id, err)
	}

	m.registry.Put(folderEntry(native, children, m.mobileRootID))
	return nil
}
