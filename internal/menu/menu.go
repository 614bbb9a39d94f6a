// Package menu implements the per-node context commands exposed by the
// HTTP surface. Each command decides for itself whether it applies to
// a given node and what clicking it does.
package menu

import (
	"context"
	"fmt"
	"sort"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/index"
)

// Command is one context-menu entry.
type Command interface {
	// ID is the command's stable identifier.
	ID() string

	// Enabled reports whether the command applies to the node.
	Enabled(nodeID string) bool

	// OnClicked performs the command against the node.
	OnClicked(ctx context.Context, nodeID string) error
}

// Registry holds the available commands keyed by ID.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry over the given commands.
func NewRegistry(commands ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(commands))}
	for _, c := range commands {
		r.commands[c.ID()] = c
	}
	return r
}

// Get returns the command with the given ID.
func (r *Registry) Get(id string) (Command, bool) {
	c, ok := r.commands[id]
	return c, ok
}

// EnabledFor returns the IDs of the commands that apply to the node,
// sorted for stable output.
func (r *Registry) EnabledFor(nodeID string) []string {
	var ids []string
	for id, c := range r.commands {
		if c.Enabled(nodeID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Click runs the command with the given ID against the node.
func (r *Registry) Click(ctx context.Context, commandID, nodeID string) error {
	c, ok := r.commands[commandID]
	if !ok {
		return fmt.Errorf("unknown command %q", commandID)
	}
	if !c.Enabled(nodeID) {
		return fmt.Errorf("command %q not enabled for node %q", commandID, nodeID)
	}
	return c.OnClicked(ctx, nodeID)
}

// findNode locates any node in the mirror along with its position in
// its parent. Folders live in the registry directly; bookmarks and
// separators only exist as children of a registered folder.
func findNode(reg *index.Registry, id string) (node domain.Node, parentID string, idx int, ok bool) {
	for _, folder := range reg.Folders() {
		for i, child := range folder.Children {
			if child.ID == id {
				return child, folder.ID, i, true
			}
		}
	}
	if folder, found := reg.Get(id); found {
		return *folder, folder.ParentID, 0, true
	}
	return domain.Node{}, "", 0, false
}

// isBuiltin reports whether the node is the super-root or one of the
// permanent top-level folders.
func isBuiltin(reg *index.Registry, id string) bool {
	b := reg.Builtin()
	if id == b.RootID {
		return true
	}
	for _, fid := range b.FolderIDs {
		if fid == id {
			return true
		}
	}
	return false
}
