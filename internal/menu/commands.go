package menu

import (
	"context"
	"fmt"

	"github.com/hversten/bookmirror/internal/dispatch"
	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/index"
)

// Delete removes a node from the mirror by replaying the removal
// through the regular event path, so every index reacts the same way
// it would to a browser-originated deletion.
type Delete struct {
	Registry   *index.Registry
	Dispatcher *dispatch.Dispatcher
}

func (d *Delete) ID() string { return "delete" }

// Enabled allows deleting anything except the super-root and the
// permanent top-level folders.
func (d *Delete) Enabled(nodeID string) bool {
	if isBuiltin(d.Registry, nodeID) {
		return false
	}
	_, _, _, ok := findNode(d.Registry, nodeID)
	return ok
}

func (d *Delete) OnClicked(ctx context.Context, nodeID string) error {
	node, parentID, idx, ok := findNode(d.Registry, nodeID)
	if !ok {
		return fmt.Errorf("no node with id %q", nodeID)
	}
	info := domain.RemoveInfo{
		ParentID: parentID,
		Index:    idx,
	}
	if _, err := d.Dispatcher.BookmarkRemoved(ctx, node.ID, info); err != nil {
		return fmt.Errorf("failed to remove node %q: %w", nodeID, err)
	}
	return nil
}

// OpenAllInTabs asks the companion extension, via the event stream, to
// open every bookmark in a folder.
type OpenAllInTabs struct {
	Registry    *index.Registry
	Broadcaster *events.Broadcaster
}

func (o *OpenAllInTabs) ID() string { return "open-all-in-tabs" }

// Enabled requires a folder with at least one direct bookmark child.
func (o *OpenAllInTabs) Enabled(nodeID string) bool {
	folder, ok := o.Registry.Get(nodeID)
	if !ok {
		return false
	}
	for _, child := range folder.Children {
		if child.Kind == domain.KindBookmark {
			return true
		}
	}
	return false
}

func (o *OpenAllInTabs) OnClicked(ctx context.Context, nodeID string) error {
	if _, ok := o.Registry.Get(nodeID); !ok {
		return fmt.Errorf("no folder with id %q", nodeID)
	}
	o.Broadcaster.Publish(events.Event{Type: events.EventOpenTabs, NodeID: nodeID})
	return nil
}

// Properties asks the presentation layer to show the node's details.
type Properties struct {
	Registry    *index.Registry
	Broadcaster *events.Broadcaster
}

func (p *Properties) ID() string { return "properties" }

// Enabled applies to bookmarks and folders; separators have nothing to
// show, and the super-root is not a user-facing node.
func (p *Properties) Enabled(nodeID string) bool {
	if nodeID == p.Registry.Builtin().RootID {
		return false
	}
	node, _, _, ok := findNode(p.Registry, nodeID)
	return ok && node.Kind != domain.KindSeparator
}

func (p *Properties) OnClicked(ctx context.Context, nodeID string) error {
	node, _, _, ok := findNode(p.Registry, nodeID)
	if !ok {
		return fmt.Errorf("no node with id %q", nodeID)
	}
	if node.Kind == domain.KindSeparator {
		return fmt.Errorf("node %q has no properties", nodeID)
	}
	p.Broadcaster.Publish(events.Event{Type: events.EventShowProperties, NodeID: nodeID})
	return nil
}
