// Package dispatch routes incoming browser events to the tree
// synchronizer, the history index and the filter index. The three
// observe the same raw events independently; none calls into another.
package dispatch

import (
	"context"
	"sync"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/filter"
	"github.com/hversten/bookmirror/internal/history"
	"github.com/hversten/bookmirror/internal/logger"
	"github.com/hversten/bookmirror/internal/metrics"
	"github.com/hversten/bookmirror/internal/treesync"
)

// Dispatcher serialises event handling: each event's handlers run to
// completion before the next event starts, so no consumer observes a
// partially-applied mutation. Ordering across events for a given node
// is the poster's responsibility.
type Dispatcher struct {
	tree    *treesync.Manager
	history *history.Manager
	filter  *filter.Manager
	logger  logger.Logger

	mu sync.Mutex
}

// New creates a dispatcher over the three managers.
func New(tree *treesync.Manager, hist *history.Manager, filt *filter.Manager, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		tree:    tree,
		history: hist,
		filter:  filt,
		logger:  log,
	}
}

// BookmarkCreated applies a created event.
func (d *Dispatcher) BookmarkCreated(ctx context.Context, id string, native *domain.NativeNode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	metrics.RecordBookmarkEvent("created")

	if err := d.tree.HandleBookmarkCreated(ctx, id, native); err != nil {
		metrics.RecordEventError("created")
		return err
	}
	if err := d.history.HandleBookmarkCreated(ctx, id, native); err != nil {
		metrics.RecordEventError("created")
		return err
	}
	d.filter.HandleBookmarkCreated(id, native)
	return nil
}

// BookmarkRemoved applies a removed event. The tree synchronizer
// reports every removed ID (self plus descendants); the history index
// drops each one, and the filter index sees the fan-out bracketed as a
// batch so it recomputes once instead of once per descendant.
func (d *Dispatcher) BookmarkRemoved(ctx context.Context, id string, info domain.RemoveInfo) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	metrics.RecordBookmarkEvent("removed")

	removed, err := d.tree.HandleBookmarkRemoved(ctx, id, info)

	for _, rid := range removed {
		d.history.HandleBookmarkRemoved(rid)
	}

	if len(removed) > 1 {
		d.filter.BeginBatchRemove()
		for _, rid := range removed {
			d.filter.HandleBookmarkRemoved(rid)
		}
		d.filter.EndBatchRemove()
	} else {
		for _, rid := range removed {
			d.filter.HandleBookmarkRemoved(rid)
		}
	}

	if err != nil {
		metrics.RecordEventError("removed")
		return removed, err
	}
	return removed, nil
}

// BookmarkChanged applies a changed event.
func (d *Dispatcher) BookmarkChanged(ctx context.Context, id string, info domain.ChangeInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	metrics.RecordBookmarkEvent("changed")

	if err := d.tree.HandleBookmarkChanged(ctx, id, info); err != nil {
		metrics.RecordEventError("changed")
		return err
	}
	if err := d.history.HandleBookmarkChanged(ctx, id, info); err != nil {
		metrics.RecordEventError("changed")
		return err
	}
	d.filter.HandleBookmarkChanged(id, info)
	return nil
}

// BookmarkMoved applies a moved event.
func (d *Dispatcher) BookmarkMoved(ctx context.Context, id string, info domain.MoveInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	metrics.RecordBookmarkEvent("moved")

	if err := d.tree.HandleBookmarkMoved(ctx, id, info); err != nil {
		metrics.RecordEventError("moved")
		return err
	}
	d.filter.HandleBookmarkMoved(id, info)
	return nil
}

// Visited applies a history-visited event.
func (d *Dispatcher) Visited(item domain.HistoryItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	metrics.RecordHistoryEvent("visited")

	d.history.HandleVisited(item)
}

// VisitRemoved applies a history-removed event.
func (d *Dispatcher) VisitRemoved(info domain.VisitRemovedInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	metrics.RecordHistoryEvent("visit-removed")

	if !info.AllHistory && len(info.URLs) == 0 {
		// Observed platform quirk: partial removals sometimes carry
		// no URLs. Intentional no-op.
		d.logger.Debug("history removal without urls, ignoring")
	}
	d.history.HandleVisitRemoved(info)
}

