// Package filter maintains the match set for the active text filter:
// the IDs of bookmarks matching a case-insensitive substring of their
// title or URL, plus every folder on each matching bookmark's path to
// the root.
package filter

import (
	"strings"
	"sync"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/index"
	"github.com/hversten/bookmirror/internal/metrics"
)

// Manager owns the filter text and the match set. Single mutations
// patch the set incrementally where that is simple (creation) and
// recompute it wholesale where it is not (removal, change, move):
// working out exactly which entries one removal invalidates costs more
// than rebuilding, and none of those are hot paths.
type Manager struct {
	registry *index.Registry

	mu      sync.RWMutex
	text    string // lowercased; empty = no active filter
	matches map[string]struct{}
	batch   bool

	broadcaster *events.Broadcaster // optional
}

// New creates a filter index reading structure from registry.
func New(registry *index.Registry, b *events.Broadcaster) *Manager {
	return &Manager{
		registry:    registry,
		matches:     make(map[string]struct{}),
		broadcaster: b,
	}
}

// SetFilter stores the filter text and rebuilds the match set in two
// passes. Pass one collects matching bookmarks and their direct parent
// folders; pass two closes the set over each collected folder's
// ancestor chain. Two passes mean parent entries need not be visited
// in dependency order.
func (m *Manager) SetFilter(text string) {
	m.mu.Lock()
	m.text = strings.ToLower(text)
	m.rebuild()
	m.mu.Unlock()
	m.notify()
}

// ClearFilter drops the filter text and empties the match set.
func (m *Manager) ClearFilter() {
	m.mu.Lock()
	m.text = ""
	m.matches = make(map[string]struct{})
	m.mu.Unlock()

	metrics.SetFilterMatches(0)
	m.notify()
}

// Filter returns the active filter text ("" when inactive).
func (m *Manager) Filter() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.text
}

// Matches reports whether id is in the match set.
func (m *Manager) Matches(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.matches[id]
	return ok
}

// MatchSet returns a copy of the match set.
func (m *Manager) MatchSet() map[string]struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]struct{}, len(m.matches))
	for id := range m.matches {
		out[id] = struct{}{}
	}
	return out
}

// HandleBookmarkCreated patches the set for one new bookmark: when it
// matches, its ID joins the set along with its full ancestor chain,
// resolved through the registry rather than the native payload.
func (m *Manager) HandleBookmarkCreated(id string, native *domain.NativeNode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.text == "" || native.IsFolder() || native.IsSeparator() {
		return
	}
	if !m.matchText(native.Title, native.URL) {
		return
	}

	m.matches[id] = struct{}{}
	m.addAncestors(native.ParentID)
	metrics.SetFilterMatches(len(m.matches))
	m.notifyLocked()
}

// HandleBookmarkRemoved triggers a full recompute when a filter is
// active, unless a batch removal is in progress, in which case it is
// a pure no-op and the recompute happens once at EndBatchRemove.
func (m *Manager) HandleBookmarkRemoved(string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.batch {
		return
	}
	m.recomputeLocked()
}

// HandleBookmarkChanged recomputes the set when a filter is active;
// changes can alter membership in ways cheaper to rebuild than patch.
func (m *Manager) HandleBookmarkChanged(string, domain.ChangeInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputeLocked()
}

// HandleBookmarkMoved recomputes the set when a filter is active. The
// moved bookmark's membership is then evaluated against its new
// ancestor chain only.
func (m *Manager) HandleBookmarkMoved(string, domain.MoveInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputeLocked()
}

// BeginBatchRemove suppresses per-removal recomputes. A folder
// deletion fans out into one removal event per descendant; rebuilding
// after each would be wasteful and can read a transiently-inconsistent
// registry mid-deletion.
func (m *Manager) BeginBatchRemove() {
	m.mu.Lock()
	m.batch = true
	m.mu.Unlock()
}

// EndBatchRemove ends suppression and, if it was active, triggers the
// single deferred recompute.
func (m *Manager) EndBatchRemove() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.batch {
		return
	}
	m.batch = false
	m.recomputeLocked()
}

// Recompute rebuilds the match set against the current registry
// contents. Used after a full tree reload.
func (m *Manager) Recompute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputeLocked()
}

// recomputeLocked rebuilds the match set from the stored filter when
// one is active. Caller holds mu.
func (m *Manager) recomputeLocked() {
	if m.text == "" {
		return
	}
	m.rebuild()
	m.notifyLocked()
}

// rebuild runs the two-pass recompute. Caller holds mu.
func (m *Manager) rebuild() {
	m.matches = make(map[string]struct{})
	if m.text == "" {
		metrics.SetFilterMatches(0)
		return
	}

	// Pass 1: matching bookmarks and their direct parents.
	var parents []string
	for _, folder := range m.registry.Folders() {
		hadMatch := false
		for _, c := range folder.Children {
			if c.Kind != domain.KindBookmark {
				continue
			}
			if m.matchText(c.Title, c.URL) {
				m.matches[c.ID] = struct{}{}
				hadMatch = true
			}
		}
		if hadMatch {
			m.matches[folder.ID] = struct{}{}
			parents = append(parents, folder.ID)
		}
	}

	// Pass 2: close over ancestor chains.
	for _, id := range parents {
		if folder, ok := m.registry.Get(id); ok {
			m.addAncestors(folder.ParentID)
		}
	}

	metrics.SetFilterMatches(len(m.matches))
}

// addAncestors walks the ParentID chain up to the root, adding every
// folder along the way. Caller holds mu.
func (m *Manager) addAncestors(parentID string) {
	for parentID != "" {
		m.matches[parentID] = struct{}{}
		folder, ok := m.registry.Get(parentID)
		if !ok {
			return
		}
		parentID = folder.ParentID
	}
}

func (m *Manager) matchText(title, url string) bool {
	return strings.Contains(strings.ToLower(title), m.text) ||
		strings.Contains(strings.ToLower(url), m.text)
}

func (m *Manager) notifyLocked() {
	if m.broadcaster != nil {
		m.broadcaster.Publish(events.Event{Type: events.EventFilterChanged})
	}
}

func (m *Manager) notify() {
	if m.broadcaster != nil {
		m.broadcaster.Publish(events.Event{Type: events.EventFilterChanged})
	}
}
