// Package history maintains the last-visit-time index: one timestamp
// per bookmark node, derived from the browser's history store and kept
// in sync with the bookmark and history event streams.
package history

import (
	"context"
	"errors"
	"sync"

	"github.com/hversten/bookmirror/internal/browser"
	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/index"
)

// Manager owns the bookmark-ID → last-visit-time mapping. Timestamps
// are milliseconds since the Unix epoch; 0 means never visited or
// unknown. It observes the raw event stream directly, consulting the
// registry only for current structure.
type Manager struct {
	api      browser.HistoryAPI
	registry *index.Registry

	mu     sync.RWMutex
	visits map[string]int64 // bookmark node ID -> last visit, ms epoch
	loaded bool

	broadcaster *events.Broadcaster // optional
}

// New creates a history index reading structure from registry.
func New(api browser.HistoryAPI, registry *index.Registry, b *events.Broadcaster) *Manager {
	return &Manager{
		api:         api,
		registry:    registry,
		visits:      make(map[string]int64),
		broadcaster: b,
	}
}

// Init seeds an entry of 0 for every bookmark currently in the
// registry, establishing the full entry set before any asynchronous
// work.
func (m *Manager) Init() {
	bookmarks := m.registry.Bookmarks()

	m.mu.Lock()
	for _, bm := range bookmarks {
		m.visits[bm.ID] = 0
	}
	m.mu.Unlock()
	m.notify()
}

// LoadHistory resolves the real last-visit time of every indexed
// bookmark. It is single-shot: a second call before UnloadHistory is a
// no-op. Lookups run concurrently; results are attributed back by the
// index-aligned ID slice.
//
// Successful lookups are applied even when others fail; the combined
// failure is returned and the caller may UnloadHistory and retry.
func (m *Manager) LoadHistory(ctx context.Context) error {
	m.mu.Lock()
	if m.loaded {
		m.mu.Unlock()
		return nil
	}
	m.loaded = true
	m.mu.Unlock()

	bookmarks := m.registry.Bookmarks()
	ids := make([]string, len(bookmarks))
	urls := make([]string, len(bookmarks))
	for i, bm := range bookmarks {
		ids[i] = bm.ID
		urls[i] = bm.URL
	}

	times := make([]int64, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			visits, err := m.api.Visits(ctx, urls[i])
			if err != nil {
				errs[i] = err
				return
			}
			times[i] = latestVisit(visits)
		}(i)
	}
	wg.Wait()

	m.mu.Lock()
	for i, id := range ids {
		if errs[i] == nil {
			m.visits[id] = times[i]
		}
	}
	m.mu.Unlock()
	m.notify()

	return errors.Join(errs...)
}

// UnloadHistory resets every entry to 0 and clears the loaded flag so
// a future LoadHistory runs again.
func (m *Manager) UnloadHistory() {
	m.mu.Lock()
	for id := range m.visits {
		m.visits[id] = 0
	}
	m.loaded = false
	m.mu.Unlock()
	m.notify()
}

// HandleBookmarkCreated indexes a newly created bookmark with its
// current visit time. Folders and separators are ignored.
func (m *Manager) HandleBookmarkCreated(ctx context.Context, id string, native *domain.NativeNode) error {
	if native.URL == "" || native.IsSeparator() {
		return nil
	}

	visits, err := m.api.Visits(ctx, native.URL)
	if err != nil {
		return err
	}
	m.set(id, latestVisit(visits))
	return nil
}

// HandleBookmarkRemoved drops the index entry if one exists. Folders
// and separators never had one, so this is a safe no-op for them.
func (m *Manager) HandleBookmarkRemoved(id string) {
	m.mu.Lock()
	_, ok := m.visits[id]
	delete(m.visits, id)
	m.mu.Unlock()
	if ok {
		m.notify()
	}
}

// HandleBookmarkChanged re-derives the visit time when the change
// carries a URL. A change with no URL is ignored entirely: folder
// renames and bookmark title-only edits cannot affect URL-keyed visit
// data.
func (m *Manager) HandleBookmarkChanged(ctx context.Context, id string, info domain.ChangeInfo) error {
	if info.URL == nil {
		return nil
	}

	visits, err := m.api.Visits(ctx, *info.URL)
	if err != nil {
		return err
	}
	m.set(id, latestVisit(visits))
	return nil
}

// HandleVisited stamps every bookmark sharing the visited URL, so
// duplicates across folders all update.
func (m *Manager) HandleVisited(item domain.HistoryItem) {
	ids := m.registry.BookmarkIDsByURL(item.URL)
	if len(ids) == 0 {
		return
	}

	m.mu.Lock()
	for _, id := range ids {
		m.visits[id] = item.LastVisitTime
	}
	m.mu.Unlock()
	m.notify()
}

// HandleVisitRemoved resets entries affected by a history removal. A
// full-history clear zeroes everything. Otherwise only the first URL
// of the removal is considered; the list has been observed empty on
// some platforms even when AllHistory is false, which is treated as a
// silent no-op rather than an error.
func (m *Manager) HandleVisitRemoved(info domain.VisitRemovedInfo) {
	if info.AllHistory {
		m.mu.Lock()
		for id := range m.visits {
			m.visits[id] = 0
		}
		m.mu.Unlock()
		m.notify()
		return
	}

	if len(info.URLs) == 0 {
		return
	}

	ids := m.registry.BookmarkIDsByURL(info.URLs[0])
	if len(ids) == 0 {
		return
	}

	m.mu.Lock()
	for _, id := range ids {
		if _, ok := m.visits[id]; ok {
			m.visits[id] = 0
		}
	}
	m.mu.Unlock()
	m.notify()
}

// LastVisit returns a bookmark's last visit time in ms since epoch,
// 0 when unknown.
func (m *Manager) LastVisit(id string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visits[id]
}

// Snapshot returns a copy of the whole index.
func (m *Manager) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.visits))
	for id, t := range m.visits {
		out[id] = t
	}
	return out
}

// Restore replaces the index from a snapshot (startup warm path).
func (m *Manager) Restore(snapshot map[string]int64) {
	m.mu.Lock()
	m.visits = make(map[string]int64, len(snapshot))
	for id, t := range snapshot {
		m.visits[id] = t
	}
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) set(id string, t int64) {
	m.mu.Lock()
	m.visits[id] = t
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) notify() {
	if m.broadcaster != nil {
		m.broadcaster.Publish(events.Event{Type: events.EventVisitsChanged})
	}
}

// latestVisit picks the most recent visit. The underlying API returns
// visits chronologically on one platform and reverse-chronologically
// on another, so the correct element is whichever of the first and
// last entries carries the larger timestamp.
func latestVisit(visits []domain.Visit) int64 {
	if len(visits) == 0 {
		return 0
	}
	first := visits[0].VisitTime
	last := visits[len(visits)-1].VisitTime
	if first > last {
		return first
	}
	return last
}
