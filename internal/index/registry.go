package index

import (
	"sync"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/metrics"
)

// Registry is the sole storage structure of the node model: a mapping
// from folder ID to that folder's node record. Bookmarks and
// separators are not independently keyed; they exist only as entries
// inside their parent folder's Children.
//
// The tree synchronizer is the only writer. Entries are replaced
// wholesale (refetch + reconvert), never patched in place, so a reader
// holding a *Node never observes a half-updated record.
type Registry struct {
	mu      sync.RWMutex
	folders map[string]*domain.Node // folder ID -> folder node
	builtin domain.Builtin

	broadcaster *events.Broadcaster // optional
}

// NewRegistry creates an empty registry. The broadcaster may be nil;
// change notifications are then skipped.
func NewRegistry(b *events.Broadcaster) *Registry {
	return &Registry{
		folders:     make(map[string]*domain.Node),
		broadcaster: b,
	}
}

// SetBuiltin records the super-root and permanent-root IDs.
func (r *Registry) SetBuiltin(b domain.Builtin) {
	r.mu.Lock()
	r.builtin = b
	r.mu.Unlock()
}

// Builtin returns the super-root and permanent-root IDs.
func (r *Registry) Builtin() domain.Builtin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builtin
}

// Put stores or replaces a folder entry.
func (r *Registry) Put(n *domain.Node) {
	r.mu.Lock()
	r.folders[n.ID] = n
	count := len(r.folders)
	r.mu.Unlock()

	metrics.SetRegistryFolders(count)
	r.publish(events.EventFolderUpdated, n.ID)
}

// Get retrieves a folder entry by ID.
func (r *Registry) Get(id string) (*domain.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.folders[id]
	return n, ok
}

// Has reports whether a folder entry exists for id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.folders[id]
	return ok
}

// Delete removes a folder entry.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.folders, id)
	count := len(r.folders)
	r.mu.Unlock()

	metrics.SetRegistryFolders(count)
	r.publish(events.EventFolderRemoved, id)
}

// ReplaceAll swaps in a freshly built set of folder entries. Used by
// the full tree load so that entries of folders deleted while the
// mirror was down do not linger.
func (r *Registry) ReplaceAll(folders []*domain.Node) {
	next := make(map[string]*domain.Node, len(folders))
	for _, f := range folders {
		next[f.ID] = f
	}

	r.mu.Lock()
	r.folders = next
	r.mu.Unlock()

	metrics.SetRegistryFolders(len(next))
	r.publish(events.EventTreeReloaded, "")
}

// Folders returns a snapshot of all folder entries.
func (r *Registry) Folders() []*domain.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Node, 0, len(r.folders))
	for _, f := range r.folders {
		out = append(out, f)
	}
	return out
}

// ChildFolderIDs returns the IDs of registry folders whose ParentID is
// parentID. This scans the whole registry on purpose: during a subtree
// removal the parent's stale Children field may reference entries that
// are already gone.
func (r *Registry) ChildFolderIDs(parentID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, f := range r.folders {
		if f.ParentID == parentID {
			ids = append(ids, id)
		}
	}
	return ids
}

// Bookmarks returns a snapshot of every bookmark child across all
// folder entries.
func (r *Registry) Bookmarks() []domain.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Node
	for _, f := range r.folders {
		for _, c := range f.Children {
			if c.Kind == domain.KindBookmark {
				out = append(out, c)
			}
		}
	}
	return out
}

// BookmarkIDsByURL returns the IDs of every bookmark whose URL equals
// url. Duplicates across folders are all reported.
func (r *Registry) BookmarkIDsByURL(url string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, f := range r.folders {
		for _, c := range f.Children {
			if c.Kind == domain.KindBookmark && c.URL == url {
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}

// Count returns the number of folder entries.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.folders)
}

func (r *Registry) publish(eventType, nodeID string) {
	if r.broadcaster == nil {
		return
	}
	r.broadcaster.Publish(events.Event{Type: eventType, NodeID: nodeID})
}
