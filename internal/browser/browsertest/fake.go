// Package browsertest provides an in-memory browser store for tests.
package browsertest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/hversten/bookmirror/internal/domain"
)

// Fake implements browser.BookmarkAPI and browser.HistoryAPI over an
// in-memory tree. Mutators mirror what a real browser does to its
// store before firing an event, so tests drive the managers with the
// same "mutation already visible to the query API" ordering the real
// event sources guarantee.
type Fake struct {
	mu     sync.Mutex
	nodes  map[string]*fakeNode
	rootID string
	visits map[string][]domain.Visit

	// ReverseVisits makes Visits return records newest-first, like
	// some platforms do.
	ReverseVisits bool

	visitCalls int
}

type fakeNode struct {
	id       string
	parentID string
	title    string
	url      string
	typ      string
	children []string // ordered child IDs, folders only
}

// New creates a fake store containing only the super-root.
func New(rootID string) *Fake {
	f := &Fake{
		nodes:  make(map[string]*fakeNode),
		rootID: rootID,
		visits: make(map[string][]domain.Visit),
	}
	f.nodes[rootID] = &fakeNode{id: rootID, typ: "folder"}
	return f
}

// RootID returns the super-root ID.
func (f *Fake) RootID() string { return f.rootID }

// AddFolder inserts a folder under parentID and returns its native
// shape (as delivered with a created event).
func (f *Fake) AddFolder(id, parentID, title string) *domain.NativeNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(&fakeNode{id: id, parentID: parentID, title: title, typ: "folder"})
	return f.native(f.nodes[id])
}

// AddBookmark inserts a bookmark under parentID.
func (f *Fake) AddBookmark(id, parentID, title, url string) *domain.NativeNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(&fakeNode{id: id, parentID: parentID, title: title, url: url, typ: "bookmark"})
	return f.native(f.nodes[id])
}

// AddSeparator inserts a separator under parentID.
func (f *Fake) AddSeparator(id, parentID string) *domain.NativeNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(&fakeNode{id: id, parentID: parentID, typ: "separator"})
	return f.native(f.nodes[id])
}

// Remove deletes a node and its whole subtree, returning the remove
// info for the corresponding event.
func (f *Fake) Remove(id string) domain.RemoveInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.nodes[id]
	info := domain.RemoveInfo{ParentID: n.parentID, Index: f.indexOf(n), Node: f.native(n)}

	parent := f.nodes[n.parentID]
	parent.children = remove(parent.children, id)

	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, f.nodes[cur].children...)
		delete(f.nodes, cur)
	}
	return info
}

// SetTitle renames a node and returns the change info.
func (f *Fake) SetTitle(id, title string) domain.ChangeInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[id].title = title
	return domain.ChangeInfo{Title: &title}
}

// SetURL rewrites a bookmark URL and returns the change info.
func (f *Fake) SetURL(id, url string) domain.ChangeInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[id].url = url
	return domain.ChangeInfo{URL: &url}
}

// Move relocates a node to parentID at index and returns the move
// info.
func (f *Fake) Move(id, parentID string, idx int) domain.MoveInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.nodes[id]
	info := domain.MoveInfo{ParentID: parentID, Index: idx, OldParentID: n.parentID, OldIndex: f.indexOf(n)}

	old := f.nodes[n.parentID]
	old.children = remove(old.children, id)

	next := f.nodes[parentID]
	if idx < 0 || idx > len(next.children) {
		idx = len(next.children)
	}
	next.children = append(next.children[:idx], append([]string{id}, next.children[idx:]...)...)
	n.parentID = parentID
	return info
}

// SetVisits sets the visit records for a URL. Records are stored in
// chronological order regardless of argument order, matching the
// platform guarantee; ReverseVisits flips them on read.
func (f *Fake) SetVisits(url string, times ...int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := make([]int64, len(times))
	copy(sorted, times)
	slices.Sort(sorted)
	vs := make([]domain.Visit, len(sorted))
	for i, t := range sorted {
		vs[i] = domain.Visit{VisitTime: t}
	}
	f.visits[url] = vs
}

// Tree implements browser.BookmarkAPI.
func (f *Fake) Tree(ctx context.Context) (*domain.NativeNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subtree(f.rootID), nil
}

// Node implements browser.BookmarkAPI.
func (f *Fake) Node(ctx context.Context, id string) (*domain.NativeNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.nodes[id]
	if !ok {
		return nil, fmt.Errorf("no node with id %q", id)
	}
	return f.native(n), nil
}

// Children implements browser.BookmarkAPI.
func (f *Fake) Children(ctx context.Context, id string) ([]*domain.NativeNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.nodes[id]
	if !ok {
		return nil, fmt.Errorf("no node with id %q", id)
	}
	out := make([]*domain.NativeNode, 0, len(n.children))
	for _, cid := range n.children {
		out = append(out, f.native(f.nodes[cid]))
	}
	return out, nil
}

// SearchByURL implements browser.BookmarkAPI.
func (f *Fake) SearchByURL(ctx context.Context, url string) ([]*domain.NativeNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.NativeNode
	for _, n := range f.nodes {
		if n.url == url {
			out = append(out, f.native(n))
		}
	}
	return out, nil
}

// VisitCalls returns how many Visits lookups were issued.
func (f *Fake) VisitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visitCalls
}

// Visits implements browser.HistoryAPI.
func (f *Fake) Visits(ctx context.Context, url string) ([]domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visitCalls++
	vs := f.visits[url]
	out := make([]domain.Visit, len(vs))
	copy(out, vs)
	if f.ReverseVisits {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (f *Fake) insert(n *fakeNode) {
	parent, ok := f.nodes[n.parentID]
	if !ok {
		panic(fmt.Sprintf("browsertest: unknown parent %q", n.parentID))
	}
	f.nodes[n.id] = n
	parent.children = append(parent.children, n.id)
}

func (f *Fake) indexOf(n *fakeNode) int {
	parent, ok := f.nodes[n.parentID]
	if !ok {
		return 0
	}
	for i, id := range parent.children {
		if id == n.id {
			return i
		}
	}
	return 0
}

func (f *Fake) native(n *fakeNode) *domain.NativeNode {
	idx := 0
	if n.id != f.rootID {
		idx = f.indexOf(n)
	}
	return &domain.NativeNode{
		ID:       n.id,
		ParentID: n.parentID,
		Index:    idx,
		Title:    n.title,
		URL:      n.url,
		Type:     n.typ,
	}
}

func (f *Fake) subtree(id string) *domain.NativeNode {
	n := f.nodes[id]
	out := f.native(n)
	for _, cid := range n.children {
		out.Children = append(out.Children, f.subtree(cid))
	}
	return out
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
