// Package static provides an in-memory bookmark API backed by a fixed
// native tree snapshot. File-based sources parse their input into a
// native tree and serve queries from here.
package static

import (
	"context"
	"fmt"
	"sync"

	"github.com/hversten/bookmirror/internal/domain"
)

// Tree serves browser.BookmarkAPI queries from an indexed snapshot.
type Tree struct {
	mu    sync.RWMutex
	root  *domain.NativeNode
	nodes map[string]*domain.NativeNode
}

// NewTree indexes the given root and all of its descendants.
func NewTree(root *domain.NativeNode) *Tree {
	t := &Tree{}
	t.Replace(root)
	return t
}

// Replace swaps in a new snapshot, dropping the old index.
func (t *Tree) Replace(root *domain.NativeNode) {
	nodes := make(map[string]*domain.NativeNode)
	if root != nil {
		indexNodes(root, nodes)
	}
	t.mu.Lock()
	t.root = root
	t.nodes = nodes
	t.mu.Unlock()
}

func indexNodes(n *domain.NativeNode, into map[string]*domain.NativeNode) {
	into[n.ID] = n
	for _, c := range n.Children {
		indexNodes(c, into)
	}
}

// Tree implements browser.BookmarkAPI.
func (t *Tree) Tree(ctx context.Context) (*domain.NativeNode, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.root == nil {
		return nil, fmt.Errorf("no bookmark tree loaded")
	}
	return copySubtree(t.root), nil
}

// Node implements browser.BookmarkAPI.
func (t *Tree) Node(ctx context.Context, id string) (*domain.NativeNode, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("no node with id %q", id)
	}
	return copyNode(n), nil
}

// Children implements browser.BookmarkAPI.
func (t *Tree) Children(ctx context.Context, id string) ([]*domain.NativeNode, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("no node with id %q", id)
	}
	out := make([]*domain.NativeNode, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, copyNode(c))
	}
	return out, nil
}

// SearchByURL implements browser.BookmarkAPI.
func (t *Tree) SearchByURL(ctx context.Context, url string) ([]*domain.NativeNode, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*domain.NativeNode
	for _, n := range t.nodes {
		if !n.IsFolder() && !n.IsSeparator() && n.URL == url {
			out = append(out, copyNode(n))
		}
	}
	return out, nil
}

// copyNode returns a copy without children, the shape single-node
// lookups are expected to produce.
func copyNode(n *domain.NativeNode) *domain.NativeNode {
	c := *n
	c.Children = nil
	return &c
}

func copySubtree(n *domain.NativeNode) *domain.NativeNode {
	c := *n
	c.Children = make([]*domain.NativeNode, len(n.Children))
	for i, ch := range n.Children {
		c.Children[i] = copySubtree(ch)
	}
	return &c
}
