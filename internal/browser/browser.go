// Package browser defines the contracts through which the sync core
// reaches the externally-authoritative bookmark and history stores.
// The stores are the source of truth; everything the core maintains is
// a derived cache rebuildable from them.
package browser

import (
	"context"

	"github.com/hversten/bookmirror/internal/domain"
)

// BookmarkAPI is the bookmark-tree query surface.
type BookmarkAPI interface {
	// Tree fetches the whole bookmark tree as a single root with
	// nested children.
	Tree(ctx context.Context) (*domain.NativeNode, error)

	// Node fetches a single node by ID, without children.
	Node(ctx context.Context, id string) (*domain.NativeNode, error)

	// Children fetches a folder's immediate children by ID, in
	// display order.
	Children(ctx context.Context, id string) ([]*domain.NativeNode, error)

	// SearchByURL returns the bookmark nodes whose URL equals url.
	SearchByURL(ctx context.Context, url string) ([]*domain.NativeNode, error)
}

// HistoryAPI is the history query surface.
type HistoryAPI interface {
	// Visits returns the visit records for a URL. Order is platform
	// dependent: chronological on some browsers, reverse on others.
	Visits(ctx context.Context, url string) ([]domain.Visit, error)
}
