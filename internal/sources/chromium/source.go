package chromium

import (
	"context"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/sources/static"
)

// Source implements the bookmark and history APIs over a Chromium
// profile directory's Bookmarks and History files.
type Source struct {
	tree          *static.Tree
	bookmarksPath string
	history       *History
}

// Open parses the Bookmarks file and, when historyPath is non-empty,
// opens the History database.
func Open(bookmarksPath, historyPath string) (*Source, error) {
	root, err := ParseBookmarksFile(bookmarksPath)
	if err != nil {
		return nil, err
	}

	s := &Source{
		tree:          static.NewTree(root),
		bookmarksPath: bookmarksPath,
	}
	if historyPath != "" {
		h, err := OpenHistory(historyPath)
		if err != nil {
			return nil, err
		}
		s.history = h
	}
	return s, nil
}

// Reload re-reads the Bookmarks file and swaps in the new snapshot.
// The History database is left open; SQLite reads always see the
// current contents.
func (s *Source) Reload(ctx context.Context) error {
	root, err := ParseBookmarksFile(s.bookmarksPath)
	if err != nil {
		return err
	}
	s.tree.Replace(root)
	return nil
}

// Tree implements browser.BookmarkAPI.
func (s *Source) Tree(ctx context.Context) (*domain.NativeNode, error) {
	return s.tree.Tree(ctx)
}

// Node implements browser.BookmarkAPI.
func (s *Source) Node(ctx context.Context, id string) (*domain.NativeNode, error) {
	return s.tree.Node(ctx, id)
}

// Children implements browser.BookmarkAPI.
func (s *Source) Children(ctx context.Context, id string) ([]*domain.NativeNode, error) {
	return s.tree.Children(ctx, id)
}

// SearchByURL implements browser.BookmarkAPI.
func (s *Source) SearchByURL(ctx context.Context, url string) ([]*domain.NativeNode, error) {
	return s.tree.SearchByURL(ctx, url)
}

// Visits implements browser.HistoryAPI. Without a History database
// every lookup returns nothing.
func (s *Source) Visits(ctx context.Context, url string) ([]domain.Visit, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Visits(ctx, url)
}

// Close releases the History database, if open.
func (s *Source) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}
