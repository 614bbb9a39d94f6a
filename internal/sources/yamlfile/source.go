package yamlfile

import (
	"context"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/sources/static"
)

// Source implements the bookmark and history APIs over a YAML seed
// file. Seed files carry no visit data, so every history lookup
// returns nothing.
type Source struct {
	tree   *static.Tree
	loader *Loader
	mapper *Mapper
}

// Open loads the seed file at path and returns a ready source.
func Open(path string) (*Source, error) {
	s := &Source{
		loader: NewLoader(path),
		mapper: NewMapper(),
	}
	root, err := s.load()
	if err != nil {
		return nil, err
	}
	s.tree = static.NewTree(root)
	return s, nil
}

// Reload re-reads the seed file and swaps in the new snapshot.
func (s *Source) Reload(ctx context.Context) error {
	root, err := s.load()
	if err != nil {
		return err
	}
	s.tree.Replace(root)
	return nil
}

func (s *Source) load() (*domain.NativeNode, error) {
	config, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	return s.mapper.MapTree(config)
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

// Visits implements browser.HistoryAPI.
func (s *Source) Visits(ctx context.Context, url string) ([]domain.Visit, error) {
	return nil, nil
}
