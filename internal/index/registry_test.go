package index

import (
	"sort"
	"testing"

	"github.com/hversten/bookmirror/internal/domain"
)

func folder(id, parentID, title string, children ...domain.Node) *domain.Node {
	return &domain.Node{
		Kind:     domain.KindFolder,
		ID:       id,
		ParentID: parentID,
		Title:    title,
		Children: children,
	}
}

func bookmark(id, parentID, title, url string) domain.Node {
	return domain.Node{
		Kind:     domain.KindBookmark,
		ID:       id,
		ParentID: parentID,
		Title:    title,
		URL:      url,
	}
}

func TestRegistry_PutGetDelete(t *testing.T) {
	reg := NewRegistry(nil)

	reg.Put(folder("f1", "root", "Reading"))
	if got, ok := reg.Get("f1"); !ok || got.Title != "Reading" {
		t.Errorf("Get(f1) = %+v, %v", got, ok)
	}
	if !reg.Has("f1") || reg.Count() != 1 {
		t.Errorf("Has/Count wrong after Put")
	}

	reg.Delete("f1")
	if reg.Has("f1") || reg.Count() != 0 {
		t.Errorf("entry survived Delete")
	}
}

func TestRegistry_ReplaceAll(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Put(folder("stale", "root", "Old"))

	reg.ReplaceAll([]*domain.Node{
		folder("f1", "root", "A"),
		folder("f2", "root", "B"),
	})

	if reg.Has("stale") {
		t.Error("stale entry survived ReplaceAll")
	}
	if reg.Count() != 2 {
		t.Errorf("Count = %d, want 2", reg.Count())
	}
}

func TestRegistry_ChildFolderIDs(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Put(folder("root", "", "Root"))
	reg.Put(folder("f1", "root", "A"))
	reg.Put(folder("f2", "root", "B"))
	reg.Put(folder("f3", "f1", "C"))

	got := reg.ChildFolderIDs("root")
	sort.Strings(got)
	if len(got) != 2 || got[0] != "f1" || got[1] != "f2" {
		t.Errorf("ChildFolderIDs(root) = %v, want [f1 f2]", got)
	}
	if got := reg.ChildFolderIDs("f2"); len(got) != 0 {
		t.Errorf("ChildFolderIDs(f2) = %v, want none", got)
	}
}

func TestRegistry_BookmarkLookups(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Put(folder("f1", "root", "A",
		bookmark("b1", "f1", "Docs", "https://docs.example.com"),
		domain.Node{Kind: domain.KindSeparator, ID: "s1", ParentID: "f1"},
	))
	reg.Put(folder("f2", "root", "B",
		bookmark("b2", "f2", "Docs copy", "https://docs.example.com"),
		bookmark("b3", "f2", "Other", "https://other.example.com"),
	))

	if got := len(reg.Bookmarks()); got != 3 {
		t.Errorf("Bookmarks() returned %d entries, want 3", got)
	}

	ids := reg.BookmarkIDsByURL("https://docs.example.com")
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "b1" || ids[1] != "b2" {
		t.Errorf("BookmarkIDsByURL = %v, want [b1 b2]", ids)
	}
}

func TestRegistry_Builtin(t *testing.T) {
	reg := NewRegistry(nil)
	reg.SetBuiltin(domain.Builtin{RootID: "root", FolderIDs: []string{"toolbar", "menu"}})

	b := reg.Builtin()
	if b.RootID != "root" || len(b.FolderIDs) != 2 {
		t.Errorf("Builtin = %+v", b)
	}
}
