package treesync

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/hversten/bookmirror/internal/browser/browsertest"
	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/index"
)

const mobileID = "mobile______"

// newTestTree builds the standard fixture:
//
//	root
//	├── toolbar
//	│   ├── b1 (bookmark)
//	│   └── f1
//	│       ├── b2 (bookmark)
//	│       ├── s1 (separator)
//	│       └── f2
//	│           └── b3 (bookmark)
//	├── menu
//	└── mobile (reserved, excluded)
//	    └── mb1 (bookmark)
func newTestTree(t *testing.T) (*browsertest.Fake, *Manager) {
	t.Helper()

	fake := browsertest.New("root________")
	fake.AddFolder("toolbar", "root________", "Toolbar")
	fake.AddFolder("menu", "root________", "Menu")
	fake.AddFolder(mobileID, "root________", "Mobile Bookmarks")
	fake.AddBookmark("b1", "toolbar", "Go blog", "https://go.dev/blog")
	fake.AddFolder("f1", "toolbar", "Reading")
	fake.AddBookmark("b2", "f1", "Wiki", "https://en.wikipedia.org")
	fake.AddSeparator("s1", "f1")
	fake.AddFolder("f2", "f1", "Archive")
	fake.AddBookmark("b3", "f2", "Old news", "https://example.com/news")
	fake.AddBookmark("mb1", mobileID, "Phone", "https://example.com/phone")

	m := New(fake, index.NewRegistry(nil), mobileID)
	if err := m.LoadBookmarks(context.Background()); err != nil {
		t.Fatalf("LoadBookmarks failed: %v", err)
	}
	return fake, m
}

func TestLoadBookmarks_RegistryCompleteness(t *testing.T) {
	_, m := newTestTree(t)
	reg := m.Registry()

	// One entry per folder, root included, mobile subtree excluded.
	want := []string{"root________", "toolbar", "menu", "f1", "f2"}
	if reg.Count() != len(want) {
		t.Errorf("expected %d folder entries, got %d", len(want), reg.Count())
	}
	for _, id := range want {
		if !reg.Has(id) {
			t.Errorf("missing registry entry for folder %s", id)
		}
	}
	for _, id := range []string{"b1", "b2", "b3", "s1", mobileID, "mb1"} {
		if reg.Has(id) {
			t.Errorf("unexpected registry entry for %s", id)
		}
	}
}

func TestLoadBookmarks_Builtin(t *testing.T) {
	_, m := newTestTree(t)

	builtin := m.Registry().Builtin()
	if builtin.RootID != "root________" {
		t.Errorf("expected root id root________, got %s", builtin.RootID)
	}
	if len(builtin.FolderIDs) != 2 || builtin.FolderIDs[0] != "toolbar" || builtin.FolderIDs[1] != "menu" {
		t.Errorf("expected builtin folders [toolbar menu], got %v", builtin.FolderIDs)
	}
}

func TestLoadBookmarks_OneLevelChildren(t *testing.T) {
	_, m := newTestTree(t)

	f1, ok := m.Registry().Get("f1")
	if !ok {
		t.Fatal("missing f1 entry")
	}
	if len(f1.Children) != 3 {
		t.Fatalf("expected 3 children in f1, got %d", len(f1.Children))
	}

	kinds := []domain.Kind{domain.KindBookmark, domain.KindSeparator, domain.KindFolder}
	for i, k := range kinds {
		if f1.Children[i].Kind != k {
			t.Errorf("child %d: expected kind %s, got %s", i, k, f1.Children[i].Kind)
		}
	}
	// The nested folder is a stub; its grandchildren live in its own
	// entry.
	if len(f1.Children[2].Children) != 0 {
		t.Errorf("nested folder stub should carry no children, got %d", len(f1.Children[2].Children))
	}

	f2, _ := m.Registry().Get("f2")
	if len(f2.Children) != 1 || f2.Children[0].ID != "b3" {
		t.Errorf("f2 children wrong: %+v", f2.Children)
	}

	root, _ := m.Registry().Get("root________")
	for _, c := range root.Children {
		if c.ID == mobileID {
			t.Error("mobile root leaked into the super-root's children")
		}
	}
}

func TestHandleBookmarkCreated_Bookmark(t *testing.T) {
	fake, m := newTestTree(t)

	native := fake.AddBookmark("b4", "toolbar", "New", "https://new.example.com")
	if err := m.HandleBookmarkCreated(context.Background(), "b4", native); err != nil {
		t.Fatalf("HandleBookmarkCreated failed: %v", err)
	}

	toolbar, _ := m.Registry().Get("toolbar")
	last := toolbar.Children[len(toolbar.Children)-1]
	if last.ID != "b4" || last.Kind != domain.KindBookmark {
		t.Errorf("new bookmark not mirrored into parent, children: %+v", toolbar.Children)
	}
	if m.Registry().Has("b4") {
		t.Error("bookmark must not get its own registry entry")
	}
}

func TestHandleBookmarkCreated_FolderWithChildren(t *testing.T) {
	fake, m := newTestTree(t)

	// Imported folder: children exist by the time the event fires.
	native := fake.AddFolder("f3", "menu", "Imported")
	fake.AddBookmark("b5", "f3", "Inside", "https://inside.example.com")

	if err := m.HandleBookmarkCreated(context.Background(), "f3", native); err != nil {
		t.Fatalf("HandleBookmarkCreated failed: %v", err)
	}

	f3, ok := m.Registry().Get("f3")
	if !ok {
		t.Fatal("created folder has no registry entry")
	}
	if len(f3.Children) != 1 || f3.Children[0].ID != "b5" {
		t.Errorf("created folder children wrong: %+v", f3.Children)
	}

	menu, _ := m.Registry().Get("menu")
	if len(menu.Children) != 1 || menu.Children[0].ID != "f3" {
		t.Errorf("parent not refreshed: %+v", menu.Children)
	}
}

func TestHandleBookmarkRemoved_Subtree(t *testing.T) {
	fake, m := newTestTree(t)

	// f1 has 4 descendants: b2, s1, f2, b3.
	info := fake.Remove("f1")
	removed, err := m.HandleBookmarkRemoved(context.Background(), "f1", info)
	if err != nil {
		t.Fatalf("HandleBookmarkRemoved failed: %v", err)
	}

	sort.Strings(removed)
	want := []string{"b2", "b3", "f1", "f2", "s1"}
	if len(removed) != len(want) {
		t.Fatalf("expected %d removed ids, got %d: %v", len(want), len(removed), removed)
	}
	for i, id := range want {
		if removed[i] != id {
			t.Errorf("removed[%d] = %s, want %s", i, removed[i], id)
		}
	}

	if m.Registry().Has("f1") || m.Registry().Has("f2") {
		t.Error("removed folder entries still present")
	}

	toolbar, _ := m.Registry().Get("toolbar")
	if len(toolbar.Children) != 1 || toolbar.Children[0].ID != "b1" {
		t.Errorf("former parent not refreshed: %+v", toolbar.Children)
	}
}

func TestHandleBookmarkRemoved_Leaf(t *testing.T) {
	fake, m := newTestTree(t)

	info := fake.Remove("b2")
	removed, err := m.HandleBookmarkRemoved(context.Background(), "b2", info)
	if err != nil {
		t.Fatalf("HandleBookmarkRemoved failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != "b2" {
		t.Errorf("expected [b2], got %v", removed)
	}

	f1, _ := m.Registry().Get("f1")
	for _, c := range f1.Children {
		if c.ID == "b2" {
			t.Error("removed bookmark still mirrored in parent")
		}
	}
}

func TestHandleBookmarkChanged_FolderTitle(t *testing.T) {
	fake, m := newTestTree(t)

	info := fake.SetTitle("f1", "Reading List")
	if err := m.HandleBookmarkChanged(context.Background(), "f1", info); err != nil {
		t.Fatalf("HandleBookmarkChanged failed: %v", err)
	}

	f1, _ := m.Registry().Get("f1")
	if f1.Title != "Reading List" {
		t.Errorf("folder title not refreshed, got %q", f1.Title)
	}
}

func TestHandleBookmarkChanged_BookmarkURL(t *testing.T) {
	fake, m := newTestTree(t)

	info := fake.SetURL("b1", "https://go.dev/doc")
	if err := m.HandleBookmarkChanged(context.Background(), "b1", info); err != nil {
		t.Fatalf("HandleBookmarkChanged failed: %v", err)
	}

	toolbar, _ := m.Registry().Get("toolbar")
	if toolbar.Children[0].URL != "https://go.dev/doc" {
		t.Errorf("bookmark change did not refresh parent, got %q", toolbar.Children[0].URL)
	}
}

func TestHandleBookmarkMoved_AcrossFolders(t *testing.T) {
	fake, m := newTestTree(t)

	info := fake.Move("b1", "menu", 0)
	if err := m.HandleBookmarkMoved(context.Background(), "b1", info); err != nil {
		t.Fatalf("HandleBookmarkMoved failed: %v", err)
	}

	menu, _ := m.Registry().Get("menu")
	if len(menu.Children) != 1 || menu.Children[0].ID != "b1" {
		t.Errorf("new parent not refreshed: %+v", menu.Children)
	}
	toolbar, _ := m.Registry().Get("toolbar")
	for _, c := range toolbar.Children {
		if c.ID == "b1" {
			t.Error("old parent still holds moved bookmark")
		}
	}
}

func TestHandleBookmarkMoved_ReorderWithinFolder(t *testing.T) {
	fake, m := newTestTree(t)

	// toolbar is [b1, f1]; move b1 after f1.
	info := fake.Move("b1", "toolbar", 1)
	if err := m.HandleBookmarkMoved(context.Background(), "b1", info); err != nil {
		t.Fatalf("HandleBookmarkMoved failed: %v", err)
	}

	toolbar, _ := m.Registry().Get("toolbar")
	if toolbar.Children[0].ID != "f1" || toolbar.Children[1].ID != "b1" {
		t.Errorf("reorder not mirrored: %+v", toolbar.Children)
	}
}

func TestRefreshFolder_NotFolder(t *testing.T) {
	_, m := newTestTree(t)

	// A move event claiming a bookmark as destination parent is a
	// logic error and must abort.
	err := m.HandleBookmarkMoved(context.Background(), "b2", domain.MoveInfo{
		ParentID:    "b1",
		OldParentID: "f1",
	})
	if !errors.Is(err, ErrNotFolder) {
		t.Errorf("expected ErrNotFolder, got %v", err)
	}
}

func TestMobileRootStaysExcludedAcrossEvents(t *testing.T) {
	fake, m := newTestTree(t)

	// A bookmark created under the reserved mobile root refreshes its
	// parent; that refresh must not register the excluded folder.
	native := fake.AddBookmark("mb2", mobileID, "Phone two", "https://example.com/phone2")
	if err := m.HandleBookmarkCreated(context.Background(), "mb2", native); err != nil {
		t.Fatalf("HandleBookmarkCreated failed: %v", err)
	}
	if m.Registry().Has(mobileID) {
		t.Error("mobile root registered via created-event parent refresh")
	}

	// Same for a move into the mobile subtree.
	info := fake.Move("b1", mobileID, 0)
	if err := m.HandleBookmarkMoved(context.Background(), "b1", info); err != nil {
		t.Fatalf("HandleBookmarkMoved failed: %v", err)
	}
	if m.Registry().Has(mobileID) {
		t.Error("mobile root registered via move-event parent refresh")
	}
	toolbar, _ := m.Registry().Get("toolbar")
	for _, c := range toolbar.Children {
		if c.ID == "b1" {
			t.Error("moved bookmark still listed under old parent")
		}
	}
}
