package filter

import (
	"testing"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/index"
)

// newScenarioRegistry builds:
//
//	folder1
//	├── bookmarkA "apple pie"
//	└── folder2
//	    └── bookmarkB "banana"
func newScenarioRegistry() *index.Registry {
	reg := index.NewRegistry(nil)
	reg.Put(&domain.Node{
		Kind: domain.KindFolder, ID: "folder1", Title: "Food",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "bookmarkA", ParentID: "folder1", Title: "apple pie", URL: "https://pie.example.com"},
			{Kind: domain.KindFolder, ID: "folder2", ParentID: "folder1", Title: "Fruit"},
		},
	})
	reg.Put(&domain.Node{
		Kind: domain.KindFolder, ID: "folder2", ParentID: "folder1", Title: "Fruit",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "bookmarkB", ParentID: "folder2", Title: "banana", URL: "https://banana.example.com"},
		},
	})
	return reg
}

func wantMatches(t *testing.T, m *Manager, want ...string) {
	t.Helper()
	set := m.MatchSet()
	if len(set) != len(want) {
		t.Errorf("match set size = %d, want %d (%v)", len(set), len(want), set)
	}
	for _, id := range want {
		if _, ok := set[id]; !ok {
			t.Errorf("match set missing %s (have %v)", id, set)
		}
	}
}

func TestSetFilter_DirectChild(t *testing.T) {
	m := New(newScenarioRegistry(), nil)
	m.SetFilter("apple")
	wantMatches(t, m, "folder1", "bookmarkA")
}

func TestSetFilter_NestedAncestorClosure(t *testing.T) {
	m := New(newScenarioRegistry(), nil)
	m.SetFilter("banana")
	wantMatches(t, m, "folder1", "folder2", "bookmarkB")
}

func TestSetFilter_MatchesURLCaseInsensitive(t *testing.T) {
	m := New(newScenarioRegistry(), nil)
	m.SetFilter("PIE.EXAMPLE")
	wantMatches(t, m, "folder1", "bookmarkA")
}

func TestSetFilter_NoMatches(t *testing.T) {
	m := New(newScenarioRegistry(), nil)
	m.SetFilter("cherry")
	wantMatches(t, m)
}

func TestClearFilter(t *testing.T) {
	m := New(newScenarioRegistry(), nil)
	m.SetFilter("banana")
	m.ClearFilter()

	if m.Filter() != "" {
		t.Errorf("filter text not cleared: %q", m.Filter())
	}
	wantMatches(t, m)
}

func TestHandleBookmarkCreated(t *testing.T) {
	reg := newScenarioRegistry()
	m := New(reg, nil)

	newBookmark := &domain.NativeNode{
		ID: "bookmarkC", ParentID: "folder2",
		Title: "banana bread", URL: "https://bread.example.com", Type: "bookmark",
	}

	// No active filter: no-op.
	m.HandleBookmarkCreated("bookmarkC", newBookmark)
	wantMatches(t, m)

	m.SetFilter("banana")
	m.HandleBookmarkCreated("bookmarkC", newBookmark)
	wantMatches(t, m, "folder1", "folder2", "bookmarkB", "bookmarkC")

	// Non-matching creation: no-op.
	m.HandleBookmarkCreated("bookmarkD", &domain.NativeNode{
		ID: "bookmarkD", ParentID: "folder1", Title: "cherry", URL: "https://cherry.example.com",
	})
	wantMatches(t, m, "folder1", "folder2", "bookmarkB", "bookmarkC")

	// Folder creation: no-op even when the title matches.
	m.HandleBookmarkCreated("folder3", &domain.NativeNode{
		ID: "folder3", ParentID: "folder1", Title: "bananas", Type: "folder",
	})
	wantMatches(t, m, "folder1", "folder2", "bookmarkB", "bookmarkC")
}

func TestHandleBookmarkRemoved_Recomputes(t *testing.T) {
	reg := newScenarioRegistry()
	m := New(reg, nil)
	m.SetFilter("banana")

	// The browser deletes bookmarkB; the registry mirrors that before
	// the filter sees the event.
	reg.Put(&domain.Node{Kind: domain.KindFolder, ID: "folder2", ParentID: "folder1", Title: "Fruit"})
	m.HandleBookmarkRemoved("bookmarkB")

	wantMatches(t, m)
}

func TestHandleBookmarkRemoved_NoFilterNoRecompute(t *testing.T) {
	reg := newScenarioRegistry()
	b := events.NewBroadcaster()
	m := New(reg, b)

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	m.HandleBookmarkRemoved("bookmarkB")
	if n := drainFilterEvents(ch); n != 0 {
		t.Errorf("removal without active filter published %d recomputes", n)
	}
}

func TestBatchRemove_SingleRecompute(t *testing.T) {
	reg := newScenarioRegistry()
	b := events.NewBroadcaster()
	m := New(reg, b)
	m.SetFilter("banana")

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	m.BeginBatchRemove()
	for i := 0; i < 5; i++ {
		m.HandleBookmarkRemoved("bookmarkB")
	}
	if n := drainFilterEvents(ch); n != 0 {
		t.Fatalf("recompute ran during batch window: %d events", n)
	}

	// Registry loses folder2 mid-batch, as during a real subtree
	// removal.
	reg.Delete("folder2")
	reg.Put(&domain.Node{Kind: domain.KindFolder, ID: "folder1", Title: "Food",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "bookmarkA", ParentID: "folder1", Title: "apple pie", URL: "https://pie.example.com"},
		},
	})

	m.EndBatchRemove()
	if n := drainFilterEvents(ch); n != 1 {
		t.Errorf("expected exactly one recompute at EndBatchRemove, got %d", n)
	}
	wantMatches(t, m)
}

func TestEndBatchRemove_WithoutBegin(t *testing.T) {
	b := events.NewBroadcaster()
	m := New(newScenarioRegistry(), b)
	m.SetFilter("banana")

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	m.EndBatchRemove()
	if n := drainFilterEvents(ch); n != 0 {
		t.Errorf("EndBatchRemove without Begin recomputed %d times", n)
	}
}

func TestHandleBookmarkChangedAndMoved_Recompute(t *testing.T) {
	reg := newScenarioRegistry()
	m := New(reg, nil)
	m.SetFilter("banana")

	// bookmarkB retitled so it no longer matches; registry already
	// mirrors it.
	reg.Put(&domain.Node{
		Kind: domain.KindFolder, ID: "folder2", ParentID: "folder1", Title: "Fruit",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "bookmarkB", ParentID: "folder2", Title: "plantain", URL: "https://banana.example.com"},
		},
	})
	m.HandleBookmarkChanged("bookmarkB", domain.ChangeInfo{})

	// Still matches via URL.
	wantMatches(t, m, "folder1", "folder2", "bookmarkB")

	// Move bookmarkB up into folder1: membership follows the new
	// ancestor chain only.
	reg.Put(&domain.Node{Kind: domain.KindFolder, ID: "folder2", ParentID: "folder1", Title: "Fruit"})
	reg.Put(&domain.Node{
		Kind: domain.KindFolder, ID: "folder1", Title: "Food",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "bookmarkA", ParentID: "folder1", Title: "apple pie", URL: "https://pie.example.com"},
			{Kind: domain.KindBookmark, ID: "bookmarkB", ParentID: "folder1", Title: "plantain", URL: "https://banana.example.com"},
			{Kind: domain.KindFolder, ID: "folder2", ParentID: "folder1", Title: "Fruit"},
		},
	})
	m.HandleBookmarkMoved("bookmarkB", domain.MoveInfo{ParentID: "folder1", OldParentID: "folder2"})

	wantMatches(t, m, "folder1", "bookmarkB")
}

func drainFilterEvents(ch chan events.Event) int {
	n := 0
	for {
		select {
		case e := <-ch:
			if e.Type == events.EventFilterChanged {
				n++
			}
		default:
			return n
		}
	}
}
