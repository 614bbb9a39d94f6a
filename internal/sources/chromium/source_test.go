package chromium

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/hversten/bookmirror/internal/browser"
)

var (
	_ browser.BookmarkAPI = (*Source)(nil)
	_ browser.HistoryAPI  = (*Source)(nil)
)

const bookmarksJSON = `{
  "roots": {
    "bookmark_bar": {
      "id": "1",
      "name": "Bookmarks bar",
      "type": "folder",
      "children": [
        {"id": "10", "name": "Docs", "type": "url", "url": "https://docs.example.com"},
        {"id": "11", "name": "Dev", "type": "folder", "children": [
          {"id": "12", "name": "CI", "type": "url", "url": "https://ci.example.com"}
        ]}
      ]
    },
    "other": {"id": "2", "name": "Other bookmarks", "type": "folder", "children": []},
    "synced": {"id": "3", "name": "Mobile bookmarks", "type": "folder", "children": []}
  },
  "version": 1
}`

func writeBookmarks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Bookmarks")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write bookmarks file: %v", err)
	}
	return path
}

func TestParseBookmarksFile(t *testing.T) {
	root, err := ParseBookmarksFile(writeBookmarks(t, bookmarksJSON))
	if err != nil {
		t.Fatalf("ParseBookmarksFile() error = %v", err)
	}
	if root.ID != RootID {
		t.Errorf("root ID = %q, want %q", root.ID, RootID)
	}
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}

	bar := root.Children[0]
	if bar.ID != "1" || !bar.IsFolder() || len(bar.Children) != 2 {
		t.Fatalf("bookmark bar = %+v", bar)
	}
	if got := bar.Children[0]; got.URL != "https://docs.example.com" || got.IsFolder() {
		t.Errorf("bar child 0 = %+v", got)
	}
	dev := bar.Children[1]
	if !dev.IsFolder() || len(dev.Children) != 1 || dev.Children[0].ParentID != "11" {
		t.Errorf("dev folder = %+v", dev)
	}
	if root.Children[2].ID != "3" {
		t.Errorf("synced root = %+v, want id 3", root.Children[2])
	}
}

func TestParseBookmarksFileRejectsEmpty(t *testing.T) {
	if _, err := ParseBookmarksFile(writeBookmarks(t, `{"roots": {}, "version": 1}`)); err == nil {
		t.Error("ParseBookmarksFile() on an empty file should fail")
	}
}

func writeHistoryDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "History")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to create history db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE urls (id INTEGER PRIMARY KEY, url TEXT NOT NULL)`,
		`CREATE TABLE visits (id INTEGER PRIMARY KEY, url INTEGER NOT NULL, visit_time INTEGER NOT NULL)`,
		`INSERT INTO urls (id, url) VALUES (1, 'https://docs.example.com')`,
		// 11644473600000000 is the Unix epoch on the Chromium clock.
		`INSERT INTO visits (url, visit_time) VALUES (1, 11644473600000000 + 1000000)`,
		`INSERT INTO visits (url, visit_time) VALUES (1, 11644473600000000 + 3000000)`,
		`INSERT INTO visits (url, visit_time) VALUES (1, 11644473600000000 + 2000000)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed history db: %v", err)
		}
	}
	return path
}

func TestHistoryVisits(t *testing.T) {
	h, err := OpenHistory(writeHistoryDB(t))
	if err != nil {
		t.Fatalf("OpenHistory() error = %v", err)
	}
	defer h.Close()

	visits, err := h.Visits(context.Background(), "https://docs.example.com")
	if err != nil {
		t.Fatalf("Visits() error = %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("got %d visits, want 3", len(visits))
	}
	// Chronological order with Chromium timestamps converted to
	// milliseconds since the Unix epoch.
	want := []int64{1000, 2000, 3000}
	for i, v := range visits {
		if v.VisitTime != want[i] {
			t.Errorf("visit %d = %d, want %d", i, v.VisitTime, want[i])
		}
	}
}

func TestHistoryVisitsUnknownURL(t *testing.T) {
	h, err := OpenHistory(writeHistoryDB(t))
	if err != nil {
		t.Fatalf("OpenHistory() error = %v", err)
	}
	defer h.Close()

	visits, err := h.Visits(context.Background(), "https://unknown.example.com")
	if err != nil {
		t.Fatalf("Visits() error = %v", err)
	}
	if len(visits) != 0 {
		t.Errorf("got %d visits, want 0", len(visits))
	}
}

func TestSourceWithoutHistory(t *testing.T) {
	src, err := Open(writeBookmarks(t, bookmarksJSON), "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	visits, err := src.Visits(context.Background(), "https://docs.example.com")
	if err != nil {
		t.Fatalf("Visits() error = %v", err)
	}
	if len(visits) != 0 {
		t.Errorf("got %d visits, want 0", len(visits))
	}

	nodes, err := src.SearchByURL(context.Background(), "https://ci.example.com")
	if err != nil || len(nodes) != 1 || nodes[0].ID != "12" {
		t.Errorf("SearchByURL = %v, %v", nodes, err)
	}
}
