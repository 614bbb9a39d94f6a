package htmlfile

import (
	"strings"
	"testing"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/index"
)

func exportRegistry(t *testing.T) *index.Registry {
	t.Helper()
	reg := index.NewRegistry(nil)
	reg.SetBuiltin(domain.Builtin{RootID: "root", FolderIDs: []string{"toolbar"}})
	reg.Put(&domain.Node{
		Kind: domain.KindFolder, ID: "toolbar", ParentID: "root", Title: "Toolbar",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "b1", ParentID: "toolbar", Title: "Docs & more", URL: "https://docs.example.com?a=1&b=2"},
			{Kind: domain.KindSeparator, ID: "s1", ParentID: "toolbar"},
			{Kind: domain.KindFolder, ID: "dev", ParentID: "toolbar", Title: "Dev"},
		},
	})
	reg.Put(&domain.Node{
		Kind: domain.KindFolder, ID: "dev", ParentID: "toolbar", Title: "Dev",
		Children: []domain.Node{
			{Kind: domain.KindBookmark, ID: "b2", ParentID: "dev", Title: "CI", URL: "https://ci.example.com"},
		},
	})
	return reg
}

func TestExportHTML(t *testing.T) {
	out := ExportHTML(exportRegistry(t))

	for _, want := range []string{
		"<!DOCTYPE NETSCAPE-Bookmark-file-1>",
		"<DT><H3>Toolbar</H3>",
		"<DT><H3>Dev</H3>",
		"<A HREF=\"https://ci.example.com\">CI</A>",
		"<HR>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q\n%s", want, out)
		}
	}

	if !strings.Contains(out, "Docs &amp; more") {
		t.Errorf("title not escaped:\n%s", out)
	}
	if !strings.Contains(out, "https://docs.example.com?a=1&amp;b=2") {
		t.Errorf("URL not escaped:\n%s", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	out := ExportHTML(exportRegistry(t))

	root, err := ParseTree(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}

	toolbar := root.Children[0]
	if toolbar.Title != "Toolbar" || len(toolbar.Children) != 3 {
		t.Fatalf("toolbar = %+v", toolbar)
	}
	if toolbar.Children[0].Title != "Docs & more" {
		t.Errorf("escaped title did not survive the round trip: %q", toolbar.Children[0].Title)
	}
	if toolbar.Children[0].URL != "https://docs.example.com?a=1&b=2" {
		t.Errorf("escaped URL did not survive the round trip: %q", toolbar.Children[0].URL)
	}
	if !toolbar.Children[1].IsSeparator() {
		t.Errorf("separator did not survive the round trip")
	}
	dev := toolbar.Children[2]
	if !dev.IsFolder() || len(dev.Children) != 1 || dev.Children[0].Title != "CI" {
		t.Errorf("nested folder did not survive the round trip: %+v", dev)
	}
}

func TestDefaultExportName(t *testing.T) {
	name := DefaultExportName()
	if !strings.HasPrefix(name, "bookmarks-export-") || !strings.HasSuffix(name, ".html") {
		t.Errorf("DefaultExportName() = %q", name)
	}
}
