package htmlfile

import (
	"strings"
	"testing"
)

const sampleHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>Toolbar</H3>
    <DL><p>
        <DT><A HREF="https://docs.example.com" ADD_DATE="1700000000">Docs</A>
        <HR>
        <DT><H3>Dev</H3>
        <DL><p>
            <DT><A HREF="https://ci.example.com">CI</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="https://loose.example.com">Loose</A>
</DL><p>
`

func TestParseTree(t *testing.T) {
	root, err := ParseTree(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	if root.ID != RootID {
		t.Errorf("root ID = %q, want %q", root.ID, RootID)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	toolbar := root.Children[0]
	if !toolbar.IsFolder() || toolbar.Title != "Toolbar" {
		t.Fatalf("first child = %+v, want Toolbar folder", toolbar)
	}
	if len(toolbar.Children) != 3 {
		t.Fatalf("toolbar has %d children, want 3", len(toolbar.Children))
	}
	if got := toolbar.Children[0]; got.URL != "https://docs.example.com" || got.Title != "Docs" {
		t.Errorf("toolbar child 0 = %+v", got)
	}
	if !toolbar.Children[1].IsSeparator() {
		t.Errorf("toolbar child 1 should be a separator, got %+v", toolbar.Children[1])
	}

	dev := toolbar.Children[2]
	if !dev.IsFolder() || dev.Title != "Dev" || len(dev.Children) != 1 {
		t.Fatalf("toolbar child 2 = %+v, want Dev folder with one child", dev)
	}
	if dev.Children[0].ParentID != dev.ID {
		t.Errorf("nested bookmark parent = %q, want %q", dev.Children[0].ParentID, dev.ID)
	}

	if got := root.Children[1]; got.URL != "https://loose.example.com" {
		t.Errorf("root child 1 = %+v, want loose bookmark", got)
	}
}

func TestParseTreeStableIDs(t *testing.T) {
	first, err := ParseTree(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	second, err := ParseTree(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	if first.Children[0].ID != second.Children[0].ID {
		t.Errorf("folder IDs differ across parses: %q vs %q",
			first.Children[0].ID, second.Children[0].ID)
	}
	if first.Children[0].Children[0].ID != second.Children[0].Children[0].ID {
		t.Errorf("bookmark IDs differ across parses")
	}
}

func TestParseTreeSkipsAnchorsWithoutHref(t *testing.T) {
	const input = `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="https://kept.example.com">Kept</A>
</DL><p>`

	root, err := ParseTree(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].URL != "https://kept.example.com" {
		t.Errorf("root children = %+v, want only the kept bookmark", root.Children)
	}
}

func TestParseTreeTitleFallsBackToURL(t *testing.T) {
	const input = `<DL><p>
    <DT><A HREF="https://untitled.example.com"></A>
</DL><p>`

	root, err := ParseTree(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Title != "https://untitled.example.com" {
		t.Errorf("root children = %+v, want bookmark titled by URL", root.Children)
	}
	if root.Children[0].IsFolder() || root.Children[0].IsSeparator() {
		t.Errorf("untitled bookmark mis-classified: %+v", root.Children[0])
	}
}
