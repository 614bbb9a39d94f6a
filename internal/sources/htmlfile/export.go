package htmlfile

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/index"
)

// DefaultExportName returns a dated file name for exports.
// Format: bookmarks-export-YYYY-MM-DD.html
func DefaultExportName() string {
	return fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
}

// ExportHTML renders the mirrored tree to Netscape bookmark HTML,
// starting from the built-in top-level folders.
func ExportHTML(reg *index.Registry) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, id := range reg.Builtin().FolderIDs {
		if folder, ok := reg.Get(id); ok {
			writeFolder(&b, reg, folder, 1)
		}
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeFolder writes one folder and recurses into its child folders
// through the registry, which holds their full contents.
func writeFolder(b *strings.Builder, reg *index.Registry, folder *domain.Node, indent int) {
	prefix := strings.Repeat("    ", indent)

	fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(folder.Title))
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)

	for i := range folder.Children {
		child := &folder.Children[i]
		switch child.Kind {
		case domain.KindFolder:
			if full, ok := reg.Get(child.ID); ok {
				writeFolder(b, reg, full, indent+1)
			}
		case domain.KindSeparator:
			fmt.Fprintf(b, "%s    <HR>\n", prefix)
		case domain.KindBookmark:
			fmt.Fprintf(b,
				"%s    <DT><A HREF=\"%s\">%s</A>\n",
				prefix,
				html.EscapeString(child.URL),
				html.EscapeString(child.Title),
			)
		}
	}

	fmt.Fprintf(b, "%s</DL><p>\n", prefix)
}
