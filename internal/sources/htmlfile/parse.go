// Package htmlfile reads and writes bookmark trees in the Netscape
// bookmark HTML format that every major browser can export and import.
package htmlfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/hversten/bookmirror/internal/domain"
)

// RootID identifies the synthetic root of an imported file.
const RootID = "html________"

// ParseTree parses Netscape bookmark HTML into a native tree. Node IDs
// are derived from each node's path in the file, so re-importing an
// unchanged file yields the same IDs.
func ParseTree(r io.Reader) (*domain.NativeNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark html: %w", err)
	}

	root := &domain.NativeNode{
		ID:   RootID,
		Type: "folder",
	}

	// Stack of open folders; appended children carry path-derived IDs.
	stack := []*domain.NativeNode{root}
	paths := []string{""}
	var pendingFolder *domain.NativeNode

	top := func() (*domain.NativeNode, string) {
		return stack[len(stack)-1], paths[len(paths)-1]
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				parent, path := top()
				title := textContent(n)
				child := &domain.NativeNode{
					ParentID: parent.ID,
					Index:    len(parent.Children),
					Title:    title,
					Type:     "folder",
				}
				child.ID = nodeID(childPath(path, child.Index, title), "")
				parent.Children = append(parent.Children, child)
				pendingFolder = child
				return

			case "a":
				href := attr(n, "href")
				if href == "" {
					return
				}
				parent, path := top()
				title := textContent(n)
				if title == "" {
					title = href
				}
				child := &domain.NativeNode{
					ParentID: parent.ID,
					Index:    len(parent.Children),
					Title:    title,
					URL:      href,
				}
				child.ID = nodeID(childPath(path, child.Index, title), href)
				parent.Children = append(parent.Children, child)
				return

			case "hr":
				parent, path := top()
				child := &domain.NativeNode{
					ParentID: parent.ID,
					Index:    len(parent.Children),
					Type:     domain.NativeTypeSeparator,
				}
				child.ID = nodeID(childPath(path, child.Index, "-"), "")
				parent.Children = append(parent.Children, child)
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					_, path := top()
					stack = append(stack, pendingFolder)
					paths = append(paths, childPath(path, pendingFolder.Index, pendingFolder.Title))
					pendingFolder = nil
					pushed = true
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}
				if pushed {
					stack = stack[:len(stack)-1]
					paths = paths[:len(paths)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return root, nil
}

func childPath(parentPath string, index int, title string) string {
	return fmt.Sprintf("%s/%d:%s", parentPath, index, title)
}

// nodeID creates a stable ID from the node's tree path and URL using a
// SHA-256 hash.
func nodeID(path, url string) string {
	hash := sha256.Sum256([]byte(path + "\x00" + url))
	return hex.EncodeToString(hash[:])[:16]
}

// textContent returns the text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if strings.ToLower(a.Key) == key {
			return a.Val
		}
	}
	return ""
}
