package domain

// Kind discriminates the node variants. Consumers branch on it
// exhaustively; there is no virtual behavior.
type Kind string

const (
	KindBookmark  Kind = "bookmark"
	KindFolder    Kind = "folder"
	KindSeparator Kind = "separator"
)

// Node is one entry of the mirrored bookmark tree.
//
// It is a closed tagged union over three variants:
//
//   - bookmark:  Title + URL, no Children
//   - folder:    Title + ordered Children (immediate children only)
//   - separator: neither
//
// ParentID is empty only for the super-root. It is kept as a plain ID,
// never a live reference, so ancestor walks are registry lookups that
// cannot dangle across registry mutations.
type Node struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`

	// Children is populated for folders only and holds immediate
	// children in display order. Nested folders appear here as stubs;
	// their own children live in their registry entry.
	Children []Node `json:"children,omitempty"`
}

// IsFolder reports whether the node is the folder variant.
func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// Builtin records the super-root ID and the ordered IDs of its
// permanent children (toolbar, menu, other bookmarks). Populated once
// during the initial load and read-only afterward. The platform's
// mobile-bookmarks root is deliberately absent.
type Builtin struct {
	RootID    string   `json:"rootId"`
	FolderIDs []string `json:"folderIds"`
}
