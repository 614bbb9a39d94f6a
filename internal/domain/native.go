package domain

// NativeNode is the raw node shape reported by a browser bookmark
// store. Only ID, ParentID, Title and URL survive conversion into a
// Node; everything else is transport metadata.
type NativeNode struct {
	ID       string        `json:"id"`
	ParentID string        `json:"parentId,omitempty"`
	Index    int           `json:"index,omitempty"`
	Title    string        `json:"title"`
	URL      string        `json:"url,omitempty"`
	Type     string        `json:"type,omitempty"` // "bookmark" | "folder" | "separator" | ""
	Children []*NativeNode `json:"children,omitempty"`
}

// NativeTypeSeparator is the only native type string that must be
// recognized explicitly: separators carry no URL and would otherwise
// convert as folders.
const NativeTypeSeparator = "separator"

// IsSeparator reports whether the native node is explicitly typed as a
// separator.
func (n *NativeNode) IsSeparator() bool { return n.Type == NativeTypeSeparator }

// IsFolder reports whether the native node converts to a folder: no
// URL, or an explicit folder type.
func (n *NativeNode) IsFolder() bool {
	if n.IsSeparator() {
		return false
	}
	return n.URL == "" || n.Type == "folder"
}

// RemoveInfo accompanies a bookmark-removed event.
type RemoveInfo struct {
	ParentID string      `json:"parentId"`
	Index    int         `json:"index"`
	Node     *NativeNode `json:"node,omitempty"`
}

// ChangeInfo accompanies a bookmark-changed event. Nil fields were not
// part of the change; a title-only edit carries no URL.
type ChangeInfo struct {
	Title *string `json:"title,omitempty"`
	URL   *string `json:"url,omitempty"`
}

// MoveInfo accompanies a bookmark-moved event.
type MoveInfo struct {
	ParentID    string `json:"parentId"`
	Index       int    `json:"index"`
	OldParentID string `json:"oldParentId"`
	OldIndex    int    `json:"oldIndex"`
}

// Visit is one history visit record. VisitTime is milliseconds since
// the Unix epoch.
type Visit struct {
	VisitTime int64 `json:"visitTime"`
}

// HistoryItem accompanies a history-visited event.
type HistoryItem struct {
	URL           string `json:"url"`
	LastVisitTime int64  `json:"lastVisitTime"`
}

// VisitRemovedInfo accompanies a history-removed event. AllHistory set
// means the whole history store was cleared and URLs is meaningless.
type VisitRemovedInfo struct {
	AllHistory bool     `json:"allHistory"`
	URLs       []string `json:"urls"`
}
