package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/utils"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	displayURLLen      = 60
)

type searchResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	DisplayURL string `json:"displayUrl"`
	LastVisit  int64  `json:"lastVisit,omitempty"`
	Score      int    `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

// Search ranks bookmarks against the query with fuzzy matching over
// title and URL. This is one-shot ranked lookup; the persistent
// substring filter lives under /filter.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			http.Error(w, "missing query parameter q", http.StatusBadRequest)
			return
		}

		limit := defaultSearchLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			if n > maxSearchLimit {
				n = maxSearchLimit
			}
			limit = n
		}

		bookmarks := d.Registry.Bookmarks()
		haystack := make([]string, len(bookmarks))
		for i, b := range bookmarks {
			haystack[i] = b.Title + " " + b.URL
		}

		matches := fuzzy.Find(query, haystack)
		resp := searchResponse{Query: query, Results: []searchResult{}}
		for i, m := range matches {
			if i >= limit {
				break
			}
			b := bookmarks[m.Index]
			resp.Results = append(resp.Results, searchResult{
				ID:         b.ID,
				Title:      b.Title,
				URL:        b.URL,
				DisplayURL: utils.TruncateMiddle(b.URL, displayURLLen),
				LastVisit:  d.History.LastVisit(b.ID),
				Score:      m.Score,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
