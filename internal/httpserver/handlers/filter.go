package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/logger"
)

type filterRequest struct {
	Text string `json:"text"`
}

type filterResponse struct {
	Text    string `json:"text"`
	Matches int    `json:"matches"`
}

// SetFilter applies a persistent substring filter to the tree.
func SetFilter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(req.Text)
		if text == "" {
			http.Error(w, "filter text must not be empty", http.StatusBadRequest)
			return
		}

		d.Filter.SetFilter(text)
		d.Logger.Info("filter set",
			logger.String("text", text),
			logger.Int("matches", len(d.Filter.MatchSet())))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(filterResponse{
			Text:    d.Filter.Filter(),
			Matches: len(d.Filter.MatchSet()),
		})
	}
}

// ClearFilter removes the active filter.
func ClearFilter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Filter.ClearFilter()
		d.Logger.Info("filter cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetFilter reports the active filter and its match count.
func GetFilter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(filterResponse{
			Text:    d.Filter.Filter(),
			Matches: len(d.Filter.MatchSet()),
		})
	}
}
