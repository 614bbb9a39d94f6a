package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Folders int  `json:"folders"`
}

// Readyz reports ready once the registry holds a tree, either from
// the warm Redis snapshot or the first resync.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Registry.Count()
		ready := count > 0

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:   ready,
			Folders: count,
		})
	}
}
