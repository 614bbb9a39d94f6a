package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/httpserver/handlers"
	"github.com/hversten/bookmirror/internal/httpserver/mw"
)

func init() { Register(registerEvents) }

// Event ingestion is the write path; only the companion extension on
// the configured networks may post.
func registerEvents(r chi.Router, d deps.Deps) {
	guarded := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	guarded.Post("/api/events/bookmarks", handlers.BookmarkEvents(d))
	guarded.Post("/api/events/history", handlers.HistoryEvents(d))
}
