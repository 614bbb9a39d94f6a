package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/httpserver/handlers"
)

func init() { Register(registerFilter) }

func registerFilter(r chi.Router, d deps.Deps) {
	r.Get("/api/filter", handlers.GetFilter(d))
	r.Put("/api/filter", handlers.SetFilter(d))
	r.Delete("/api/filter", handlers.ClearFilter(d))
}
