package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/httpserver/handlers"
)

func init() { Register(registerTree) }

func registerTree(r chi.Router, d deps.Deps) {
	r.Get("/api/tree", handlers.Tree(d))
	r.Get("/api/export", handlers.Export(d))
}
