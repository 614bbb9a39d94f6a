package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/httpserver/handlers"
)

func init() { Register(registerStream) }

func registerStream(r chi.Router, d deps.Deps) {
	r.Get("/api/stream", handlers.Stream(d))
}
