package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/httpserver/handlers"
)

func init() { Register(registerMenu) }

func registerMenu(r chi.Router, d deps.Deps) {
	r.Get("/api/menu", handlers.MenuCommands(d))
	r.Post("/api/menu/{command}", handlers.MenuClick(d))
}
