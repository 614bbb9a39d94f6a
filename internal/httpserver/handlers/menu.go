package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/logger"
)

type menuResponse struct {
	NodeID   string   `json:"nodeId"`
	Commands []string `json:"commands"`
}

type menuClickRequest struct {
	NodeID string `json:"nodeId"`
}

// MenuCommands lists the context commands enabled for a node.
func MenuCommands(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nodeID := r.URL.Query().Get("node")
		if nodeID == "" {
			http.Error(w, "missing query parameter node", http.StatusBadRequest)
			return
		}

		commands := d.Menu.EnabledFor(nodeID)
		if commands == nil {
			commands = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(menuResponse{NodeID: nodeID, Commands: commands})
	}
}

// MenuClick runs one context command against a node.
func MenuClick(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commandID := chi.URLParam(r, "command")

		var req menuClickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.NodeID == "" {
			http.Error(w, "missing nodeId", http.StatusBadRequest)
			return
		}

		if err := d.Menu.Click(r.Context(), commandID, req.NodeID); err != nil {
			d.Logger.Warn("menu command failed",
				logger.String("command", commandID),
				logger.String("node_id", req.NodeID),
				logger.Error(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}
