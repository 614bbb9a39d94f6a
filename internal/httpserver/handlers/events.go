package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/logger"
)

// bookmarkEvent is one bookmark event posted by the companion
// extension. The payload field that applies depends on Type.
type bookmarkEvent struct {
	Type   string             `json:"type"` // created|removed|changed|moved
	ID     string             `json:"id"`
	Node   *domain.NativeNode `json:"node,omitempty"`
	Remove *domain.RemoveInfo `json:"remove,omitempty"`
	Change *domain.ChangeInfo `json:"change,omitempty"`
	Move   *domain.MoveInfo   `json:"move,omitempty"`
}

type historyEvent struct {
	Type   string                   `json:"type"` // visited|visitRemoved
	Item   *domain.HistoryItem      `json:"item,omitempty"`
	Remove *domain.VisitRemovedInfo `json:"remove,omitempty"`
}

type removedResponse struct {
	RemovedIDs []string `json:"removedIds"`
}

// BookmarkEvents ingests one bookmark event and applies it through the
// dispatcher.
func BookmarkEvents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev bookmarkEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if ev.ID == "" {
			http.Error(w, "missing node id", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		switch ev.Type {
		case "created":
			if ev.Node == nil {
				http.Error(w, "created event requires node", http.StatusBadRequest)
				return
			}
			if err := d.Dispatcher.BookmarkCreated(ctx, ev.ID, ev.Node); err != nil {
				d.Logger.Error("failed to apply created event",
					logger.String("node_id", ev.ID), logger.Error(err))
				http.Error(w, "failed to apply event", http.StatusInternalServerError)
				return
			}
		case "removed":
			if ev.Remove == nil {
				http.Error(w, "removed event requires remove info", http.StatusBadRequest)
				return
			}
			removed, err := d.Dispatcher.BookmarkRemoved(ctx, ev.ID, *ev.Remove)
			if err != nil {
				d.Logger.Error("failed to apply removed event",
					logger.String("node_id", ev.ID), logger.Error(err))
				http.Error(w, "failed to apply event", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(removedResponse{RemovedIDs: removed})
			return
		case "changed":
			if ev.Change == nil {
				http.Error(w, "changed event requires change info", http.StatusBadRequest)
				return
			}
			if err := d.Dispatcher.BookmarkChanged(ctx, ev.ID, *ev.Change); err != nil {
				d.Logger.Error("failed to apply changed event",
					logger.String("node_id", ev.ID), logger.Error(err))
				http.Error(w, "failed to apply event", http.StatusInternalServerError)
				return
			}
		case "moved":
			if ev.Move == nil {
				http.Error(w, "moved event requires move info", http.StatusBadRequest)
				return
			}
			if err := d.Dispatcher.BookmarkMoved(ctx, ev.ID, *ev.Move); err != nil {
				d.Logger.Error("failed to apply moved event",
					logger.String("node_id", ev.ID), logger.Error(err))
				http.Error(w, "failed to apply event", http.StatusInternalServerError)
				return
			}
		default:
			http.Error(w, "unknown event type", http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

// HistoryEvents ingests one history event.
func HistoryEvents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev historyEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		switch ev.Type {
		case "visited":
			if ev.Item == nil {
				http.Error(w, "visited event requires item", http.StatusBadRequest)
				return
			}
			d.Dispatcher.Visited(*ev.Item)
		case "visitRemoved":
			if ev.Remove == nil {
				http.Error(w, "visitRemoved event requires remove info", http.StatusBadRequest)
				return
			}
			d.Dispatcher.VisitRemoved(*ev.Remove)
		default:
			http.Error(w, "unknown event type", http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}
