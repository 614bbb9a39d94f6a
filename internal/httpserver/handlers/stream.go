package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/logger"
)

// Stream serves change notifications over Server-Sent Events. The
// companion extension keeps one connection open and re-renders on
// each event instead of polling /tree.
func Stream(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := d.Broadcaster.Subscribe()
		defer d.Broadcaster.Unsubscribe(ch)

		d.Logger.Info("stream client connected",
			logger.String("remote_ip", r.RemoteAddr))

		fmt.Fprintf(w, ": connected\n\n")
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				d.Logger.Info("stream client disconnected",
					logger.String("remote_ip", r.RemoteAddr))
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(event)
				if err != nil {
					d.Logger.Debug("failed to marshal event", logger.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: %s\n", event.Type)
				fmt.Fprintf(w, "data: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
