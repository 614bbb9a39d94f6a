package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	FoldersLoaded *int   `json:"folders_loaded,omitempty"`
	Subscribers   *int   `json:"subscribers,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		folders := d.Registry.Count()
		subscribers := d.Broadcaster.Count()

		components := map[string]componentStatus{
			"mirror": {
				OK:            folders > 0,
				FoldersLoaded: &folders,
				Mode:          d.SourceKind,
			},
			"redis": checkRedis(d),
			"stream": {
				OK:          true,
				Subscribers: &subscribers,
			},
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	if mirror, exists := components["mirror"]; exists && !mirror.OK {
		return "critical" // no tree loaded yet
	}
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded" // no snapshots, cold start after restart
	}
	return "mirroring"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "snapshots-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshots-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshots-enabled",
		Error:  "none",
	}
}
