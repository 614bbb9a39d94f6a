package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hversten/bookmirror/internal/dispatch"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/filter"
	"github.com/hversten/bookmirror/internal/history"
	"github.com/hversten/bookmirror/internal/index"
	"github.com/hversten/bookmirror/internal/logger"
	"github.com/hversten/bookmirror/internal/menu"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	AllowedCIDRS   []string         // IPs allowed to access admin endpoints
	AllowedOrigins []string         // Origins allowed by CORS (extension pages)
	TrustProxy     bool             // true if running behind a trusted reverse proxy
	SourceKind     string           // configured browser-store source (chromium|html|yaml)
	Registry       *index.Registry  // mirrored folder registry
	Filter         *filter.Manager  // text-filter index
	History        *history.Manager // last-visit index
	Dispatcher     *dispatch.Dispatcher
	Broadcaster    *events.Broadcaster
	Menu           *menu.Registry
	RedisClient    *redis.Client // nil when snapshots are disabled
	ResyncTrigger  chan struct{} // channel to trigger a manual resync
}
