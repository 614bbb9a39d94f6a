package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultMobileRootID is the reserved ID of the platform's mobile
// bookmarks root. That folder is excluded from the mirror entirely.
const DefaultMobileRootID = "mobile______"

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Browser store source
	SourceKind    string // "chromium" | "html" | "yaml"
	BookmarksFile string // chromium Bookmarks JSON / Netscape HTML / YAML seed, per SourceKind
	HistoryFile   string // chromium History sqlite (optional, chromium only)
	MobileRootID  string // reserved mobile-root ID to exclude from the mirror

	ResyncInterval time.Duration // interval to resync against the browser store (default: 1h)
	GCInterval     time.Duration // interval to prune orphaned snapshot keys (default: 24h)

	// Redis (optional; empty addr disables snapshots)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedOrigins []string // optional, CORS origins of the companion extension pages
	AllowedCIDRS   []string // optional, restrict admin/ingest access to specific IPs
	TrustProxy     bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKMIRROR_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BOOKMIRROR_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("BOOKMIRROR_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKMIRROR_PRETTY_LOG", true),

		// Browser store source
		SourceKind:    getenv("BOOKMIRROR_SOURCE", "yaml"),
		BookmarksFile: requireEnv("BOOKMIRROR_BOOKMARKS_FILE"),
		HistoryFile:   getenv("BOOKMIRROR_HISTORY_FILE", ""),
		MobileRootID:  getenv("BOOKMIRROR_MOBILE_ROOT_ID", DefaultMobileRootID),

		ResyncInterval: mustDuration("BOOKMIRROR_RESYNC_INTERVAL", time.Hour),
		GCInterval:     mustDuration("BOOKMIRROR_GC_INTERVAL", 24*time.Hour),

		// Redis settings
		RedisAddr:             getenv("BOOKMIRROR_REDIS_ADDR", ""),
		RedisUser:             getenv("BOOKMIRROR_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("BOOKMIRROR_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("BOOKMIRROR_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("BOOKMIRROR_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: parseList(getenv("BOOKMIRROR_ALLOWED_ORIGINS", "")),
		AllowedCIDRS:   parseList(getenv("BOOKMIRROR_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("BOOKMIRROR_TRUST_PROXY", false),
	}

	switch cfg.SourceKind {
	case "chromium", "html", "yaml":
	default:
		panic(fmt.Sprintf("❌ FATAL: Invalid BOOKMIRROR_SOURCE %q (want chromium, html or yaml)", cfg.SourceKind))
	}

	if cfg.HistoryFile != "" && cfg.SourceKind != "chromium" {
		panic("❌ FATAL: BOOKMIRROR_HISTORY_FILE is only supported with BOOKMIRROR_SOURCE=chromium")
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: BOOKMIRROR_REDIS_PASSWORD is required when BOOKMIRROR_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// SnapshotsEnabled reports whether a Redis address was configured.
func (c *Config) SnapshotsEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
