package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hversten/bookmirror/internal/browser"
	"github.com/hversten/bookmirror/internal/config"
	"github.com/hversten/bookmirror/internal/dispatch"
	"github.com/hversten/bookmirror/internal/events"
	"github.com/hversten/bookmirror/internal/filter"
	"github.com/hversten/bookmirror/internal/history"
	"github.com/hversten/bookmirror/internal/httpserver"
	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/index"
	"github.com/hversten/bookmirror/internal/logger"
	"github.com/hversten/bookmirror/internal/menu"
	"github.com/hversten/bookmirror/internal/redis"
	"github.com/hversten/bookmirror/internal/scheduler"
	"github.com/hversten/bookmirror/internal/sources/chromium"
	"github.com/hversten/bookmirror/internal/sources/htmlfile"
	"github.com/hversten/bookmirror/internal/sources/yamlfile"
	redisstore "github.com/hversten/bookmirror/internal/store/redis"
	"github.com/hversten/bookmirror/internal/treesync"
	"github.com/hversten/bookmirror/internal/version"
)

// source is the full surface every file-backed browser store exposes.
type source interface {
	browser.BookmarkAPI
	browser.HistoryAPI
	scheduler.Reloader
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	source      source
	resyncer    *scheduler.Resyncer
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	src, err := openSource(cfg)
	if err != nil {
		loggerClient.Errorf("Failed to open %s source %s: %v", cfg.SourceKind, cfg.BookmarksFile, err)
		os.Exit(1)
	}
	loggerClient.Info("browser store opened",
		logger.String("source", cfg.SourceKind),
		logger.String("file", cfg.BookmarksFile))

	// Redis is optional: without it the daemon still mirrors, it
	// just starts cold after every restart.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.SnapshotsEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		store = redisstore.NewStore(redisClient)
	} else {
		loggerClient.Info("no redis address configured, snapshots disabled")
	}

	broadcaster := events.NewBroadcaster()
	registry := index.NewRegistry(broadcaster)

	treeMgr := treesync.New(src, registry, cfg.MobileRootID)
	historyMgr := history.New(src, registry, broadcaster)
	filterMgr := filter.New(registry, broadcaster)
	dispatcher := dispatch.New(treeMgr, historyMgr, filterMgr, loggerClient)

	menuRegistry := menu.NewRegistry(
		&menu.Delete{Registry: registry, Dispatcher: dispatcher},
		&menu.OpenAllInTabs{Registry: registry, Broadcaster: broadcaster},
		&menu.Properties{Registry: registry, Broadcaster: broadcaster},
	)

	// Warm the registry from the last snapshot so the tree is
	// servable before the first resync finishes.
	if store != nil {
		syncer := scheduler.NewRedisSyncer(store, registry, historyMgr, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to warm from redis snapshot, starting cold",
				logger.Error(err))
		}
	}

	resyncTrigger := make(chan struct{}, 1)

	resyncer := scheduler.NewResyncer(
		treeMgr,
		historyMgr,
		filterMgr,
		store,
		broadcaster,
		src,
		loggerClient,
		cfg.ResyncInterval,
		resyncTrigger,
	)

	var gc *scheduler.GarbageCollector
	if store != nil {
		gc = scheduler.NewGarbageCollector(store, registry, loggerClient, cfg.GCInterval)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		SourceKind:     cfg.SourceKind,
		Registry:       registry,
		Filter:         filterMgr,
		History:        historyMgr,
		Dispatcher:     dispatcher,
		Broadcaster:    broadcaster,
		Menu:           menuRegistry,
		RedisClient:    redisClient,
		ResyncTrigger:  resyncTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		source:      src,
		resyncer:    resyncer,
		gc:          gc,
	}
}

// openSource builds the configured browser-store adapter.
func openSource(cfg *config.Config) (source, error) {
	switch cfg.SourceKind {
	case "chromium":
		return chromium.Open(cfg.BookmarksFile, cfg.HistoryFile)
	case "html":
		return htmlfile.Open(cfg.BookmarksFile)
	case "yaml":
		return yamlfile.Open(cfg.BookmarksFile)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.SourceKind)
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Bookmirror v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Bookmirror %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start resyncer (loads the tree and starts the periodic refresh)
	if err := a.resyncer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start resyncer: %w", err)
	}
	a.logger.Info("resyncer started",
		logger.Duration("interval", a.cfg.ResyncInterval))

	// Start garbage collector (if snapshots are enabled)
	if a.gc != nil {
		if err := a.gc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start garbage collector: %w", err)
		}
		a.logger.Info("garbage collector started",
			logger.Duration("interval", a.cfg.GCInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.resyncer.Stop()

	if a.gc != nil {
		a.gc.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if closer, ok := a.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warnf("failed to close source: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Bookmirror stopped cleanly")
	return nil
}
