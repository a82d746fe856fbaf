package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/viralscript-backend/internal/data/db"
	"github.com/yungbote/viralscript-backend/internal/http"
	"github.com/yungbote/viralscript-backend/internal/observability"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services

	dbService    *db.Service
	otelShutdown func(context.Context) error
	base         context.Context
	cancelBase   context.CancelFunc
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	base, cancelBase := context.WithCancel(context.Background())
	otelShutdown := observability.InitOTel(base, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})
	metrics := observability.Init(log)

	fail := func(err error) (*App, error) {
		cancelBase()
		_ = otelShutdown(context.Background())
		log.Sync()
		return nil, err
	}

	var (
		dbService *db.Service
		theDB     *gorm.DB
	)
	dbService, err = db.Open(log, cfg.DB)
	switch {
	case errors.Is(err, db.ErrDisabled):
		log.Warn("Database disabled")
	case err != nil:
		return fail(fmt.Errorf("init database: %w", err))
	default:
		theDB = dbService.DB()
		if err := db.AutoMigrateAll(theDB); err != nil {
			_ = dbService.Close()
			return fail(fmt.Errorf("database automigrate: %w", err))
		}
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		if dbService != nil {
			_ = dbService.Close()
		}
		return fail(err)
	}
	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(base, log, cfg, clientset, reposet)
	if err != nil {
		if dbService != nil {
			_ = dbService.Close()
		}
		return fail(err)
	}

	handlerset := wireHandlers(log, theDB, serviceset)
	server := wireServer(log, cfg, metrics, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Clients:      clientset,
		Repos:        reposet,
		Services:     serviceset,
		dbService:    dbService,
		otelShutdown: otelShutdown,
		base:         base,
		cancelBase:   cancelBase,
	}, nil
}

// Start launches background work: the prefetch janitor.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(a.base)
	a.cancel = cancel

	if a.Services.Prefetch != nil {
		go a.Services.Prefetch.Run(ctx, a.Cfg.PrefetchSweepInterval)
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "addr", addr)
	return a.Server.Run(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.cancelBase != nil {
		a.cancelBase()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
