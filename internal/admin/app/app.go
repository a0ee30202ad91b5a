package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/aussiebroadwan/saasadmin/internal/admin/http"
	"github.com/aussiebroadwan/saasadmin/internal/admin/realtime"
	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/postgres"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the admin service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	accessKey  *jwtx.HMACKey
	refreshKey *jwtx.HMACKey
	registry   *prometheus.Registry
	hub        *realtime.Hub

	// Services
	tokenService        *service.TokenService
	tenantService       *service.TenantService
	rolesService        *service.RolesService
	accountService      *service.AccountService
	sessionService      *service.SessionService
	organizationService *service.OrganizationService
	sidebarService      *service.SidebarService
	notificationService *service.NotificationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "admin-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, NewLogger(cfg))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, logger: logger}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	accessKey, refreshKey, err := InitTokenKeys(app.cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token keys: %w", err)
	}
	app.accessKey, app.refreshKey = accessKey, refreshKey

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initMetrics()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("admin service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("driver", app.cfg.DatabaseDriver),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server, then housekeeping, then closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down admin service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("admin service stopped")
	return nil
}

// OpenStore connects to the configured database driver. Migrations are not
// applied.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		return postgres.NewStore(ctx, postgres.Config{
			DSN:             cfg.DSN,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		})
	case DriverSQLite:
		return sqlite.NewStore(cfg.DatabaseFile)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// initDatabase opens the store and applies migrations.
func (app *Application) initDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully",
		slog.String("driver", app.cfg.DatabaseDriver),
	)
	return nil
}

func (app *Application) initMetrics() {
	if !app.cfg.MetricsEnabled {
		app.hub = realtime.NewHub(nil)
		return
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.hub = realtime.NewHub(app.registry)
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Store:      app.db,
		AccessKey:  app.accessKey,
		RefreshKey: app.refreshKey,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}
	app.tenantService = &service.TenantService{Store: app.db}
	app.rolesService = &service.RolesService{Store: app.db}
	app.accountService = &service.AccountService{
		Store:   app.db,
		Tokens:  app.tokenService,
		Tenants: app.tenantService,
		Roles:   app.rolesService,
	}
	app.sessionService = &service.SessionService{Store: app.db, Tokens: app.tokenService}
	app.organizationService = &service.OrganizationService{Store: app.db}
	app.sidebarService = &service.SidebarService{Store: app.db}
	app.notificationService = &service.NotificationService{Store: app.db, Sink: app.hub}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.TokenService = app.tokenService
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.TenantService = app.tenantService
	router.OrganizationService = app.organizationService
	router.SidebarService = app.sidebarService
	router.NotificationService = app.notificationService
	router.Hub = app.hub
	router.WSPingInterval = app.cfg.WSPingInterval

	if app.registry != nil {
		router.EnableMetrics(app.registry, app.registry)
	}
	router.EnableCORS(app.cfg.CORSAllowedOrigins)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	// Hijacked WebSocket connections are not tracked by Shutdown.
	app.server.RegisterOnShutdown(app.hub.Close)
}
