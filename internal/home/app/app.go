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

	httpapi "github.com/hearthhq/hearth/internal/home/http"
	"github.com/hearthhq/hearth/internal/home/relay"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/internal/home/store/drivers/postgres"
	"github.com/hearthhq/hearth/internal/home/store/drivers/sqlite"
	"github.com/hearthhq/hearth/pkg/cryptox"
	"github.com/hearthhq/hearth/pkg/jwtx"
	"github.com/hearthhq/hearth/pkg/metricsx"
	"github.com/hearthhq/hearth/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the home core together: token service, account API
// and the frame relay.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	hasher     *cryptox.PasswordHasher
	metrics    *metricsx.Metrics

	// Services
	tokenService    *service.TokenService
	userService     *service.UserService
	buildingService *service.BuildingService
	roomService     *service.RoomService
	relay           *relay.Relay

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "home-core",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("home core starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, closes relay connections with
// going-away and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down home core...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by the server, the
	// relay closes them through RegisterOnShutdown.
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}
	app.relay.Shutdown()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("home core stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s", app.cfg.DatabaseURL))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		KeyManager:    app.keyManager,
		Store:         app.db,
		Issuer:        app.cfg.Issuer,
		Audience:      app.cfg.Audience,
		AccessTTL:     app.cfg.AccessTokenTTL,
		InvitationTTL: app.cfg.InvitationTTL,
	}
	app.userService = &service.UserService{
		Store:  app.db,
		Tokens: app.tokenService,
		Hasher: app.hasher,
	}
	app.buildingService = &service.BuildingService{
		Store:  app.db,
		Tokens: app.tokenService,
	}

	frames := relay.NewFrameStore()
	app.roomService = &service.RoomService{Store: app.db}

	app.metrics = metricsx.New()
	app.metrics.WatchFrames(frames)
	app.relay = relay.New(frames, app.tokenService, relay.Options{
		Interval:         app.cfg.RelayInterval,
		MaxFrameBytes:    app.cfg.RelayMaxFrameBytes,
		HandshakeTimeout: app.cfg.HandshakeTimeout,
		OriginPatterns:   app.cfg.AllowedOrigins,
		Metrics:          app.metrics.Relay(),
	})
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.BuildingService = app.buildingService
	router.RoomService = app.roomService
	router.Relay = app.relay
	router.RateLimits = app.cfg.RateLimits
	router.TrustProxyHeaders = app.cfg.TrustProxyHeaders
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	app.server.RegisterOnShutdown(app.relay.Shutdown)
}
