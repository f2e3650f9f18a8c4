package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/ceremony"
	httpapi "github.com/vibespace/vibespace/internal/gateway/http"
	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/internal/gateway/store"
	"github.com/vibespace/vibespace/internal/gateway/store/drivers/sqlite"
	"github.com/vibespace/vibespace/pkg/jwtx"
	"github.com/vibespace/vibespace/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	codec    *jwtx.Codec
	verifier ceremony.Verifier

	// Services
	tokenService        *service.TokenService
	sessionService      *service.SessionService
	registrationService *service.RegistrationService
	passkeyService      *service.PasskeyService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "passkey-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := jwtx.NewCodec([]byte(cfg.SessionSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	verifier, err := ceremony.NewWebAuthnVerifier(cfg.RPID, cfg.RPDisplayName, cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize webauthn: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("passkey gateway starting",
		"port", app.cfg.Port,
		"rp_id", app.cfg.RPID,
		"version", BuildVersion,
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
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down passkey gateway...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("passkey gateway stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Codec:     app.codec,
		AccessTTL: app.cfg.AccessTTL(),
	}
	app.sessionService = &service.SessionService{
		Tokens: app.tokenService,
	}
	app.registrationService = &service.RegistrationService{
		Store:    app.db,
		TokenTTL: app.cfg.RegistrationTokenTTL,
	}
	app.passkeyService = &service.PasskeyService{
		Store:        app.db,
		Verifier:     app.verifier,
		Tokens:       app.tokenService,
		Registration: app.registrationService,
		OwnerSub:     app.cfg.OwnerSub,
		RPID:         app.cfg.RPID,
		Origin:       app.cfg.Origin,
		StateTTL:     app.cfg.StateTTL(),
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.registrationService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the router and HTTP server
func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(
		BuildVersion,
		app.cfg.Origin,
		app.cfg.AccessTTL(),
		app.db,
		app.logger,
	)
	app.router.TokenService = app.tokenService
	app.router.SessionService = app.sessionService
	app.router.PasskeyService = app.passkeyService
	app.router.RegistrationService = app.registrationService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
