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

	httpapi "github.com/powoftech/relic-chat/internal/auth/http"
	"github.com/powoftech/relic-chat/internal/auth/mail"
	"github.com/powoftech/relic-chat/internal/auth/otp"
	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/internal/auth/store/drivers/sqlite"
	"github.com/powoftech/relic-chat/pkg/cryptox"
	"github.com/powoftech/relic-chat/pkg/slogx"
	"github.com/powoftech/relic-chat/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	otp   otp.Store
	codec *tokenx.Codec

	// Services
	directoryService    *service.DirectoryService
	sessionService      *service.SessionService
	verificationService *service.VerificationService
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
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	codec, err := tokenx.NewCodec([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initOTPStore()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down auth service...")

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

	// Close the Redis connection if one is in use
	if closer, ok := app.otp.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing otp store", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
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

// initOTPStore selects the one-time-code store: Redis when configured,
// the in-process store otherwise.
func (app *Application) initOTPStore() {
	if app.cfg.RedisAddr != "" {
		app.otp = otp.NewRedisStore(app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
		app.logger.Info("otp store: redis", "addr", app.cfg.RedisAddr)
		return
	}

	app.otp = otp.NewMemoryStore()
	app.logger.Warn("otp store: in-memory; codes do not survive restarts")
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.directoryService = &service.DirectoryService{Store: app.db}

	app.sessionService = &service.SessionService{
		Codec:      app.codec,
		Store:      app.db,
		RefreshTTL: service.DefaultRefreshTTL,
	}

	app.verificationService = &service.VerificationService{
		Directory: app.directoryService,
		Sessions:  app.sessionService,
		OTP:       app.otp,
		Mailer:    app.newMailer(),
		Codec:     app.codec,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) newMailer() mail.Mailer {
	if app.cfg.ResendAPIKey != "" {
		return mail.NewResendMailer(app.cfg.ResendAPIKey, app.cfg.MailFrom)
	}

	// validate() already rejected this combination for prod.
	app.logger.Warn("mailer: log only; verification codes are written to stdout")
	return mail.NewLogMailer()
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.cfg.DevMode(),
		app.db,
		app.otp,
		app.logger,
	)

	// Wire services to router
	router.Directory = app.directoryService
	router.Sessions = app.sessionService
	router.Verification = app.verificationService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
