package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/elibrary/internal/auth"
	"github.com/mrlokans/elibrary/internal/cli"
	"github.com/mrlokans/elibrary/internal/config"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/database/bookmarks"
	"github.com/mrlokans/elibrary/internal/database/books"
	"github.com/mrlokans/elibrary/internal/database/notes"
	"github.com/mrlokans/elibrary/internal/database/preferences"
	"github.com/mrlokans/elibrary/internal/database/users"
	http_controllers "github.com/mrlokans/elibrary/internal/http"
	"github.com/mrlokans/elibrary/internal/logger"
)

// ShutdownFunc is called once the server has stopped to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for up to the configured shutdown timeout. onShutdown runs after
// the server stops, whether it was drained or failed to listen.
func Serve(router http.Handler, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if onShutdown != nil {
			onShutdown(context.Background())
		}
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()), zap.Duration("timeout", timeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := srv.Shutdown(ctx)
	if onShutdown != nil {
		onShutdown(ctx)
	}
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}

	log.Info("server exited")
	return nil
}

// Run wires configuration, storage, authentication and routes, then serves.
func Run(cfg *config.Config, version string) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting elibrary", zap.String("version", version))

	if cfg.Auth.TokenExpiry <= 0 {
		return fmt.Errorf("AUTH_TOKEN_EXPIRY must be positive, got %s", cfg.Auth.TokenExpiry)
	}
	secret, err := ensureTokenSecret(cfg.Auth, log)
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	tokens := auth.NewTokenIssuer(secret, cfg.Auth.TokenExpiry, cfg.Auth.TokenIssuer)
	authService := auth.NewService(users.NewRepository(db.DB), tokens, cfg.Auth.BcryptCost, log)
	authMiddleware := auth.NewMiddleware(authService, log)

	gin.SetMode(gin.ReleaseMode)
	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Logger:           log,
		Database:         db,
		AuthService:      authService,
		AuthMiddleware:   authMiddleware.RequireUser(),
		BookReader:       books.NewRepository(db.DB),
		BookmarkStore:    bookmarks.NewRepository(db.DB),
		NoteStore:        notes.NewRepository(db.DB),
		PreferencesStore: preferences.NewRepository(db.DB),
		Version:          version,
	})

	return Serve(router, cfg, log, closeDatabase(db, log))
}

// SeedBooks imports a catalogue file into the configured database.
func SeedBooks(cfg *config.Config, filePath string, dryRun bool) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	if _, err := cli.NewSeedBooksCommand(filePath, dryRun, log).Run(context.Background(), repo); err != nil {
		return err
	}

	total, err := repo.CountBooks(context.Background())
	if err != nil {
		return err
	}
	log.Info("catalogue size", zap.Int64("books", total))
	return nil
}

// closeDatabase releases the connection pool once the server has stopped.
func closeDatabase(db *database.Database, log *zap.Logger) ShutdownFunc {
	return func(context.Context) {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
			return
		}
		log.Info("database closed")
	}
}

// ensureTokenSecret returns the configured secret or a random one that lives
// only as long as the process.
func ensureTokenSecret(cfg config.Auth, log *zap.Logger) (string, error) {
	if cfg.TokenSecret != "" {
		return cfg.TokenSecret, nil
	}

	secret, err := auth.GenerateTokenSecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	log.Warn("AUTH_TOKEN_SECRET is not set, generated a random secret; issued tokens will not survive a restart")
	return secret, nil
}
