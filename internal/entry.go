// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/petdesk/internal/api"
	"github.com/starford/petdesk/internal/index"
	"github.com/starford/petdesk/internal/mcpserver"
	"github.com/starford/petdesk/internal/petapi"
	"github.com/starford/petdesk/internal/petservice"
	"github.com/starford/petdesk/internal/sse"
	"github.com/starford/petdesk/internal/storage"
	"github.com/starford/petdesk/internal/tui"
)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// openService opens the db.json store and its index and runs the initial sync.
func openService(ctx context.Context, cfg *Config, logger *slog.Logger, notify petservice.Notifier) (*petservice.Service, *index.DB, error) {
	store, err := storage.NewFile(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}

	svc := petservice.New(store, db,
		petservice.WithLogger(logger),
		petservice.WithNotifier(notify))
	if err := svc.Init(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initial sync: %w", err)
	}
	return svc, db, nil
}

// watch resyncs the service whenever the file changes outside of it.
func watch(ctx context.Context, cfg *Config, svc *petservice.Service, logger *slog.Logger) error {
	return index.Watch(ctx, cfg.Store.Path, cfg.Events.Debounce, logger, func() {
		if err := svc.Resync(ctx); err != nil {
			logger.Warn("resync failed", slog.String("error", err.Error()))
		}
	})
}

func healthOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func healthReady(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ready(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		healthOK(w, r)
	}
}

// newHTTPHandler builds the dev server router: access logging, health checks
// and the /pets resource at the root, where json-server serves it.
func newHTTPHandler(svc api.PetService, events http.Handler, ready func() error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", healthOK)
	r.Get("/health/ready", healthReady(ready))

	r.Mount("/", api.NewRouter(svc, events))
	return r
}

// RunServer starts the development REST server.
func RunServer(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	out := app.logOut
	if out == nil {
		out = os.Stdout
	}
	logger := newLogger(out, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()

	svc, db, err := openService(ctx, cfg, logger, broker.PublishPetEvent)
	if err != nil {
		return err
	}
	defer db.Close()

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newHTTPHandler(svc, broker, svc.Ready),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := watch(gCtx, cfg, svc, logger); err != nil {
			return fmt.Errorf("watcher: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		// SSE streams only end when the broker closes.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the pet store over MCP on stdin/stdout. Logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	out := app.logOut
	if out == nil {
		out = os.Stderr
	}
	logger := newLogger(out, cfg.App.LogLevel)
	slog.SetDefault(logger)

	svc, db, err := openService(ctx, cfg, logger, func(kind, id string) {
		logger.Debug("pet changed", slog.String("kind", kind), slog.String("id", id))
	})
	if err != nil {
		return err
	}
	defer db.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := watch(watchCtx, cfg, svc, logger); err != nil {
			logger.Warn("watcher stopped", slog.String("error", err.Error()))
		}
	}()

	logger.Info("MCP server starting", slog.String("store_path", cfg.Store.Path))
	return mcpserver.New(svc, app.version).ServeStdio()
}

// RunTUI starts the terminal client against the configured pet resource.
// Logs go to the configured file because the terminal is taken by the UI.
func RunTUI(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	out := app.logOut
	if out == nil {
		f, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := newLogger(out, cfg.App.LogLevel)
	slog.SetDefault(logger)

	client, err := petapi.New(cfg.API.BaseURL, cfg.API.Timeout, petapi.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	logger.Info("TUI starting",
		slog.String("base_url", cfg.API.BaseURL),
		slog.Duration("debounce", cfg.Search.Debounce))
	return tui.Run(ctx, client, cfg.Search.Debounce, logger)
}
