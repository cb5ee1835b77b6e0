// Package server initializes and runs the Flax server: it picks the store
// backend, bootstraps the document, wires the HTTP API and handles graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"flax/internal/logging"
	"flax/internal/server/config"
	"flax/internal/server/httpapi"
	"flax/internal/server/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.API
	db     *sql.DB
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	app := &App{config: c, logger: logger}

	port, err := app.initPort(context.Background())
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	manager := store.NewManager(port, logger)
	app.api = httpapi.New(manager, logger, c)

	return app, nil
}

// initPort builds the configured store backend.
func (app *App) initPort(ctx context.Context) (store.Port, error) {
	switch app.config.StoreBackend {
	case config.BackendFile:
		return store.NewFilePort(app.config.StoreFilePath), nil

	case config.BackendPostgres:
		db, err := sql.Open("pgx", app.config.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(ctx, db); err != nil {
			return nil, err
		}
		app.db = db
		return store.NewPostgresPort(db), nil

	case config.BackendS3:
		return store.NewS3Port(ctx, store.S3Options{
			RootUser:     app.config.S3RootUser,
			RootPassword: app.config.S3RootPassword,
			Bucket:       app.config.S3Bucket,
			Region:       app.config.S3Region,
			BaseEndpoint: app.config.S3BaseEndpoint,
		})

	default:
		return nil, fmt.Errorf("unknown store backend: %s", app.config.StoreBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}()

	app.logger.Info(ctx, "HTTP server listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.api.Admin().Bootstrap(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
