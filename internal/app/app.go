// Package app wires configuration, logging, metrics, the SQLite store and
// the Sea Service engine together and runs the interactive CLI until the
// user exits or the process is signalled.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/seabook/internal/cli"
	"github.com/dmitrijs2005/seabook/internal/config"
	"github.com/dmitrijs2005/seabook/internal/filex"
	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/metrics"
	"github.com/dmitrijs2005/seabook/internal/notify"
	"github.com/dmitrijs2005/seabook/internal/repositories/seaservice"
	"github.com/dmitrijs2005/seabook/internal/services"
	"github.com/dmitrijs2005/seabook/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	registry *prometheus.Registry
	state    *state.Container
	cli      *cli.App
}

// NewApp opens the store and builds the engine. Logs go to logOut; the CLI
// reads commands from in.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logging.Options{Backend: c.LogBackend, Level: c.LogLevel, Format: c.LogFormat}, logOut)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db, err := seaservice.Open(ctx, c.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repo := seaservice.NewSQLiteRepository(db, logger, m)
	drafts := services.NewDraftManager(repo, logger, m)
	s := state.New(drafts, repo, notify.Log{Logger: logger}, logger)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		registry: registry,
		state:    s,
		cli:      cli.NewApp(s, in, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startMetricsServer(ctx context.Context) {
	app.logger.Info(ctx, "serving metrics", "addr", app.config.MetricsAddr)
	if err := metrics.Serve(ctx, app.config.MetricsAddr, app.registry); err != nil {
		app.logger.Error(ctx, "metrics server stopped", "error", err)
	}
}

// Run loads the stored state and blocks until the REPL ends or a signal
// arrives. A load failure is reported but does not stop the CLI.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if err := app.state.Activate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: stored data could not be fully loaded:", err)
	}

	var wg sync.WaitGroup
	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx)
		}()
	}

	// The REPL blocks on input, so it is not waited for after a signal.
	replDone := make(chan error, 1)
	go func() {
		replDone <- app.cli.Run(ctx)
		cancelFunc()
	}()

	var err error
	select {
	case err = <-replDone:
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
	}

	cancelFunc()
	wg.Wait()
	return err
}

// Close releases the store and flushes buffered logs.
func (app *App) Close() error {
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return app.db.Close()
}
