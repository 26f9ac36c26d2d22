// Package app wires storage, persistence, services and the terminal client
// together and runs them until the user exits or a signal arrives.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/traveljournal/internal/cli"
	"github.com/dmitrijs2005/traveljournal/internal/config"
	"github.com/dmitrijs2005/traveljournal/internal/kv"
	"github.com/dmitrijs2005/traveljournal/internal/logging"
	"github.com/dmitrijs2005/traveljournal/internal/persist"
	"github.com/dmitrijs2005/traveljournal/internal/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config    *config.Config
	logger    logging.Logger
	storage   kv.Storage
	persistor *persist.Persistor
	cli       *cli.App
}

// NewApp opens the configured storage and builds the client. Logs go to
// logOut; the REPL reads in and writes out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, logOut)

	storage, err := kv.Open(ctx, c.KV())
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	p, err := persist.New(storage, c.Persist(), logger)
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("persistence init error: %w", err)
	}

	store := p.Store()
	profile := services.NewProfileService(storage)
	client := cli.NewApp(
		p,
		services.NewAuthService(store, profile),
		services.NewJournalService(store),
		profile,
		in,
		out,
		logger,
	)

	return &App{config: c, logger: logger, storage: storage, persistor: p, cli: client}, nil
}

// Run rehydrates the state and serves the REPL. SIGINT and SIGTERM end it
// like "exit" does; pending state is written before Run returns.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "starting journal", "backend", app.config.Backend, "key", app.config.StorageKey)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.persistor.Rehydrate(gctx)
		return nil
	})

	g.Go(func() error {
		defer stop()
		return app.cli.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		return app.shutdown()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if cerr := app.storage.Close(); cerr != nil {
		app.logger.Error(context.Background(), "close storage failed", "err", cerr)
		err = errors.Join(err, fmt.Errorf("close storage: %w", cerr))
	}

	app.logger.Info(context.Background(), "journal stopped")
	return err
}

// shutdown writes the last snapshot. The storage stays open until every
// goroutine of Run has returned.
func (app *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.persistor.Close(ctx); err != nil {
		app.logger.Error(ctx, "close persistor failed", "err", err)
		return fmt.Errorf("close persistor: %w", err)
	}
	return nil
}
