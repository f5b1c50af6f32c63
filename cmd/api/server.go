// cmd/api/server.go
// This file contains the serve() method which runs the HTTP server until ctx
// is cancelled or the process receives SIGINT/SIGTERM, then drains it and
// releases the book store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// shutdownGrace is how long in-flight requests get to finish once shutdown starts.
const shutdownGrace = 20 * time.Second

// serve blocks until the server has stopped. The context handed to routes is
// cancelled at the start of shutdown, which also stops background work such
// as the rate limiter's janitor. Store and cache clients are closed after the
// last request has drained.
func (app *applicationDependencies) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Port),
		Handler:      app.routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		app.logger.Info("shutting down server", "address", apiServer.Addr)

		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		shutdownErr <- apiServer.Shutdown(drainCtx)
	}()

	app.logger.Info("starting server", "address", apiServer.Addr, "environment", app.config.Environment, "store", app.config.Store)

	err := apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		app.releaseStores()
		return err
	}

	err = <-shutdownErr
	app.releaseStores()
	if err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}

// releaseStores runs the store cleanup once, if one was registered.
func (app *applicationDependencies) releaseStores() {
	if app.closeStores != nil {
		app.closeStores()
		app.closeStores = nil
	}
}
