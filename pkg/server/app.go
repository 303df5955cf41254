package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"TAMCP/pkg/config"
	xhttp "TAMCP/pkg/http"
	applogger "TAMCP/pkg/logger"
)

// App encapsulates the application lifecycle: one HTTP server plus the
// resources that must be released on shutdown.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	logger     *applogger.Logger
	closers    []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

// New creates a new App. Resources are closed in the order given, after the server stops.
func New(cfg *config.Config, httpServer *xhttp.Server, logger *applogger.Logger) *App {
	if logger == nil {
		logger = applogger.NewNop()
	}
	return &App{cfg: cfg, httpServer: httpServer, logger: logger}
}

// AddCloser registers a resource to release on shutdown. Nil closers are ignored.
func (a *App) AddCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	a.closers = append(a.closers, namedCloser{name: name, c: c})
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted or the server fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext is Run with an explicit stop context.
func (a *App) RunContext(ctx context.Context) error {
	errCh := a.httpServer.Start()
	a.logger.Info("application started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("addr", a.httpServer.Addr()),
		applogger.String("cache", a.cfg.Cache.Backend),
		applogger.Bool("kafka", a.cfg.Kafka.Enabled),
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			a.logger.Error("http server error", applogger.Error(err))
			runErr = err
		}
	}

	a.shutdown()
	return runErr
}

// shutdown gracefully stops the server and then releases resources.
func (a *App) shutdown() {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for _, nc := range a.closers {
		if err := nc.c.Close(); err != nil {
			a.logger.Warn("close error", applogger.String("resource", nc.name), applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
}

// CloserFunc adapts a func to io.Closer.
type CloserFunc func() error

func (f CloserFunc) Close() error { return f() }
