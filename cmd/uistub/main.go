// Command uistub serves a self-contained rooming-list UI with seeded data.
// It renders every surface the verification harness drives, so roomcheck can
// be exercised end to end without the real frontend.
//
// Usage:
//
//	uistub -addr :3000
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/roomcheck/uistub"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *addr); err != nil {
		logger.Error("uistub: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: uistub.New(nil, logger).Router(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("uistub: listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("uistub: shutting down")
	return srv.Shutdown(shutCtx)
}
