// Package e2e runs the full verification stack — Chrome, resolver, page
// model, scenarios, report store — against the embedded UI stub.
//
// The tests need a local Chrome and are skipped unless ROOMCHECK_E2E is set:
//
//	ROOMCHECK_E2E=1 go test ./e2e/
package e2e

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hazyhaar/roomcheck/browser"
	"github.com/hazyhaar/roomcheck/harness"
	"github.com/hazyhaar/roomcheck/listapi"
	"github.com/hazyhaar/roomcheck/report"
	"github.com/hazyhaar/roomcheck/resolve"
	"github.com/hazyhaar/roomcheck/roominglist"
	"github.com/hazyhaar/roomcheck/uistub"
	"github.com/hazyhaar/roomcheck/verify"
)

func requireChrome(t *testing.T) {
	t.Helper()
	if os.Getenv("ROOMCHECK_E2E") == "" {
		t.Skip("set ROOMCHECK_E2E=1 to run browser tests")
	}
}

func newEnv(ctx context.Context, t *testing.T) *verify.Env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	srv := httptest.NewServer(uistub.New(nil, logger).Router())
	t.Cleanup(srv.Close)

	b, err := browser.Start(ctx, browser.Config{Logger: logger})
	if err != nil {
		t.Fatalf("browser.Start: %v", err)
	}
	t.Cleanup(func() { b.Close() })

	page, err := b.OpenPage(ctx, srv.URL)
	if err != nil {
		t.Fatalf("OpenPage: %v", err)
	}

	res := resolve.New(page, resolve.Config{Timeout: 10 * time.Second, Logger: logger})
	return &verify.Env{
		Page: roominglist.New(res, logger),
		Res:  res,
		API:  &listapi.Client{BaseURL: srv.URL + "/api/rooming-lists"},
		Log:  logger,
	}
}

func TestScenariosAgainstStub(t *testing.T) {
	requireChrome(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	env := newEnv(ctx, t)
	for _, sc := range verify.All() {
		t.Run(sc.Name, func(t *testing.T) {
			if err := sc.Run(ctx, env); err != nil {
				t.Errorf("%s: %v", sc.Name, err)
			}
		})
	}
}

func TestHarnessRunRecordsResults(t *testing.T) {
	requireChrome(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	srv := httptest.NewServer(uistub.New(nil, logger).Router())
	defer srv.Close()

	cfg := harness.Default(srv.URL)
	cfg.Report.Path = filepath.Join(t.TempDir(), "report.db")

	out, err := harness.Run(ctx, cfg, verify.All(), logger)
	if err != nil {
		t.Fatalf("harness.Run: %v", err)
	}
	if out.Failed != 0 {
		t.Errorf("%d scenarios failed against the stub", out.Failed)
	}

	store, err := report.Open(cfg.Report.Path)
	if err != nil {
		t.Fatalf("report.Open: %v", err)
	}
	defer store.Close()
	passed, failed, err := store.Summary(ctx, out.RunID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if passed != out.Passed || failed != out.Failed {
		t.Errorf("store summary %d/%d, run outcome %d/%d", passed, failed, out.Passed, out.Failed)
	}
}
