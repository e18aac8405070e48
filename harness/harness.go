package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/roomcheck/browser"
	"github.com/hazyhaar/roomcheck/listapi"
	"github.com/hazyhaar/roomcheck/report"
	"github.com/hazyhaar/roomcheck/resolve"
	"github.com/hazyhaar/roomcheck/roominglist"
	"github.com/hazyhaar/roomcheck/verify"
)

// Outcome is the aggregate result of one run.
type Outcome struct {
	RunID  int64
	Passed int
	Failed int
}

// Run executes the scenario set against cfg's target and records every
// outcome in the report store. Scenarios run sequentially on one page; a
// scenario failure is recorded and the run continues. The returned error
// covers harness-level faults only (browser, navigation, store), never
// scenario verdicts — check Outcome.Failed for those.
func Run(ctx context.Context, cfg *Config, scenarios []verify.Scenario, logger *slog.Logger) (Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := report.Open(cfg.Report.Path)
	if err != nil {
		return Outcome{}, err
	}
	defer store.Close()

	b, err := browser.Start(ctx, browser.Config{
		RemoteURL:        cfg.Browser.Remote,
		Headful:          cfg.Browser.Headful,
		Stealth:          cfg.Browser.Stealth,
		ResourceBlocking: cfg.Browser.ResourceBlocking,
		NavigateTimeout:  cfg.Waits.Navigate,
		Logger:           logger,
	})
	if err != nil {
		return Outcome{}, err
	}
	defer b.Close()

	rodPage, err := b.OpenPage(ctx, cfg.Target.PageURL)
	if err != nil {
		return Outcome{}, err
	}

	res := resolve.New(rodPage, resolve.Config{
		Roles:   cfg.RoleOverrides(),
		Timeout: cfg.Waits.Element,
		Logger:  logger,
	})
	env := &verify.Env{
		Page: roominglist.New(res, logger),
		Res:  res,
		API:  &listapi.Client{BaseURL: cfg.Target.APIURL},
		Log:  logger,
	}

	runID, err := store.BeginRun(ctx, cfg.Target.PageURL)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{RunID: runID}

	for _, sc := range scenarios {
		if ctx.Err() != nil {
			return out, fmt.Errorf("harness: run interrupted: %w", ctx.Err())
		}

		start := time.Now()
		scErr := sc.Run(ctx, env)
		elapsed := time.Since(start)

		status, detail := report.StatusPassed, ""
		if scErr != nil {
			status, detail = report.StatusFailed, scErr.Error()
			out.Failed++
			logger.Error("harness: scenario failed", "scenario", sc.Name, "error", scErr, "elapsed", elapsed)
		} else {
			out.Passed++
			logger.Info("harness: scenario passed", "scenario", sc.Name, "elapsed", elapsed)
		}
		if err := store.Record(ctx, runID, sc.Name, status, detail, elapsed); err != nil {
			return out, err
		}
	}

	if err := store.FinishRun(ctx, runID); err != nil {
		return out, err
	}
	logger.Info("harness: run finished", "run", runID, "passed", out.Passed, "failed", out.Failed)
	return out, nil
}
