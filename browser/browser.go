// Package browser manages the Chrome instance a verification run drives:
// launch a local headless Chrome (or connect to a remote control URL), open
// the target page, and shut everything down when the run ends. Runs are
// short-lived, so there is no recycling; a browser lives for one run.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Config configures the browser for a run.
type Config struct {
	// RemoteURL is the WebSocket control URL of an external Chrome. Empty =
	// launch a local Chrome via the rod launcher.
	RemoteURL string

	// Headful disables headless mode for local launches. Useful when
	// watching a run against a real deployment.
	Headful bool

	// Stealth applies the stealth page preset, matching how the target UI
	// would see a regular visitor.
	Stealth bool

	// ResourceBlocking lists resource types to block (images, fonts, media,
	// stylesheets). The harness reads text and structure, so pixels are
	// usually dead weight.
	ResourceBlocking []string

	// NavigateTimeout bounds navigation plus initial load. Default: 30s.
	NavigateTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Browser owns one Chrome instance for the duration of a run.
type Browser struct {
	cfg  Config
	rod  *rod.Browser
	lnch *launcher.Launcher
}

// Start launches or connects Chrome.
func Start(ctx context.Context, cfg Config) (*Browser, error) {
	cfg.defaults()
	log := cfg.Logger

	var wsURL string
	var lnch *launcher.Launcher

	if cfg.RemoteURL != "" {
		wsURL = cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().
			Headless(!cfg.Headful).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		lnch = l
		log.Info("browser: launched local chrome", "headful", cfg.Headful)
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		if lnch != nil {
			lnch.Cleanup()
		}
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	if err := b.IgnoreCertErrors(true); err != nil {
		log.Warn("browser: ignore cert errors failed", "error", err)
	}

	return &Browser{cfg: cfg, rod: b, lnch: lnch}, nil
}

// OpenPage creates a page, applies resource blocking, navigates to pageURL
// and waits for the load event.
func (b *Browser) OpenPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	var page *rod.Page
	var err error

	if b.cfg.Stealth {
		page, err = stealth.Page(b.rod)
	} else {
		page, err = b.rod.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	if len(b.cfg.ResourceBlocking) > 0 {
		if err := blockResources(page, b.cfg.ResourceBlocking); err != nil {
			b.cfg.Logger.Warn("browser: resource blocking failed", "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		b.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	return page, nil
}

// Close shuts down Chrome and the launcher.
func (b *Browser) Close() error {
	if b.rod != nil {
		b.rod.Close()
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
	return nil
}

// blockResources intercepts requests and fails those whose resource type is
// in the block list.
func blockResources(page *rod.Page, types []string) error {
	blocked := make(map[string]bool, len(types))
	for _, t := range types {
		blocked[strings.ToLower(t)] = true
	}

	router := page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if blockType(blocked, string(h.Request.Type())) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
	return nil
}

func blockType(blocked map[string]bool, resType string) bool {
	switch strings.ToLower(resType) {
	case "image":
		return blocked["images"]
	case "font":
		return blocked["fonts"]
	case "media":
		return blocked["media"]
	case "stylesheet":
		return blocked["stylesheets"]
	}
	return blocked[strings.ToLower(resType)]
}
