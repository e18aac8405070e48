// Package roominglist is the page model for the rooming-list UI: the list
// page, its filter modal and the per-entry bookings modal, composed over the
// role resolver.
//
// The model owns no page state. Entries and bookings are re-read on every
// query; the only mutations it performs are interaction commands (search
// text, filter toggles) whose effect is confirmed by reading the rendered
// page back — read-after-write, never bookkeeping as ground truth.
package roominglist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/roomcheck/extract"
	"github.com/hazyhaar/roomcheck/resolve"
)

// Page is the list page model. One Page per browsing context; operations are
// sequential, each bounded by the resolver's wait.
type Page struct {
	res    *resolve.Resolver
	log    *slog.Logger
	filter *FilterModal
	detail *DetailModal
}

// New creates the page model over a resolver.
func New(res *resolve.Resolver, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	return &Page{
		res:    res,
		log:    logger,
		filter: newFilterModal(res, logger),
		detail: newDetailModal(res, logger),
	}
}

// Filters returns the filter modal model.
func (p *Page) Filters() *FilterModal { return p.filter }

// Detail returns the detail modal model.
func (p *Page) Detail() *DetailModal { return p.detail }

// Title returns the rendered page title text.
func (p *Page) Title(ctx context.Context) (string, error) {
	h, err := p.res.FindFirst(ctx, resolve.RolePageTitle)
	if err != nil {
		return "", err
	}
	return p.res.TextOf(ctx, h)
}

// Search writes text into the search field and waits for the list to settle:
// either the entry count stabilises or the no-results indicator renders.
func (p *Page) Search(ctx context.Context, text string) error {
	if err := p.res.FillRole(ctx, resolve.RoleSearchInput, text); err != nil {
		return fmt.Errorf("search %q: %w", text, err)
	}
	if _, err := p.res.WaitStableCount(ctx, resolve.RoleEventCard); err != nil {
		return fmt.Errorf("search %q settle: %w", text, err)
	}
	return nil
}

// VisibleEntries returns the currently rendered entries in document order —
// the server-provided order, never re-sorted here. Each call is a fresh
// projection.
func (p *Page) VisibleEntries(ctx context.Context) ([]Entry, error) {
	handles, err := p.res.Find(ctx, resolve.RoleEventCard)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(handles))
	for _, h := range handles {
		vis, err := p.res.IsVisible(ctx, h)
		if err != nil {
			return nil, err
		}
		if vis {
			entries = append(entries, Entry{handle: h})
		}
	}
	return entries, nil
}

// NoResultsVisible reports whether the no-results indicator renders. The
// indicator must be visible exactly when zero entries are.
func (p *Page) NoResultsVisible(ctx context.Context) (bool, error) {
	return p.res.VisibleRole(ctx, resolve.RoleNoResults)
}

// SummaryOf reads the card-level fields of an entry. The raw name is
// normalised; the status must parse to one of the three known values.
func (p *Page) SummaryOf(ctx context.Context, e Entry) (Summary, error) {
	rawName, err := p.res.ChildText(ctx, e.handle, resolve.RoleEventName)
	if err != nil {
		return Summary{}, fmt.Errorf("summary name: %w", err)
	}

	rawStatus, err := p.res.ChildText(ctx, e.handle, resolve.RoleEventStatus)
	if err != nil {
		return Summary{}, fmt.Errorf("summary status: %w", err)
	}
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return Summary{}, err
	}

	month, err := p.res.ChildText(ctx, e.handle, resolve.RoleCutoffMonth)
	if err != nil {
		return Summary{}, fmt.Errorf("summary cutoff month: %w", err)
	}
	day, err := p.res.ChildText(ctx, e.handle, resolve.RoleCutoffDay)
	if err != nil {
		return Summary{}, fmt.Errorf("summary cutoff day: %w", err)
	}
	agreement, err := p.res.ChildText(ctx, e.handle, resolve.RoleAgreementType)
	if err != nil {
		return Summary{}, fmt.Errorf("summary agreement: %w", err)
	}

	bookingsLabel, err := p.res.ChildText(ctx, e.handle, resolve.RoleViewBookings)
	if err != nil {
		return Summary{}, fmt.Errorf("summary bookings label: %w", err)
	}

	return Summary{
		DisplayName:   extract.Clean(rawName),
		Status:        status,
		CutoffMonth:   strings.TrimSpace(month),
		CutoffDay:     strings.TrimSpace(day),
		AgreementType: strings.TrimSpace(agreement),
		BookingCount:  parseBookingCount(bookingsLabel),
	}, nil
}

// OpenDetail clicks the entry's View Bookings control and waits for the
// detail modal to render.
func (p *Page) OpenDetail(ctx context.Context, e Entry) (*DetailModal, error) {
	btn, err := p.res.FirstWithin(ctx, e.handle, resolve.RoleViewBookings)
	if err != nil {
		return nil, fmt.Errorf("open detail: %w", err)
	}
	if err := p.res.Click(ctx, btn); err != nil {
		return nil, fmt.Errorf("open detail: %w", err)
	}
	if err := p.detail.awaitOpen(ctx); err != nil {
		return nil, err
	}
	return p.detail, nil
}

// Groups returns the rendered event group sections.
func (p *Page) Groups(ctx context.Context) ([]Group, error) {
	handles, err := p.res.Find(ctx, resolve.RoleEventGroup)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, 0, len(handles))
	for _, h := range handles {
		groups = append(groups, Group{handle: h})
	}
	return groups, nil
}

// SeparatorCount returns the number of visual separators rendered in a
// group's header.
func (p *Page) SeparatorCount(ctx context.Context, g Group) (int, error) {
	seps, err := p.res.FindWithin(ctx, g.handle, resolve.RoleGroupSeparator)
	if err != nil {
		return 0, err
	}
	return len(seps), nil
}

// ScrollNext advances a group's horizontal card strip by one page. When the
// strip is not wider than its viewport there is nothing to scroll and the
// call succeeds as a no-op; callers decide whether that matters.
func (p *Page) ScrollNext(ctx context.Context, g Group) error {
	strip, err := p.res.FirstWithin(ctx, g.handle, resolve.RoleScrollContainer)
	if err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}

	scrollWidth, err := p.res.EvalInt(ctx, strip, `() => this.scrollWidth`)
	if err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}
	clientWidth, err := p.res.EvalInt(ctx, strip, `() => this.clientWidth`)
	if err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}
	if scrollWidth <= clientWidth {
		p.log.Debug("roominglist: scroll is a no-op", "scrollWidth", scrollWidth, "clientWidth", clientWidth)
		return nil
	}

	before, err := p.res.EvalInt(ctx, strip, `() => Math.round(this.scrollLeft)`)
	if err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}

	next, err := p.res.FirstWithin(ctx, g.handle, resolve.RoleScrollNext)
	if err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}
	if err := p.res.Click(ctx, next); err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}

	// Settle on the scroll position actually moving, not a fixed delay.
	return p.awaitScrollMoved(ctx, strip, before)
}

func (p *Page) awaitScrollMoved(ctx context.Context, strip resolve.Handle, before int) error {
	err := p.res.PollUntil(ctx, "scroll moved", func(c context.Context) (bool, error) {
		now, err := p.res.EvalInt(c, strip, `() => Math.round(this.scrollLeft)`)
		if err != nil {
			return false, err
		}
		return now > before, nil
	})
	if err != nil {
		return fmt.Errorf("scroll next: %w", err)
	}
	return nil
}
