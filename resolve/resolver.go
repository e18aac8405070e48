package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// pollInterval is the cadence of condition polling inside bounded waits.
const pollInterval = 50 * time.Millisecond

// Config configures a Resolver.
type Config struct {
	// Roles overrides entries of the default role table. Only the given
	// roles are replaced.
	Roles map[Role]string

	// Timeout bounds every wait the resolver performs. Default: 10s.
	Timeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Resolver resolves semantic roles to live elements on one rod page. It holds
// no handle cache: every query is a fresh projection of the rendered page.
// One Resolver per browsing context; it is not safe for concurrent use.
type Resolver struct {
	page    *rod.Page
	roles   map[Role]string
	timeout time.Duration
	log     *slog.Logger
}

// Handle is an opaque reference to one resolved element.
type Handle struct {
	el   *rod.Element
	role Role
}

// Role reports which role the handle was resolved for.
func (h Handle) Role() Role { return h.role }

// New creates a Resolver over a rod page.
func New(page *rod.Page, cfg Config) *Resolver {
	cfg.defaults()
	roles := DefaultRoles()
	for r, sel := range cfg.Roles {
		roles[r] = sel
	}
	return &Resolver{
		page:    page,
		roles:   roles,
		timeout: cfg.Timeout,
		log:     cfg.Logger,
	}
}

// Selector returns the selector bound to a role.
func (r *Resolver) Selector(role Role) (string, error) {
	sel, ok := r.roles[role]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return sel, nil
}

// Find returns all elements currently resolving for the role, in document
// order. Zero matches is not an error.
func (r *Resolver) Find(ctx context.Context, role Role) ([]Handle, error) {
	sel, err := r.Selector(role)
	if err != nil {
		return nil, err
	}
	els, err := r.page.Context(ctx).Elements(sel)
	if err != nil {
		return nil, fmt.Errorf("resolve: find %s: %w", role, err)
	}
	return wrap(els, role), nil
}

// FindWithin is Find scoped to the subtree of a parent handle.
func (r *Resolver) FindWithin(ctx context.Context, parent Handle, role Role) ([]Handle, error) {
	sel, err := r.Selector(role)
	if err != nil {
		return nil, err
	}
	els, err := parent.el.Context(ctx).Elements(sel)
	if err != nil {
		return nil, fmt.Errorf("resolve: find %s within %s: %w", role, parent.role, err)
	}
	return wrap(els, role), nil
}

// FindFirst waits up to the bounded timeout for at least one element to
// resolve and returns the first. ErrNotFound after the wait.
func (r *Resolver) FindFirst(ctx context.Context, role Role) (Handle, error) {
	sel, err := r.Selector(role)
	if err != nil {
		return Handle{}, err
	}
	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	el, err := r.page.Context(tctx).Element(sel)
	if err != nil {
		return Handle{}, fmt.Errorf("resolve: first %s: %w", role, ErrNotFound)
	}
	return Handle{el: el, role: role}, nil
}

// FirstWithin is FindFirst scoped to a parent handle's subtree.
func (r *Resolver) FirstWithin(ctx context.Context, parent Handle, role Role) (Handle, error) {
	sel, err := r.Selector(role)
	if err != nil {
		return Handle{}, err
	}
	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	el, err := parent.el.Context(tctx).Element(sel)
	if err != nil {
		return Handle{}, fmt.Errorf("resolve: first %s within %s: %w", role, parent.role, ErrNotFound)
	}
	return Handle{el: el, role: role}, nil
}

// IsVisible reports whether the handle's element currently renders.
func (r *Resolver) IsVisible(ctx context.Context, h Handle) (bool, error) {
	vis, err := h.el.Context(ctx).Visible()
	if err != nil {
		// A detached element no longer renders.
		return false, nil
	}
	return vis, nil
}

// VisibleRole reports whether any element for the role currently renders.
// An absent element is simply not visible, never an error.
func (r *Resolver) VisibleRole(ctx context.Context, role Role) (bool, error) {
	sel, err := r.Selector(role)
	if err != nil {
		return false, err
	}
	has, el, err := r.page.Context(ctx).Has(sel)
	if err != nil || !has {
		return false, nil
	}
	vis, err := el.Context(ctx).Visible()
	if err != nil {
		return false, nil
	}
	return vis, nil
}

// VisibleWithin is VisibleRole scoped to a parent subtree.
func (r *Resolver) VisibleWithin(ctx context.Context, parent Handle, role Role) (bool, error) {
	sel, err := r.Selector(role)
	if err != nil {
		return false, err
	}
	has, el, err := parent.el.Context(ctx).Has(sel)
	if err != nil || !has {
		return false, nil
	}
	vis, err := el.Context(ctx).Visible()
	if err != nil {
		return false, nil
	}
	return vis, nil
}

// TextOf returns the rendered text of the handle's element. A text-less
// element yields the empty string.
func (r *Resolver) TextOf(ctx context.Context, h Handle) (string, error) {
	txt, err := h.el.Context(ctx).Text()
	if err != nil {
		return "", fmt.Errorf("resolve: text of %s: %w", h.role, err)
	}
	return txt, nil
}

// ChildText returns the text of the first childRole element under the handle.
// ErrNotFound when no such child resolves within the bounded wait.
func (r *Resolver) ChildText(ctx context.Context, h Handle, childRole Role) (string, error) {
	child, err := r.FirstWithin(ctx, h, childRole)
	if err != nil {
		return "", err
	}
	return r.TextOf(ctx, child)
}

// Click waits for the element to be actionable (visible and enabled) within
// the bounded wait, then clicks it once. ErrElementNotReady past the bound.
func (r *Resolver) Click(ctx context.Context, h Handle) error {
	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	el := h.el.Context(tctx)
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("resolve: click %s: %w", h.role, ErrElementNotReady)
	}
	if err := el.WaitEnabled(); err != nil {
		return fmt.Errorf("resolve: click %s: %w", h.role, ErrElementNotReady)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("resolve: click %s: %w", h.role, ErrElementNotReady)
	}
	return nil
}

// ClickRole resolves the role's first element and clicks it.
func (r *Resolver) ClickRole(ctx context.Context, role Role) error {
	h, err := r.FindFirst(ctx, role)
	if err != nil {
		return fmt.Errorf("resolve: click %s: %w", role, ErrElementNotReady)
	}
	return r.Click(ctx, h)
}

// Fill replaces the element's current value with text. The element must be
// actionable within the bounded wait.
func (r *Resolver) Fill(ctx context.Context, h Handle, text string) error {
	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	el := h.el.Context(tctx)
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("resolve: fill %s: %w", h.role, ErrElementNotReady)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("resolve: fill %s: %w", h.role, ErrElementNotReady)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("resolve: fill %s: %w", h.role, ErrElementNotReady)
	}
	return nil
}

// FillRole resolves the role's first element and fills it.
func (r *Resolver) FillRole(ctx context.Context, role Role, text string) error {
	h, err := r.FindFirst(ctx, role)
	if err != nil {
		return fmt.Errorf("resolve: fill %s: %w", role, ErrElementNotReady)
	}
	return r.Fill(ctx, h, text)
}

// WaitVisible polls until an element for the role renders. ErrElementNotReady
// past the bound.
func (r *Resolver) WaitVisible(ctx context.Context, role Role) error {
	return r.PollUntil(ctx, fmt.Sprintf("wait visible %s", role), func(c context.Context) (bool, error) {
		return r.VisibleRole(c, role)
	})
}

// WaitHidden polls until no element for the role renders.
func (r *Resolver) WaitHidden(ctx context.Context, role Role) error {
	return r.PollUntil(ctx, fmt.Sprintf("wait hidden %s", role), func(c context.Context) (bool, error) {
		vis, err := r.VisibleRole(c, role)
		return !vis, err
	})
}

// Count returns the number of elements currently resolving for the role.
func (r *Resolver) Count(ctx context.Context, role Role) (int, error) {
	hs, err := r.Find(ctx, role)
	if err != nil {
		return 0, err
	}
	return len(hs), nil
}

// WaitStableCount polls the role's element count until two consecutive polls
// agree, then returns it. This is the settle condition after search and
// filter mutations: content stability, not a guessed sleep.
func (r *Resolver) WaitStableCount(ctx context.Context, role Role) (int, error) {
	last := -1
	count := 0
	err := r.PollUntil(ctx, fmt.Sprintf("settle %s", role), func(c context.Context) (bool, error) {
		n, err := r.Count(c, role)
		if err != nil {
			return false, err
		}
		stable := n == last
		last = n
		count = n
		return stable, nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// EvalInt evaluates a JS expression against the handle's element and returns
// the integer result. The js must be an arrow function over `this`.
func (r *Resolver) EvalInt(ctx context.Context, h Handle, js string) (int, error) {
	res, err := h.el.Context(ctx).Eval(js)
	if err != nil {
		return 0, fmt.Errorf("resolve: eval on %s: %w", h.role, err)
	}
	return res.Value.Int(), nil
}

// PollUntil runs cond at pollInterval until it holds, bounded by the resolver
// timeout. The first poll is immediate.
func (r *Resolver) PollUntil(ctx context.Context, op string, cond func(context.Context) (bool, error)) error {
	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := cond(tctx)
		if err != nil {
			return fmt.Errorf("resolve: %s: %w", op, err)
		}
		if ok {
			return nil
		}
		select {
		case <-tctx.Done():
			r.log.Debug("resolve: wait bound exceeded", "op", op, "timeout", r.timeout)
			return fmt.Errorf("resolve: %s: %w", op, ErrElementNotReady)
		case <-ticker.C:
		}
	}
}

func wrap(els rod.Elements, role Role) []Handle {
	hs := make([]Handle, 0, len(els))
	for _, el := range els {
		hs = append(hs, Handle{el: el, role: role})
	}
	return hs
}
