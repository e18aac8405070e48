package roominglist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/roomcheck/resolve"
)

// FilterModal models the status filter surface and its open → toggle → save
// lifecycle. Pending and committed selections are bookkeeping that guides
// what to click next; the rendered check marks, read through IsChecked, are
// the ground truth every verification must consult.
type FilterModal struct {
	res *resolve.Resolver
	log *slog.Logger

	open       bool
	everOpened bool
	pending    Selection
	committed  Selection
}

func newFilterModal(res *resolve.Resolver, logger *slog.Logger) *FilterModal {
	return &FilterModal{
		res:       res,
		log:       logger,
		pending:   DefaultSelection(),
		committed: DefaultSelection(),
	}
}

func optionRole(st Status) (resolve.Role, error) {
	switch st {
	case StatusActive:
		return resolve.RoleFilterOptionActive, nil
	case StatusClosed:
		return resolve.RoleFilterOptionClosed, nil
	case StatusCancelled:
		return resolve.RoleFilterOptionCancelled, nil
	}
	return "", fmt.Errorf("roominglist: no filter option for status %q", st)
}

// Open clicks the Filters button and waits for the modal to render. The
// pending selection is initialised from the rendered check marks, not from
// prior bookkeeping, so a dismissal-without-save between opens cannot
// desynchronise the model.
func (m *FilterModal) Open(ctx context.Context) error {
	if err := m.res.ClickRole(ctx, resolve.RoleFiltersButton); err != nil {
		return fmt.Errorf("filter open: %w", err)
	}
	if err := m.res.WaitVisible(ctx, resolve.RoleFilterModal); err != nil {
		return fmt.Errorf("filter open: %w", err)
	}
	m.open = true

	rendered := Selection{}
	for _, st := range Statuses() {
		checked, err := m.IsChecked(ctx, st)
		if err != nil {
			return fmt.Errorf("filter open: read %s: %w", st, err)
		}
		if checked {
			rendered[st] = true
		}
	}
	m.pending = rendered
	if !m.everOpened {
		m.committed = rendered.Clone()
		m.everOpened = true
	}
	return nil
}

// IsVisible reports whether the modal currently renders.
func (m *FilterModal) IsVisible(ctx context.Context) (bool, error) {
	return m.res.VisibleRole(ctx, resolve.RoleFilterModal)
}

// Toggle clicks the checkbox for st and flips it in the pending selection.
func (m *FilterModal) Toggle(ctx context.Context, st Status) error {
	if !m.open {
		return fmt.Errorf("filter toggle %s: %w", st, ErrPreconditionViolated)
	}
	role, err := optionRole(st)
	if err != nil {
		return err
	}
	modal, err := m.res.FindFirst(ctx, resolve.RoleFilterModal)
	if err != nil {
		return fmt.Errorf("filter toggle %s: %w", st, err)
	}
	opt, err := m.res.FirstWithin(ctx, modal, role)
	if err != nil {
		return fmt.Errorf("filter toggle %s: %w", st, err)
	}
	if err := m.res.Click(ctx, opt); err != nil {
		return fmt.Errorf("filter toggle %s: %w", st, err)
	}
	m.pending.Toggle(st)
	return nil
}

// IsChecked reads the rendered check-mark presence for st. This is a read of
// reality, independent of pending/committed bookkeeping.
func (m *FilterModal) IsChecked(ctx context.Context, st Status) (bool, error) {
	role, err := optionRole(st)
	if err != nil {
		return false, err
	}
	modal, err := m.res.FindFirst(ctx, resolve.RoleFilterModal)
	if err != nil {
		return false, fmt.Errorf("filter ischecked %s: %w", st, err)
	}
	opt, err := m.res.FirstWithin(ctx, modal, role)
	if err != nil {
		return false, fmt.Errorf("filter ischecked %s: %w", st, err)
	}
	return m.res.VisibleWithin(ctx, opt, resolve.RoleCheckMark)
}

// Save clicks the save control, commits pending, and waits for the surface
// to stop rendering. Failure to close within the bound is fatal:
// ErrStateTransitionTimeout, no retry.
func (m *FilterModal) Save(ctx context.Context) error {
	if !m.open {
		return fmt.Errorf("filter save: %w", ErrPreconditionViolated)
	}
	modal, err := m.res.FindFirst(ctx, resolve.RoleFilterModal)
	if err != nil {
		return fmt.Errorf("filter save: %w", err)
	}
	save, err := m.res.FirstWithin(ctx, modal, resolve.RoleFilterSave)
	if err != nil {
		return fmt.Errorf("filter save: %w", err)
	}
	if err := m.res.Click(ctx, save); err != nil {
		return fmt.Errorf("filter save: %w", err)
	}
	if err := m.res.WaitHidden(ctx, resolve.RoleFilterModal); err != nil {
		return fmt.Errorf("filter save: modal still rendered: %w", ErrStateTransitionTimeout)
	}
	m.committed = m.pending.Clone()
	m.open = false
	m.log.Debug("roominglist: filter committed", "selection", m.committed.String())
	return nil
}

// Pending returns a copy of the uncommitted selection.
func (m *FilterModal) Pending() Selection { return m.pending.Clone() }

// Committed returns a copy of the last saved selection.
func (m *FilterModal) Committed() Selection { return m.committed.Clone() }
