package roominglist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/roomcheck/extract"
	"github.com/hazyhaar/roomcheck/resolve"
)

// DetailModal models the bookings modal of one entry. Hidden → Visible on
// OpenDetail, Visible → Hidden on Close; reads while hidden are a usage
// error, never a silent empty result.
type DetailModal struct {
	res  *resolve.Resolver
	log  *slog.Logger
	open bool
}

// BookingHandle is a live handle onto one rendered booking record.
type BookingHandle struct {
	handle resolve.Handle
}

func newDetailModal(res *resolve.Resolver, logger *slog.Logger) *DetailModal {
	return &DetailModal{res: res, log: logger}
}

// awaitOpen waits for the modal to render after the opening click.
func (m *DetailModal) awaitOpen(ctx context.Context) error {
	if err := m.res.WaitVisible(ctx, resolve.RoleBookingModal); err != nil {
		return fmt.Errorf("detail open: %w", err)
	}
	m.open = true
	return nil
}

// IsVisible reports whether the modal currently renders.
func (m *DetailModal) IsVisible(ctx context.Context) (bool, error) {
	return m.res.VisibleRole(ctx, resolve.RoleBookingModal)
}

// Bookings returns the rendered booking records in document order. A fresh
// projection on every call.
func (m *DetailModal) Bookings(ctx context.Context) ([]BookingHandle, error) {
	if !m.open {
		return nil, fmt.Errorf("detail bookings: %w", ErrPreconditionViolated)
	}
	modal, err := m.res.FindFirst(ctx, resolve.RoleBookingModal)
	if err != nil {
		return nil, fmt.Errorf("detail bookings: %w", err)
	}
	items, err := m.res.FindWithin(ctx, modal, resolve.RoleBookingItem)
	if err != nil {
		return nil, fmt.Errorf("detail bookings: %w", err)
	}
	out := make([]BookingHandle, 0, len(items))
	for _, h := range items {
		out = append(out, BookingHandle{handle: h})
	}
	return out, nil
}

// FieldsOf reads one booking record: the person name element plus the
// labeled detail blocks, associated by label text through extract.Fields.
func (m *DetailModal) FieldsOf(ctx context.Context, b BookingHandle) (Booking, error) {
	if !m.open {
		return Booking{}, fmt.Errorf("detail fields: %w", ErrPreconditionViolated)
	}

	person, err := m.res.ChildText(ctx, b.handle, resolve.RoleBookingPerson)
	if err != nil {
		return Booking{}, fmt.Errorf("detail fields person: %w", err)
	}

	fieldEls, err := m.res.FindWithin(ctx, b.handle, resolve.RoleBookingField)
	if err != nil {
		return Booking{}, fmt.Errorf("detail fields: %w", err)
	}

	blocks := make([]extract.LabeledBlock, 0, len(fieldEls))
	for _, f := range fieldEls {
		full, err := m.res.TextOf(ctx, f)
		if err != nil {
			return Booking{}, fmt.Errorf("detail fields: %w", err)
		}
		label, err := m.res.ChildText(ctx, f, resolve.RoleBookingFieldLabel)
		if err != nil {
			return Booking{}, fmt.Errorf("detail fields: %w", err)
		}
		blocks = append(blocks, extract.LabeledBlock{Full: full, Label: label})
	}

	fields, err := extract.Fields(blocks, BookingLabels)
	if err != nil {
		return Booking{}, err
	}

	return Booking{
		PersonName: strings.TrimSpace(person),
		Phone:      fields["Phone"],
		HotelID:    fields["Hotel ID"],
		CheckIn:    fields["Check-in"],
		CheckOut:   fields["Check-out"],
	}, nil
}

// Close clicks the close control and waits for the modal to stop rendering.
// Failure to close within the bound is ErrStateTransitionTimeout.
func (m *DetailModal) Close(ctx context.Context) error {
	if !m.open {
		return fmt.Errorf("detail close: %w", ErrPreconditionViolated)
	}
	modal, err := m.res.FindFirst(ctx, resolve.RoleBookingModal)
	if err != nil {
		return fmt.Errorf("detail close: %w", err)
	}
	btn, err := m.res.FirstWithin(ctx, modal, resolve.RoleBookingClose)
	if err != nil {
		return fmt.Errorf("detail close: %w", err)
	}
	if err := m.res.Click(ctx, btn); err != nil {
		return fmt.Errorf("detail close: %w", err)
	}
	if err := m.res.WaitHidden(ctx, resolve.RoleBookingModal); err != nil {
		return fmt.Errorf("detail close: modal still rendered: %w", ErrStateTransitionTimeout)
	}
	m.open = false
	return nil
}
