// Package verify holds the rooming-list verification scenarios. Each
// scenario drives the page model and returns the typed error of whatever
// failed; the harness decides how to record and report it.
package verify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/roomcheck/extract"
	"github.com/hazyhaar/roomcheck/listapi"
	"github.com/hazyhaar/roomcheck/resolve"
	"github.com/hazyhaar/roomcheck/roominglist"
)

// Env is what a scenario gets to work with: the page model, the resolver it
// sits on, and the listing API client.
type Env struct {
	Page *roominglist.Page
	Res  *resolve.Resolver
	API  *listapi.Client
	Log  *slog.Logger
}

// Scenario is one named verification.
type Scenario struct {
	Name string
	Run  func(ctx context.Context, env *Env) error
}

// All returns the full scenario set in execution order. Scenarios restore
// the default filter state behind themselves so order stays irrelevant.
func All() []Scenario {
	return []Scenario{
		{"page title", checkPageTitle},
		{"search and filter controls rendered", checkControlsRendered},
		{"default filter state", checkDefaultFilterState},
		{"search narrows to one entry", checkSearchNarrows},
		{"search with no match shows no-results", checkSearchNoResults},
		{"visible entries projection is stable", checkEntriesIdempotent},
		{"filter apply constrains statuses", checkFilterApply},
		{"filter selection persists across reopen", checkFilterPersists},
		{"multi-select filter", checkMultiSelect},
		{"entries follow server sort order", checkOrdering},
		{"card fields present", checkCardFields},
		{"booking count round-trip", checkBookingCounts},
		{"booking fields extracted", checkBookingFields},
		{"group separators", checkGroupSeparators},
		{"horizontal scroll", checkHorizontalScroll},
	}
}

func checkPageTitle(ctx context.Context, env *Env) error {
	title, err := env.Page.Title(ctx)
	if err != nil {
		return err
	}
	const want = "Rooming List Management: Events"
	if title != want {
		return fmt.Errorf("page title %q, want %q", title, want)
	}
	return nil
}

func checkControlsRendered(ctx context.Context, env *Env) error {
	for _, role := range []resolve.Role{resolve.RoleSearchInput, resolve.RoleFiltersButton} {
		vis, err := env.Res.VisibleRole(ctx, role)
		if err != nil {
			return err
		}
		if !vis {
			return fmt.Errorf("%s not rendered", role)
		}
	}
	return nil
}

func checkDefaultFilterState(ctx context.Context, env *Env) error {
	filters := env.Page.Filters()
	if err := filters.Open(ctx); err != nil {
		return err
	}
	want := roominglist.DefaultSelection()
	for _, st := range roominglist.Statuses() {
		checked, err := filters.IsChecked(ctx, st)
		if err != nil {
			return err
		}
		if checked != want.Has(st) {
			return fmt.Errorf("default state: %s checked=%v, want %v", st, checked, want.Has(st))
		}
	}
	return filters.Save(ctx)
}

func checkSearchNarrows(ctx context.Context, env *Env) error {
	before, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	if len(before) < 2 {
		return fmt.Errorf("need at least 2 entries before narrowing, have %d", len(before))
	}

	// Pick a visible entry and search for its full display name, which is
	// unique in the dataset.
	target, err := env.Page.SummaryOf(ctx, before[0])
	if err != nil {
		return err
	}
	if err := env.Page.Search(ctx, target.DisplayName); err != nil {
		return err
	}
	defer env.Page.Search(ctx, "")

	after, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	if len(after) != 1 {
		return fmt.Errorf("search %q: %d entries visible, want 1", target.DisplayName, len(after))
	}
	got, err := env.Page.SummaryOf(ctx, after[0])
	if err != nil {
		return err
	}
	if got.DisplayName != target.DisplayName {
		return fmt.Errorf("search %q surfaced %q", target.DisplayName, got.DisplayName)
	}

	noRes, err := env.Page.NoResultsVisible(ctx)
	if err != nil {
		return err
	}
	if noRes {
		return fmt.Errorf("no-results indicator rendered while an entry is visible")
	}
	return nil
}

func checkSearchNoResults(ctx context.Context, env *Env) error {
	if err := env.Page.Search(ctx, "zzzzzzzz"); err != nil {
		return err
	}
	defer env.Page.Search(ctx, "")

	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) != 0 {
		return fmt.Errorf("%d entries visible for a no-match query", len(entries))
	}
	noRes, err := env.Page.NoResultsVisible(ctx)
	if err != nil {
		return err
	}
	if !noRes {
		return fmt.Errorf("no-results indicator absent with zero entries")
	}
	return nil
}

func checkEntriesIdempotent(ctx context.Context, env *Env) error {
	first, err := visibleNames(ctx, env)
	if err != nil {
		return err
	}
	second, err := visibleNames(ctx, env)
	if err != nil {
		return err
	}
	if len(first) != len(second) {
		return fmt.Errorf("projection changed size without mutation: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			return fmt.Errorf("projection changed at %d: %q then %q", i, first[i], second[i])
		}
	}
	return nil
}

func checkFilterApply(ctx context.Context, env *Env) error {
	if err := applySelection(ctx, env, roominglist.Selection{roominglist.StatusCancelled: true}); err != nil {
		return err
	}
	defer applySelection(ctx, env, roominglist.DefaultSelection())

	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no Cancelled entries rendered")
	}
	for _, e := range entries {
		sum, err := env.Page.SummaryOf(ctx, e)
		if err != nil {
			return err
		}
		if sum.Status != roominglist.StatusCancelled {
			return fmt.Errorf("entry %q has status %s under a Cancelled-only filter", sum.DisplayName, sum.Status)
		}
	}
	return nil
}

func checkFilterPersists(ctx context.Context, env *Env) error {
	want := roominglist.Selection{roominglist.StatusCancelled: true}
	if err := applySelection(ctx, env, want); err != nil {
		return err
	}
	defer applySelection(ctx, env, roominglist.DefaultSelection())

	filters := env.Page.Filters()
	if err := filters.Open(ctx); err != nil {
		return err
	}
	for _, st := range roominglist.Statuses() {
		checked, err := filters.IsChecked(ctx, st)
		if err != nil {
			return err
		}
		if checked != want.Has(st) {
			return fmt.Errorf("after reopen: %s checked=%v, want %v", st, checked, want.Has(st))
		}
	}
	return filters.Save(ctx)
}

func checkMultiSelect(ctx context.Context, env *Env) error {
	want := roominglist.Selection{roominglist.StatusActive: true, roominglist.StatusCancelled: true}
	if err := applySelection(ctx, env, want); err != nil {
		return err
	}
	defer applySelection(ctx, env, roominglist.DefaultSelection())

	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		sum, err := env.Page.SummaryOf(ctx, e)
		if err != nil {
			return err
		}
		if !want.Has(sum.Status) {
			return fmt.Errorf("entry %q has status %s outside %s", sum.DisplayName, sum.Status, want)
		}
	}
	return nil
}

func checkOrdering(ctx context.Context, env *Env) error {
	records, err := env.API.List(ctx, "rfpName", "ASC")
	if err != nil {
		return err
	}
	apiNames := listapi.RfpNames(records)
	if !listapi.SortedAscending(apiNames) {
		return fmt.Errorf("endpoint default output not sorted: %v", apiNames)
	}

	// Select every status so the rendered set covers the full API response,
	// then require the exact server order — the layer must never re-sort.
	all := roominglist.Selection{
		roominglist.StatusActive:    true,
		roominglist.StatusClosed:    true,
		roominglist.StatusCancelled: true,
	}
	if err := applySelection(ctx, env, all); err != nil {
		return err
	}
	defer applySelection(ctx, env, roominglist.DefaultSelection())

	names, err := visibleNames(ctx, env)
	if err != nil {
		return err
	}
	if len(names) != len(apiNames) {
		return fmt.Errorf("%d entries rendered, API has %d", len(names), len(apiNames))
	}
	for i := range names {
		if names[i] != apiNames[i] {
			return fmt.Errorf("order diverges at %d: page %q, API %q", i, names[i], apiNames[i])
		}
	}
	return nil
}

func checkCardFields(ctx context.Context, env *Env) error {
	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries rendered")
	}
	for _, e := range entries {
		sum, err := env.Page.SummaryOf(ctx, e)
		if err != nil {
			return err
		}
		if sum.DisplayName == "" {
			return fmt.Errorf("entry with empty display name")
		}
		if sum.CutoffMonth == "" || sum.CutoffDay == "" {
			return fmt.Errorf("entry %q missing cut-off date parts", sum.DisplayName)
		}
		if sum.AgreementType == "" {
			return fmt.Errorf("entry %q missing agreement type", sum.DisplayName)
		}
		if sum.BookingCount < 0 {
			return fmt.Errorf("entry %q has negative booking count", sum.DisplayName)
		}
	}
	return nil
}

func checkBookingCounts(ctx context.Context, env *Env) error {
	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		// Re-project each round: opening and closing the modal re-renders.
		entries, err = env.Page.VisibleEntries(ctx)
		if err != nil {
			return err
		}
		if i >= len(entries) {
			break
		}
		e := entries[i]

		sum, err := env.Page.SummaryOf(ctx, e)
		if err != nil {
			return err
		}
		detail, err := env.Page.OpenDetail(ctx, e)
		if err != nil {
			return err
		}
		bookings, err := detail.Bookings(ctx)
		if err != nil {
			return err
		}
		if len(bookings) != sum.BookingCount {
			detail.Close(ctx)
			return fmt.Errorf("entry %q: button says %d bookings, modal lists %d",
				sum.DisplayName, sum.BookingCount, len(bookings))
		}
		if err := detail.Close(ctx); err != nil {
			return err
		}
	}
	return nil
}

func checkBookingFields(ctx context.Context, env *Env) error {
	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries rendered")
	}

	detail, err := env.Page.OpenDetail(ctx, entries[0])
	if err != nil {
		return err
	}
	defer detail.Close(ctx)

	bookings, err := detail.Bookings(ctx)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		rec, err := detail.FieldsOf(ctx, b)
		if err != nil {
			return err
		}
		if rec.PersonName == "" {
			return fmt.Errorf("booking with empty person name")
		}
		for field, v := range map[string]string{
			"phone": rec.Phone, "hotel id": rec.HotelID,
			"check-in": rec.CheckIn, "check-out": rec.CheckOut,
		} {
			if v == extract.EmptyValue {
				return fmt.Errorf("booking %q: %s extracted empty", rec.PersonName, field)
			}
		}
	}
	return nil
}

func checkGroupSeparators(ctx context.Context, env *Env) error {
	groups, err := env.Page.Groups(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return fmt.Errorf("no groups rendered")
	}
	for i, g := range groups {
		n, err := env.Page.SeparatorCount(ctx, g)
		if err != nil {
			return err
		}
		if n != 2 {
			return fmt.Errorf("group %d has %d separators, want 2", i, n)
		}
	}
	return nil
}

func checkHorizontalScroll(ctx context.Context, env *Env) error {
	groups, err := env.Page.Groups(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return fmt.Errorf("no groups rendered")
	}
	// A strip narrower than its viewport makes this a successful no-op;
	// whether that matters is this scenario's caller's call, and here it
	// does not.
	return env.Page.ScrollNext(ctx, groups[0])
}

// applySelection opens the filter modal and toggles options until the
// rendered state matches want, then saves. Toggling is driven by rendered
// check marks, not model bookkeeping.
func applySelection(ctx context.Context, env *Env, want roominglist.Selection) error {
	filters := env.Page.Filters()
	if err := filters.Open(ctx); err != nil {
		return err
	}
	for _, st := range roominglist.Statuses() {
		checked, err := filters.IsChecked(ctx, st)
		if err != nil {
			return err
		}
		if checked != want.Has(st) {
			if err := filters.Toggle(ctx, st); err != nil {
				return err
			}
		}
	}
	if err := filters.Save(ctx); err != nil {
		return err
	}
	// The list re-renders after a save; let the card count settle before the
	// caller projects entries.
	_, err := env.Res.WaitStableCount(ctx, resolve.RoleEventCard)
	return err
}

func visibleNames(ctx context.Context, env *Env) ([]string, error) {
	entries, err := env.Page.VisibleEntries(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		sum, err := env.Page.SummaryOf(ctx, e)
		if err != nil {
			return nil, err
		}
		names = append(names, sum.DisplayName)
	}
	return names, nil
}
