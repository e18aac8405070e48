package resolve

import (
	"strings"
	"testing"
)

var allRoles = []Role{
	RolePageTitle, RoleSearchInput, RoleFiltersButton, RoleNoResults,
	RoleEventGroup, RoleEventCard, RoleEventName, RoleEventStatus,
	RoleCutoffMonth, RoleCutoffDay, RoleAgreementType, RoleViewBookings,
	RoleScrollContainer, RoleScrollNext, RoleGroupSeparator,
	RoleFilterModal, RoleFilterSave, RoleFilterOptionActive,
	RoleFilterOptionClosed, RoleFilterOptionCancelled, RoleCheckMark,
	RoleBookingModal, RoleBookingClose, RoleBookingItem,
	RoleBookingPerson, RoleBookingField, RoleBookingFieldLabel,
}

func TestDefaultRolesComplete(t *testing.T) {
	table := DefaultRoles()
	for _, role := range allRoles {
		sel, ok := table[role]
		if !ok {
			t.Errorf("role %s missing from default table", role)
			continue
		}
		if !strings.Contains(sel, "data-testid") {
			t.Errorf("role %s resolves by %q, want a data-testid selector", role, sel)
		}
	}
	if len(table) != len(allRoles) {
		t.Errorf("default table has %d entries, want %d", len(table), len(allRoles))
	}
}

func TestConfigRoleOverride(t *testing.T) {
	r := New(nil, Config{Roles: map[Role]string{
		RoleSearchInput: `input.sc-gjZUHa`,
	}})

	sel, err := r.Selector(RoleSearchInput)
	if err != nil {
		t.Fatalf("Selector: %v", err)
	}
	if sel != `input.sc-gjZUHa` {
		t.Errorf("override not applied: %q", sel)
	}

	// Other roles keep the default binding.
	sel, err = r.Selector(RoleFiltersButton)
	if err != nil {
		t.Fatalf("Selector: %v", err)
	}
	if !strings.Contains(sel, "data-testid") {
		t.Errorf("unrelated role lost default selector: %q", sel)
	}
}

func TestSelectorUnknownRole(t *testing.T) {
	r := New(nil, Config{})
	if _, err := r.Selector(Role("nonsense")); err == nil {
		t.Error("expected error for unknown role")
	}
}
