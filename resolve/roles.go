// Package resolve maps semantic role names onto live UI elements and exposes
// bounded-wait queries and interactions over them. Callers never see
// selectors; the full selector coupling lives in the DefaultRoles table and
// can be overridden per role to target differently rendered markup.
package resolve

import "fmt"

// Role names a semantic element of the rooming-list UI.
type Role string

const (
	RolePageTitle     Role = "page-title"
	RoleSearchInput   Role = "search-input"
	RoleFiltersButton Role = "filters-button"
	RoleNoResults     Role = "no-results"

	RoleEventGroup      Role = "event-group"
	RoleEventCard       Role = "event-card"
	RoleEventName       Role = "event-name"
	RoleEventStatus     Role = "event-status"
	RoleCutoffMonth     Role = "cutoff-month"
	RoleCutoffDay       Role = "cutoff-day"
	RoleAgreementType   Role = "agreement-type"
	RoleViewBookings    Role = "view-bookings"
	RoleScrollContainer Role = "card-scroll"
	RoleScrollNext      Role = "scroll-next"
	RoleGroupSeparator  Role = "group-separator"

	RoleFilterModal           Role = "filter-modal"
	RoleFilterSave            Role = "filter-save"
	RoleFilterOptionActive    Role = "filter-option-active"
	RoleFilterOptionClosed    Role = "filter-option-closed"
	RoleFilterOptionCancelled Role = "filter-option-cancelled"
	RoleCheckMark             Role = "check-mark"

	RoleBookingModal      Role = "booking-modal"
	RoleBookingClose      Role = "booking-close"
	RoleBookingItem       Role = "booking-item"
	RoleBookingPerson     Role = "booking-person"
	RoleBookingField      Role = "booking-field"
	RoleBookingFieldLabel Role = "booking-field-label"
)

// DefaultRoles returns the role → selector table. Resolution is by stable
// data-testid attributes; style-class coupling is deliberately absent. When a
// target UI renders without test identifiers, supply overrides through
// Config.Roles instead of editing call sites.
func DefaultRoles() map[Role]string {
	roles := map[Role]string{
		RolePageTitle:     testID(RolePageTitle),
		RoleSearchInput:   testID(RoleSearchInput),
		RoleFiltersButton: testID(RoleFiltersButton),
		RoleNoResults:     testID(RoleNoResults),

		RoleEventGroup:      testID(RoleEventGroup),
		RoleEventCard:       testID(RoleEventCard),
		RoleEventName:       testID(RoleEventName),
		RoleEventStatus:     testID(RoleEventStatus),
		RoleCutoffMonth:     testID(RoleCutoffMonth),
		RoleCutoffDay:       testID(RoleCutoffDay),
		RoleAgreementType:   testID(RoleAgreementType),
		RoleViewBookings:    testID(RoleViewBookings),
		RoleScrollContainer: testID(RoleScrollContainer),
		RoleScrollNext:      testID(RoleScrollNext),
		RoleGroupSeparator:  testID(RoleGroupSeparator),

		RoleFilterModal:           testID(RoleFilterModal),
		RoleFilterSave:            testID(RoleFilterSave),
		RoleFilterOptionActive:    testID(RoleFilterOptionActive),
		RoleFilterOptionClosed:    testID(RoleFilterOptionClosed),
		RoleFilterOptionCancelled: testID(RoleFilterOptionCancelled),
		RoleCheckMark:             testID(RoleCheckMark),

		RoleBookingModal:      testID(RoleBookingModal),
		RoleBookingClose:      testID(RoleBookingClose),
		RoleBookingItem:       testID(RoleBookingItem),
		RoleBookingPerson:     testID(RoleBookingPerson),
		RoleBookingField:      testID(RoleBookingField),
		RoleBookingFieldLabel: testID(RoleBookingFieldLabel),
	}
	return roles
}

func testID(r Role) string {
	return fmt.Sprintf(`[data-testid=%q]`, string(r))
}
