package roominglist

import (
	"regexp"
	"strconv"

	"github.com/hazyhaar/roomcheck/resolve"
)

// Entry is a live handle onto one rendered event card. Entries are read-only
// projections: nothing is cached, every read goes back to the page.
type Entry struct {
	handle resolve.Handle
}

// Handle exposes the underlying resolver handle for scoped queries.
func (e Entry) Handle() resolve.Handle { return e.handle }

// Group is a live handle onto one rendered event group section.
type Group struct {
	handle resolve.Handle
}

// Handle exposes the underlying resolver handle.
func (g Group) Handle() resolve.Handle { return g.handle }

// Summary is the per-card projection of an entry.
type Summary struct {
	DisplayName   string
	Status        Status
	CutoffMonth   string
	CutoffDay     string
	AgreementType string
	BookingCount  int
}

// Booking is one nested record under an entry's detail view. Fields hold the
// extract.EmptyValue sentinel when extraction found nothing, never "".
type Booking struct {
	PersonName string
	Phone      string
	HotelID    string
	CheckIn    string
	CheckOut   string
}

// BookingLabels is the label set of a booking detail block as rendered.
var BookingLabels = []string{"Phone", "Hotel ID", "Check-in", "Check-out"}

var bookingCountRe = regexp.MustCompile(`\((\d+)\)`)

// parseBookingCount reads the "(N)" suffix off a View Bookings control label.
// A label without the suffix counts as zero bookings.
func parseBookingCount(label string) int {
	m := bookingCountRe.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
