package roominglist

import "testing"

func TestParseBookingCount(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"View Bookings (3)", 3},
		{"View Bookings (0)", 0},
		{"View Bookings (12)", 12},
		{"View Bookings", 0},
		{"", 0},
		{"(7) View Bookings", 7},
	}
	for _, c := range cases {
		if got := parseBookingCount(c.label); got != c.want {
			t.Errorf("parseBookingCount(%q) = %d, want %d", c.label, got, c.want)
		}
	}
}
