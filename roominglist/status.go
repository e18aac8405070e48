package roominglist

import (
	"fmt"
	"sort"
	"strings"
)

// Status is one of the three event lifecycle states the UI filters by.
type Status string

const (
	StatusActive    Status = "Active"
	StatusClosed    Status = "Closed"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists all filterable statuses in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusClosed, StatusCancelled}
}

// ParseStatus validates a rendered status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(s)) {
	case StatusActive:
		return StatusActive, nil
	case StatusClosed:
		return StatusClosed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("roominglist: unknown status %q", s)
}

// Selection is a set of statuses constraining the visible entries.
type Selection map[Status]bool

// DefaultSelection is the declared initial filter state of the UI: only
// Closed events visible. A constant of the model, not something inferred
// from markup at runtime.
func DefaultSelection() Selection {
	return Selection{StatusClosed: true}
}

// Has reports membership.
func (s Selection) Has(st Status) bool { return s[st] }

// Toggle flips membership of st.
func (s Selection) Toggle(st Status) {
	if s[st] {
		delete(s, st)
	} else {
		s[st] = true
	}
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for st, ok := range s {
		if ok {
			out[st] = true
		}
	}
	return out
}

// Equal reports set equality.
func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for st := range s {
		if !other[st] {
			return false
		}
	}
	return true
}

func (s Selection) String() string {
	names := make([]string, 0, len(s))
	for st := range s {
		names = append(names, string(st))
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ",") + "}"
}
