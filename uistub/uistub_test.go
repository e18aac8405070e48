package uistub

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(nil, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func fetchLists(t *testing.T, url string) []RoomingList {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d", url, resp.StatusCode)
	}
	var lists []RoomingList
	if err := json.NewDecoder(resp.Body).Decode(&lists); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return lists
}

func TestAPISortedAscendingByDefault(t *testing.T) {
	srv := newTestServer(t)
	lists := fetchLists(t, srv.URL+"/api/rooming-lists?sortBy=rfpName&sortOrder=ASC")
	if len(lists) == 0 {
		t.Fatal("no fixture rows")
	}
	names := make([]string, len(lists))
	for i, l := range lists {
		names[i] = l.RfpName
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("API output not sorted: %v", names)
	}
}

func TestAPISortDescending(t *testing.T) {
	srv := newTestServer(t)
	lists := fetchLists(t, srv.URL+"/api/rooming-lists?sortOrder=DESC")
	for i := 1; i < len(lists); i++ {
		if lists[i-1].RfpName < lists[i].RfpName {
			t.Errorf("not descending at %d: %q < %q", i, lists[i-1].RfpName, lists[i].RfpName)
		}
	}
}

func TestAPIUnsupportedSortBy(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/rooming-lists?sortBy=cutoffDay")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPageCarriesRoleTestIDs(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get /: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := string(raw)

	for _, id := range []string{
		"page-title", "search-input", "filters-button", "no-results",
		"filter-modal", "filter-save", "filter-option-active",
		"filter-option-closed", "filter-option-cancelled",
		"booking-modal", "booking-close",
	} {
		if !strings.Contains(body, `data-testid="`+id+`"`) {
			t.Errorf("page missing data-testid %q", id)
		}
	}
	if !strings.Contains(body, "Rooming List Management: Events") {
		t.Error("page missing title text")
	}
}

func TestSeedBookingCountsMatchRecords(t *testing.T) {
	// The round-trip invariant holds at the data source: the count the UI
	// renders on the button is derived from the same slice the modal lists.
	for _, l := range SeedData() {
		if len(l.Bookings) == 0 {
			t.Errorf("%s: fixture rows should carry at least one booking", l.RfpName)
		}
		for _, b := range l.Bookings {
			if b.PersonName == "" || b.Phone == "" || b.HotelID == "" || b.CheckIn == "" || b.CheckOut == "" {
				t.Errorf("%s: booking with empty field: %+v", l.RfpName, b)
			}
		}
	}
}

func TestSeedDefaultVisibleStatuses(t *testing.T) {
	// With the default {Closed} filter the fixture must show at least one
	// entry, and at least one entry of each status exists for filter checks.
	seen := map[string]int{}
	for _, l := range SeedData() {
		seen[l.Status]++
	}
	for _, st := range []string{"Active", "Closed", "Cancelled"} {
		if seen[st] == 0 {
			t.Errorf("fixture has no %s entry", st)
		}
	}
}
