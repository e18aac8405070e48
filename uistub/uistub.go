// Package uistub is a hermetic stand-in for the rooming-list application: a
// chi router serving the JSON listing endpoint and a single-file rendition
// of the UI with stable data-testid attributes for every resolver role.
//
// It exists so the harness can be exercised end to end without the real
// frontend: the fixture implements the same observable contract (search,
// status filters with a save lifecycle, grouped cards, bookings modal,
// sorted API output).
package uistub

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

//go:embed index.html
var indexHTML []byte

// Booking is one nested booking record in the fixture dataset.
type Booking struct {
	PersonName string `json:"personName"`
	Phone      string `json:"phone"`
	HotelID    string `json:"hotelId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
}

// RoomingList is one event row in the fixture dataset.
type RoomingList struct {
	RfpName       string    `json:"rfpName"`
	EventName     string    `json:"eventName"`
	Status        string    `json:"status"`
	AgreementType string    `json:"agreementType"`
	CutoffMonth   string    `json:"cutoffMonth"`
	CutoffDay     string    `json:"cutoffDay"`
	Bookings      []Booking `json:"bookings"`
}

// SeedData returns the fixture dataset, already in ascending rfpName order —
// the server's default sort, which the harness verifies is not re-sorted
// client-side.
func SeedData() []RoomingList {
	return []RoomingList{
		{
			RfpName: "ACL Headliner Suites", EventName: "Austin City Limits",
			Status: "Closed", AgreementType: "Corporate", CutoffMonth: "Oct", CutoffDay: "15",
			Bookings: []Booking{
				{PersonName: "Maya Reyes", Phone: "+1 512 555 0134", HotelID: "HTL-204", CheckIn: "2024-10-02", CheckOut: "2024-10-07"},
				{PersonName: "Jonas Pike", Phone: "+1 512 555 0188", HotelID: "HTL-204", CheckIn: "2024-10-03", CheckOut: "2024-10-06"},
				{PersonName: "Aicha Diallo", Phone: "+1 512 555 0117", HotelID: "HTL-209", CheckIn: "2024-10-02", CheckOut: "2024-10-08"},
			},
		},
		{
			RfpName: "ACL Security Personnel", EventName: "Austin City Limits",
			Status: "Closed", AgreementType: "Staffing", CutoffMonth: "Oct", CutoffDay: "1",
			Bookings: []Booking{
				{PersonName: "Dmitri Volkov", Phone: "+1 512 555 0221", HotelID: "HTL-311", CheckIn: "2024-09-30", CheckOut: "2024-10-09"},
				{PersonName: "Lena Ortiz", Phone: "+1 512 555 0265", HotelID: "HTL-311", CheckIn: "2024-09-30", CheckOut: "2024-10-09"},
			},
		},
		{
			RfpName: "Ultra Artist Management", EventName: "Ultra Music Festival",
			Status: "Closed", AgreementType: "Artist", CutoffMonth: "Mar", CutoffDay: "1",
			Bookings: []Booking{
				{PersonName: "Sofia Brandt", Phone: "+1 305 555 0142", HotelID: "HTL-501", CheckIn: "2024-03-20", CheckOut: "2024-03-25"},
				{PersonName: "Theo Marchetti", Phone: "+1 305 555 0175", HotelID: "HTL-502", CheckIn: "2024-03-21", CheckOut: "2024-03-24"},
			},
		},
		{
			RfpName: "Ultra Crew Housing", EventName: "Ultra Music Festival",
			Status: "Cancelled", AgreementType: "Crew", CutoffMonth: "Mar", CutoffDay: "5",
			Bookings: []Booking{
				{PersonName: "Pat Nakamura", Phone: "+1 305 555 0230", HotelID: "HTL-488", CheckIn: "2024-03-19", CheckOut: "2024-03-26"},
				{PersonName: "Iris Calloway", Phone: "+1 305 555 0244", HotelID: "HTL-488", CheckIn: "2024-03-19", CheckOut: "2024-03-26"},
			},
		},
		{
			RfpName: "Ultra DJ Accommodations", EventName: "Ultra Music Festival",
			Status: "Active", AgreementType: "Artist", CutoffMonth: "Mar", CutoffDay: "10",
			Bookings: []Booking{
				{PersonName: "Kelis Fontaine", Phone: "+1 305 555 0301", HotelID: "HTL-515", CheckIn: "2024-03-22", CheckOut: "2024-03-25"},
				{PersonName: "Marco Silva", Phone: "+1 305 555 0333", HotelID: "HTL-515", CheckIn: "2024-03-22", CheckOut: "2024-03-26"},
				{PersonName: "Yuki Tanabe", Phone: "+1 305 555 0359", HotelID: "HTL-516", CheckIn: "2024-03-23", CheckOut: "2024-03-25"},
			},
		},
		{
			RfpName: "Ultra VIP Experience", EventName: "Ultra Music Festival",
			Status: "Closed", AgreementType: "VIP", CutoffMonth: "Mar", CutoffDay: "12",
			Bookings: []Booking{
				{PersonName: "Harriet Boone", Phone: "+1 305 555 0410", HotelID: "HTL-520", CheckIn: "2024-03-21", CheckOut: "2024-03-27"},
			},
		},
	}
}

// Server serves the fixture UI and API.
type Server struct {
	data []RoomingList
	log  *slog.Logger
}

// New creates a Server over the given dataset. nil data = SeedData.
func New(data []RoomingList, logger *slog.Logger) *Server {
	if data == nil {
		data = SeedData()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{data: data, log: logger}
}

// Router builds the chi router: the UI page at / and the listing API at
// /api/rooming-lists with sortBy/sortOrder query parameters.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})

	r.Get("/api/rooming-lists", func(w http.ResponseWriter, req *http.Request) {
		sortBy := req.URL.Query().Get("sortBy")
		sortOrder := req.URL.Query().Get("sortOrder")
		if sortBy == "" {
			sortBy = "rfpName"
		}
		if sortBy != "rfpName" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported sortBy: " + sortBy})
			return
		}

		out := make([]RoomingList, len(s.data))
		copy(out, s.data)
		sort.Slice(out, func(i, j int) bool {
			if sortOrder == "DESC" {
				return out[i].RfpName > out[j].RfpName
			}
			return out[i].RfpName < out[j].RfpName
		})
		writeJSON(w, http.StatusOK, out)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
