package listapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hazyhaar/roomcheck/uistub"
)

func TestListAgainstFixture(t *testing.T) {
	srv := httptest.NewServer(uistub.New(nil, nil).Router())
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/api/rooming-lists"}
	records, err := c.List(context.Background(), "rfpName", "ASC")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("no records")
	}

	names := RfpNames(records)
	if !SortedAscending(names) {
		t.Errorf("names not sorted: %v", names)
	}
	for _, r := range records {
		if r.RfpName == "" {
			t.Error("record with empty rfpName")
		}
	}
}

func TestListBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	if _, err := c.List(context.Background(), "rfpName", "ASC"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestSortedAscending(t *testing.T) {
	if !SortedAscending([]string{"ACL Headliner Suites", "Ultra Crew Housing"}) {
		t.Error("sorted input reported unsorted")
	}
	if SortedAscending([]string{"b", "a"}) {
		t.Error("unsorted input reported sorted")
	}
	if !SortedAscending(nil) {
		t.Error("empty input is trivially sorted")
	}
}

func TestProbeRendered(t *testing.T) {
	t.Run("rendered page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html><body><main>` + strings.Repeat("rooming list content ", 10) + `</main></body></html>`))
		}))
		defer srv.Close()
		ok, err := ProbeRendered(context.Background(), nil, srv.URL)
		if err != nil {
			t.Fatalf("ProbeRendered: %v", err)
		}
		if !ok {
			t.Error("content-rich page reported as shell")
		}
	})

	t.Run("spa shell", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html><body><div id="root"></div><script src="/main.js">` +
				strings.Repeat("var x=1;", 100) + `</script></body></html>`))
		}))
		defer srv.Close()
		ok, err := ProbeRendered(context.Background(), nil, srv.URL)
		if err != nil {
			t.Fatalf("ProbeRendered: %v", err)
		}
		if ok {
			t.Error("script shell reported as rendered")
		}
	})
}
