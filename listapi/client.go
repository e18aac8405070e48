// Package listapi is a read-only client for the rooming-lists HTTP endpoint.
// The page model's ordering invariant is checked against this endpoint's
// default-sorted output.
package listapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// Record is one rooming-list row as the API returns it. Only the fields the
// harness verifies are decoded; unknown fields are ignored.
type Record struct {
	RfpName       string `json:"rfpName"`
	EventName     string `json:"eventName"`
	Status        string `json:"status"`
	AgreementType string `json:"agreementType"`
}

// Client queries the listing endpoint.
type Client struct {
	// BaseURL is the endpoint URL, e.g. "http://localhost:4003/api/rooming-lists".
	BaseURL string

	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// List fetches records sorted by sortBy/sortOrder. Empty values omit the
// query parameter and yield the server's default order.
func (c *Client) List(ctx context.Context, sortBy, sortOrder string) ([]Record, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("listapi: parse base url: %w", err)
	}
	q := u.Query()
	if sortBy != "" {
		q.Set("sortBy", sortBy)
	}
	if sortOrder != "" {
		q.Set("sortOrder", sortOrder)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("listapi: build request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("listapi: get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("listapi: get %s: status %d: %s", u, resp.StatusCode, body)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("listapi: decode: %w", err)
	}
	return records, nil
}

// RfpNames projects the rfpName column.
func RfpNames(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.RfpName
	}
	return names
}

// SortedAscending reports whether names are already in ascending lexical
// order, i.e. the server sorted them rather than the caller.
func SortedAscending(names []string) bool {
	return sort.StringsAreSorted(names)
}
