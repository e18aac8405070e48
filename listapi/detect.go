package listapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// minRenderedText is the visible-text floor below which a page is treated as
// an SPA shell that only renders under a browser.
const minRenderedText = 64

// ProbeRendered fetches pageURL over plain HTTP and reports whether the
// response already contains rendered content. A false result means the page
// is a script shell and every check must go through the browser; the CLI
// uses this to fail fast with a clear message instead of timing out on
// selectors that will never resolve.
func ProbeRendered(ctx context.Context, client *http.Client, pageURL string) (bool, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return false, fmt.Errorf("listapi: probe request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("listapi: probe %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("listapi: probe %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Errorf("listapi: probe parse: %w", err)
	}
	return visibleTextLen(doc) >= minRenderedText, nil
}

// visibleTextLen sums non-whitespace text bytes outside script and style
// subtrees.
func visibleTextLen(n *html.Node) int {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return 0
	}
	total := 0
	if n.Type == html.TextNode {
		for _, r := range n.Data {
			if !strings.ContainsRune(" \t\n\r", r) {
				total++
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += visibleTextLen(c)
	}
	return total
}
