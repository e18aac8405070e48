// Package extract normalises raw rendered text and splits composite
// label+value detail blocks into structured fields.
//
// The package is pure string work: it never touches the browser. Callers
// capture text through the resolver and hand it over here.
package extract

import "strings"

// Clean strips the decorative bracket wrapping from a rendered event name:
// exactly one leading '[' and one trailing ']' when present, then surrounding
// whitespace. It is idempotent. A missing text node maps to the empty string
// at the resolver boundary, so Clean never sees a nil.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") {
		s = s[1:]
	}
	if strings.HasSuffix(s, "]") {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}
