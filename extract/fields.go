package extract

import (
	"fmt"
	"strings"
)

// EmptyValue marks a field whose extraction produced nothing. It is a
// reserved sentinel so callers can tell "value missing from markup" apart
// from a legitimately empty string.
const EmptyValue = "[Empty Value]"

// ErrExtractionMismatch reports that the rendered detail blocks do not line
// up with the expected label set: an unknown label, a duplicate, or a count
// mismatch. Unmatched positions are never dropped silently.
var ErrExtractionMismatch = fmt.Errorf("extract: label/value mismatch")

// LabeledBlock is one rendered detail unit: the full text of the block and
// the text of its embedded label element.
type LabeledBlock struct {
	Full  string
	Label string
}

// Fields associates each block with its label and returns label → value.
//
// Association is by the block's own label text (a trailing ':' on the
// rendered label is tolerated), not by position, so a reordering of the
// rendered fields cannot mis-attribute values. The value is the block's full
// text with the first occurrence of the label text removed, trimmed; an
// empty result yields EmptyValue.
//
// Every expected label must appear exactly once and no block may carry an
// unexpected label, otherwise ErrExtractionMismatch is returned.
func Fields(blocks []LabeledBlock, labels []string) (map[string]string, error) {
	expected := make(map[string]string, len(labels)) // canonical → as given
	for _, l := range labels {
		expected[canonLabel(l)] = l
	}

	out := make(map[string]string, len(labels))
	for _, b := range blocks {
		key, ok := expected[canonLabel(b.Label)]
		if !ok {
			return nil, fmt.Errorf("%w: unexpected label %q", ErrExtractionMismatch, b.Label)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrExtractionMismatch, b.Label)
		}

		value := strings.TrimSpace(strings.Replace(b.Full, b.Label, "", 1))
		if value == "" {
			value = EmptyValue
		}
		out[key] = value
	}

	if len(out) != len(labels) {
		for _, l := range labels {
			if _, ok := out[l]; !ok {
				return nil, fmt.Errorf("%w: missing label %q", ErrExtractionMismatch, l)
			}
		}
	}
	return out, nil
}

func canonLabel(l string) string {
	return strings.TrimSuffix(strings.TrimSpace(l), ":")
}
