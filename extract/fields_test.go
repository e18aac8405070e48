package extract

import (
	"errors"
	"testing"
)

var bookingLabels = []string{"Phone", "Hotel ID", "Check-in", "Check-out"}

func TestFields(t *testing.T) {
	blocks := []LabeledBlock{
		{Full: "Phone: +1 555 0100", Label: "Phone:"},
		{Full: "Hotel ID: HTL-204", Label: "Hotel ID:"},
		{Full: "Check-in: 2024-03-12", Label: "Check-in:"},
		{Full: "Check-out: 2024-03-15", Label: "Check-out:"},
	}
	got, err := Fields(blocks, bookingLabels)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	want := map[string]string{
		"Phone":     "+1 555 0100",
		"Hotel ID":  "HTL-204",
		"Check-in":  "2024-03-12",
		"Check-out": "2024-03-15",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Fields[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestFieldsOrderIndependent(t *testing.T) {
	// Rendered order differs from the expected label order; association must
	// still be by label text.
	blocks := []LabeledBlock{
		{Full: "Check-out2024-03-15", Label: "Check-out"},
		{Full: "Phone+1 555 0100", Label: "Phone"},
		{Full: "Check-in2024-03-12", Label: "Check-in"},
		{Full: "Hotel IDHTL-204", Label: "Hotel ID"},
	}
	got, err := Fields(blocks, bookingLabels)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if got["Phone"] != "+1 555 0100" || got["Check-out"] != "2024-03-15" {
		t.Errorf("order-shuffled extraction mis-attributed values: %v", got)
	}
}

func TestFieldsEmptyValueSentinel(t *testing.T) {
	blocks := []LabeledBlock{
		{Full: "Phone", Label: "Phone"},
		{Full: "Hotel ID  ", Label: "Hotel ID"},
		{Full: "Check-in2024-03-12", Label: "Check-in"},
		{Full: "Check-out2024-03-15", Label: "Check-out"},
	}
	got, err := Fields(blocks, bookingLabels)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if got["Phone"] != EmptyValue {
		t.Errorf("Phone = %q, want sentinel %q", got["Phone"], EmptyValue)
	}
	if got["Hotel ID"] != EmptyValue {
		t.Errorf("Hotel ID = %q, want sentinel %q", got["Hotel ID"], EmptyValue)
	}
	for k, v := range got {
		if v == "" {
			t.Errorf("Fields[%q] is an empty string; sentinel required", k)
		}
	}
}

func TestFieldsMismatch(t *testing.T) {
	t.Run("missing label", func(t *testing.T) {
		blocks := []LabeledBlock{
			{Full: "Phone+1 555 0100", Label: "Phone"},
		}
		_, err := Fields(blocks, bookingLabels)
		if !errors.Is(err, ErrExtractionMismatch) {
			t.Errorf("err = %v, want ErrExtractionMismatch", err)
		}
	})
	t.Run("unexpected label", func(t *testing.T) {
		blocks := []LabeledBlock{
			{Full: "RoomType: Suite", Label: "RoomType:"},
		}
		_, err := Fields(blocks, bookingLabels)
		if !errors.Is(err, ErrExtractionMismatch) {
			t.Errorf("err = %v, want ErrExtractionMismatch", err)
		}
	})
	t.Run("duplicate label", func(t *testing.T) {
		blocks := []LabeledBlock{
			{Full: "Phone1", Label: "Phone"},
			{Full: "Phone2", Label: "Phone"},
			{Full: "Hotel IDx", Label: "Hotel ID"},
			{Full: "Check-inx", Label: "Check-in"},
			{Full: "Check-outx", Label: "Check-out"},
		}
		_, err := Fields(blocks, bookingLabels)
		if !errors.Is(err, ErrExtractionMismatch) {
			t.Errorf("err = %v, want ErrExtractionMismatch", err)
		}
	})
}
