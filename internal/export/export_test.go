package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		ID:    "snap-abc",
		Page:  "slots",
		Query: "sort=day_of_week,start_time",
		Records: []tableview.Record{
			{"id": "1", "day_of_week": "MONDAY", "start_time": "09:00", "area": "Cat room <A>"},
			{"id": "2", "day_of_week": "TUESDAY", "start_time": "08:00"},
		},
		TakenAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("ICT", 7*3600)),
	}
}

func TestExportJSONL_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSONL(&buf, &Snapshot{Page: "pets"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (header only), got %d", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != FormatVersion || h.Type != "header" || h.Page != "pets" || h.ItemCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
	if h.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestExportJSONL_Records(t *testing.T) {
	snap := testSnapshot()
	var buf bytes.Buffer
	if err := ExportJSONL(&buf, snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.ItemCount != 2 || h.SnapshotID != "snap-abc" || h.Query != snap.Query {
		t.Errorf("header = %+v", h)
	}
	if h.Timestamp.Location() != time.UTC || !h.Timestamp.Equal(snap.TakenAt) {
		t.Errorf("timestamp = %v, want %v in UTC", h.Timestamp, snap.TakenAt)
	}

	// Records keep snapshot order.
	for i, want := range []string{"1", "2"} {
		var r struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := json.Unmarshal([]byte(lines[i+1]), &r); err != nil {
			t.Fatalf("unmarshal record %d: %v", i, err)
		}
		if r.Type != "record" || r.Data["id"] != want {
			t.Errorf("record %d = %+v", i, r)
		}
	}

	if !strings.Contains(lines[1], "<A>") {
		t.Errorf("HTML should not be escaped: %s", lines[1])
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(testSnapshot())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n := len(nonEmptyLines(string(data))); n != 3 {
		t.Errorf("lines = %d, want 3", n)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("expected trailing newline")
	}
}
