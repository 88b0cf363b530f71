package models

import "testing"

func TestHasHeaderCells(t *testing.T) {
	var rec OrderRecord
	if rec.HasHeaderCells() {
		t.Error("empty record reports header cells")
	}

	rec.HeaderCells[1] = HeaderCell{Label: "Date :"}
	if !rec.HasHeaderCells() {
		t.Error("record with a label reports no header cells")
	}

	rec.HeaderCells[1] = HeaderCell{Value: "2024-01-15"}
	if !rec.HasHeaderCells() {
		t.Error("record with a value reports no header cells")
	}
}

func TestScanResultItemCount(t *testing.T) {
	sr := ScanResult{Outcome: ScanUnreadable}
	if sr.ItemCount() != -1 {
		t.Errorf("ItemCount = %d, expected -1 without a record", sr.ItemCount())
	}

	sr = ScanResult{
		Outcome: ScanOK,
		Record:  &OrderRecord{DataRows: [][]string{{"1"}, {"2"}}},
	}
	if sr.ItemCount() != 2 {
		t.Errorf("ItemCount = %d, expected 2", sr.ItemCount())
	}
}

func TestScanOutcomeString(t *testing.T) {
	tests := []struct {
		outcome  ScanOutcome
		expected string
	}{
		{ScanOK, "ok"},
		{ScanNoTable, "no data table"},
		{ScanUnreadable, "unreadable"},
		{ScanOutcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, expected %q", tt.outcome, got, tt.expected)
		}
	}
}
