package convert

import (
	"strings"
	"testing"
	"time"
)

func TestReaderReadAll(t *testing.T) {
	input := `Date,Type,Description,Amount
2023-01-05,DIV,ABC - dividend,10.00
2023-01-06,BUY,ABC - Bought 2.5 shares,50.00,settled,CAD
short,row
2023-01-07,SELL,KILO.B - Sold 5 shares,25.00
notadate,FEE,management fee,-1.00
`
	rows, skips, err := NewReader("activity.csv", strings.NewReader(input), "").ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", len(skips))
	}
	for i, s := range skips {
		if s.Skip != SkipMalformedRow {
			t.Errorf("skip %d: reason %v, want %v", i, s.Skip, SkipMalformedRow)
		}
		if !strings.Contains(s.Reason, "activity.csv") {
			t.Errorf("skip %d: warning does not name the source: %q", i, s.Reason)
		}
	}

	first := rows[0]
	if !first.Date.Equal(time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date %s, want 2023-01-05", first.Date)
	}
	if first.Type != Dividend || first.RawType != "DIV" {
		t.Errorf("type %q/%q, want DIV", first.Type, first.RawType)
	}
	if first.Description != "ABC - dividend" || first.Amount != "10.00" {
		t.Errorf("unexpected row content: %s", first)
	}

	// extra trailing fields ignored
	if rows[1].Amount != "50.00" {
		t.Errorf("row with trailing fields: amount %q, want 50.00", rows[1].Amount)
	}
}

func TestReaderHeaderAlwaysSkipped(t *testing.T) {
	// even a header that looks like data is dropped
	input := "2023-01-05,DIV,ABC - dividend,10.00\n2023-01-06,DIV,DEF - dividend,3.00\n"
	rows, skips, err := NewReader("x.csv", strings.NewReader(input), "").ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if len(rows) != 1 || rows[0].Description != "DEF - dividend" {
		t.Fatalf("expected only the second line as data, got %v", rows)
	}
}

func TestReaderAlternateDateLayout(t *testing.T) {
	input := "Date,Type,Description,Amount\n01/06/2023,DIV,ABC - dividend,2.00\n"
	rows, skips, err := NewReader("x.csv", strings.NewReader(input), "01/02/2006").ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if len(rows) != 1 || !rows[0].Date.Equal(time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2023-01-06, got %v", rows)
	}
}

func TestReaderDiscoversDateLayout(t *testing.T) {
	// reader configured for ISO, rows use slashes; layout discovery kicks in
	input := "Date,Type,Description,Amount\n2023/01/06,DIV,ABC - dividend,2.00\n2023/01/07,DIV,ABC - dividend,3.00\n"
	rows, skips, err := NewReader("x.csv", strings.NewReader(input), "").ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if len(rows) != 2 || !rows[0].Date.Equal(time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected discovered layout to parse 2023/01/06, got %v", rows)
	}
}

func TestReaderEmptyInput(t *testing.T) {
	rows, skips, err := NewReader("x.csv", strings.NewReader(""), "").ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 || len(skips) != 0 {
		t.Fatalf("expected nothing, got %d rows, %d skips", len(rows), len(skips))
	}
}
