package format

import (
	"testing"
	"time"
)

func TestCurrencyVND(t *testing.T) {
	tests := map[int64]string{
		400000:  "400.000₫",
		1234567: "1.234.567₫",
		999:     "999₫",
	}
	for in, want := range tests {
		if got := Currency(in, "VND", "vi"); got != want {
			t.Errorf("Currency(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestNumberFallsBackToVietnamese(t *testing.T) {
	if got := Number(3200000, "not a tag!"); got != "3.200.000" {
		t.Fatalf("expected vi grouping, got %q", got)
	}
	if got := Number(3200000, "en"); got != "3,200,000" {
		t.Fatalf("expected en grouping, got %q", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := Date(d, "vi"); got != "5/1/2025" {
		t.Fatalf("expected 5/1/2025, got %q", got)
	}
	if got := Date(d, "en"); got != "Jan 5, 2025" {
		t.Fatalf("expected Jan 5, 2025, got %q", got)
	}
	if got := Date(time.Time{}, "vi"); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
	if got := ISODate(d); got != "2025-01-05" {
		t.Fatalf("expected ISO date, got %q", got)
	}
}

func TestRating(t *testing.T) {
	if got := Rating(4.5); got != "4.5" {
		t.Fatalf("expected 4.5, got %q", got)
	}
	if got := Rating(5); got != "5.0" {
		t.Fatalf("expected 5.0, got %q", got)
	}
}
