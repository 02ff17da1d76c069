package plan

import (
	"math"
	"testing"
	"time"
)

func TestFormatTimeAndDate(t *testing.T) {
	at := time.Date(2026, 3, 5, 8, 7, 59, 0, time.UTC)
	if got := FormatTime(at); got != "08:07" {
		t.Errorf("FormatTime = %q, want 08:07", got)
	}
	if got := FormatDate(at); got != "05/03" {
		t.Errorf("FormatDate = %q, want 05/03", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "0h 0m"},
		{59.9, "0h 59m"},
		{60, "1h 0m"},
		{245.33, "4h 5m"},
		{1441, "24h 1m"},
		{-5, "0h 0m"},
		{math.NaN(), "0h 0m"},
		{math.Inf(1), "0h 0m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
