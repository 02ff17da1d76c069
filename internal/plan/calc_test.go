/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package plan

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/friendsincode/skuld_plan/internal/models"
)

func testCalculator(now time.Time) Calculator {
	seq := 0
	return Calculator{
		Now: func() time.Time { return now },
		NewID: func() string {
			seq++
			return fmt.Sprintf("order-%d", seq)
		},
	}
}

func TestComputeEndToEndScenario(t *testing.T) {
	now := time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC)
	calc := testCalculator(now)

	order := calc.Compute(models.ProductionInput{
		ProductCode:       "1001",
		Product:           "Filme X",
		StartTime:         "08:00",
		Speed:             150,
		SimultaneousCoils: 2,
		AvgLength:         2000,
		TotalCoils:        20,
		PalletChanges:     4,
		PlannedQuantity:   5000,
	})

	wantRun := (2000.0 * 20) / (150.0 * 2)
	if math.Abs(order.RunMinutes-wantRun) > 1e-9 {
		t.Errorf("RunMinutes = %v, want %v", order.RunMinutes, wantRun)
	}
	if order.SetupCount != 10 {
		t.Errorf("SetupCount = %d, want 10", order.SetupCount)
	}
	if order.SetupMinutes != 100 {
		t.Errorf("SetupMinutes = %v, want 100", order.SetupMinutes)
	}
	if order.PalletMinutes != 12 {
		t.Errorf("PalletMinutes = %v, want 12", order.PalletMinutes)
	}
	if math.Abs(order.TotalMinutes-245.3333333333) > 1e-6 {
		t.Errorf("TotalMinutes = %v, want ~245.33", order.TotalMinutes)
	}

	wantStart := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)
	if !order.StartsAt.Equal(wantStart) {
		t.Errorf("StartsAt = %v, want %v", order.StartsAt, wantStart)
	}
	if order.EndsAt.Hour() != 12 || order.EndsAt.Minute() != 5 {
		t.Errorf("EndsAt = %v, want ~12:05 same day", order.EndsAt)
	}
	if order.EndsAt.Day() != 12 {
		t.Errorf("EndsAt crossed the day boundary: %v", order.EndsAt)
	}
}

func TestComputeDeterministicExceptID(t *testing.T) {
	now := time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC)
	calc := testCalculator(now)
	in := models.ProductionInput{
		Product: "Filme X", StartTime: "09:15",
		Speed: 120, SimultaneousCoils: 3, AvgLength: 1500, TotalCoils: 9,
		PalletChanges: 2, PlannedQuantity: 300,
	}

	a := calc.Compute(in)
	b := calc.Compute(in)
	if a.ID == b.ID {
		t.Fatal("expected distinct identifiers per compute")
	}
	b.ID = a.ID
	if a != b {
		t.Errorf("derived fields diverged:\n%+v\n%+v", a, b)
	}
}

func TestComputeDurationDecomposition(t *testing.T) {
	now := time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC)
	calc := testCalculator(now)

	inputs := []models.ProductionInput{
		{Speed: 150, SimultaneousCoils: 2, AvgLength: 2000, TotalCoils: 20, PalletChanges: 4},
		{Speed: 0, SimultaneousCoils: 0, AvgLength: 100, TotalCoils: 10},
		{Speed: 77.5, SimultaneousCoils: 3, AvgLength: 1234.5, TotalCoils: 7, PalletChanges: 1},
		{},
	}
	for _, in := range inputs {
		order := calc.Compute(in)
		sum := order.RunMinutes + order.SetupMinutes + order.PalletMinutes
		if math.Abs(order.TotalMinutes-sum) > 1e-9 {
			t.Errorf("input %+v: TotalMinutes %v != sum of parts %v", in, order.TotalMinutes, sum)
		}
	}
}

func TestComputeTimestampConsistency(t *testing.T) {
	now := time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC)
	calc := testCalculator(now)

	order := calc.Compute(models.ProductionInput{
		StartTime: "10:00",
		Speed:     90, SimultaneousCoils: 2, AvgLength: 800, TotalCoils: 13, PalletChanges: 5,
	})
	want := minutesToDuration(order.TotalMinutes)
	if got := order.EndsAt.Sub(order.StartsAt); got != want {
		t.Errorf("EndsAt - StartsAt = %v, want %v", got, want)
	}
}

func TestComputeZeroGuard(t *testing.T) {
	now := time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC)
	calc := testCalculator(now)

	order := calc.Compute(models.ProductionInput{
		Speed: 0, SimultaneousCoils: 0, AvgLength: 100, TotalCoils: 10,
	})
	if order.RunMinutes != 1000 {
		t.Errorf("RunMinutes = %v, want 1000 (zero rate/capacity degrade to 1)", order.RunMinutes)
	}
	if order.SetupCount != 10 {
		t.Errorf("SetupCount = %d, want 10", order.SetupCount)
	}
	if order.SetupMinutes != 100 {
		t.Errorf("SetupMinutes = %v, want 100", order.SetupMinutes)
	}
	if math.IsNaN(order.TotalMinutes) || math.IsInf(order.TotalMinutes, 0) || order.TotalMinutes < 0 {
		t.Errorf("TotalMinutes not finite non-negative: %v", order.TotalMinutes)
	}
}

func TestComputeSetupRounding(t *testing.T) {
	now := time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC)
	calc := testCalculator(now)

	order := calc.Compute(models.ProductionInput{
		Speed: 100, SimultaneousCoils: 3, AvgLength: 500, TotalCoils: 20,
	})
	if order.SetupCount != 7 {
		t.Errorf("SetupCount = %d, want ceil(20/3) = 7", order.SetupCount)
	}
}

func TestComputeMalformedStartTimeFallsBackToClock(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 37, 0, 0, time.UTC)
	calc := testCalculator(now)

	for _, raw := range []string{"", "abc", "8", "8:15:30", "aa:bb", "08-15"} {
		order := calc.Compute(models.ProductionInput{StartTime: raw})
		if order.StartsAt.Hour() != 14 || order.StartsAt.Minute() != 37 {
			t.Errorf("start %q: resolved %v, want current time of day 14:37", raw, order.StartsAt)
		}
	}
}

func TestComputeUsesTodayInClockLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, 7, 1, 22, 10, 0, 0, loc)
	calc := testCalculator(now)

	order := calc.Compute(models.ProductionInput{StartTime: "06:45"})
	want := time.Date(2026, 7, 1, 6, 45, 0, 0, loc)
	if !order.StartsAt.Equal(want) {
		t.Errorf("StartsAt = %v, want %v", order.StartsAt, want)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		raw        string
		wantHour   int
		wantMinute int
		wantOK     bool
	}{
		{"08:00", 8, 0, true},
		{"23:59", 23, 59, true},
		{"7:5", 7, 5, true},
		{" 07 : 30 ", 7, 30, true},
		{"", 0, 0, false},
		{"08", 0, 0, false},
		{"08:00:00", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"08:xx", 0, 0, false},
	}
	for _, tt := range tests {
		h, m, ok := parseClock(tt.raw)
		if ok != tt.wantOK || h != tt.wantHour || m != tt.wantMinute {
			t.Errorf("parseClock(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.raw, h, m, ok, tt.wantHour, tt.wantMinute, tt.wantOK)
		}
	}
}

func TestFiniteOrZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{42.5, 42.5},
		{0, 0},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := finiteOrZero(tt.in); got != tt.want {
			t.Errorf("finiteOrZero(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
