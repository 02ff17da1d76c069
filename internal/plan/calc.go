/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package plan holds the production-schedule calculation core: the pure
// Calculator that turns raw order parameters into a fully computed schedule
// record, and the sequencing policy that chains records into a timeline.
// It depends on nothing but the shared record schema.
package plan

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/friendsincode/skuld_plan/internal/models"
)

// Fixed per-operation costs of the winding line, in minutes.
const (
	SetupMinutesPerCycle   = 10
	PalletMinutesPerChange = 3
)

// Calculator derives a full ProductionOrder from raw order parameters.
// It never fails: zero or negative rate and capacity inputs degrade to 1,
// unparseable start times fall back to the current wall clock, and
// non-finite intermediate results clamp to zero.
//
// The clock and identifier source are injected so calculations stay
// deterministic under test; NewID is invoked only on creation — callers
// substitute the original identifier back in when recomputing an edit.
type Calculator struct {
	Now   func() time.Time
	NewID func() string
}

// NewCalculator returns a Calculator backed by the wall clock and random UUIDs.
func NewCalculator() Calculator {
	return Calculator{Now: time.Now, NewID: uuid.NewString}
}

// Compute maps one input to one computed order. Pure and total.
func (c Calculator) Compute(in models.ProductionInput) models.ProductionOrder {
	safeSpeed := in.Speed
	if safeSpeed <= 0 {
		safeSpeed = 1
	}
	safeCoils := in.SimultaneousCoils
	if safeCoils <= 0 {
		safeCoils = 1
	}

	runMinutes := finiteOrZero((in.AvgLength * float64(in.TotalCoils)) / (safeSpeed * float64(safeCoils)))

	// Partial batches still need a full changeover.
	setupCount := int(math.Ceil(float64(in.TotalCoils) / float64(safeCoils)))
	setupMinutes := finiteOrZero(float64(setupCount) * SetupMinutesPerCycle)
	palletMinutes := finiteOrZero(float64(in.PalletChanges) * PalletMinutesPerChange)

	totalMinutes := finiteOrZero(runMinutes + setupMinutes + palletMinutes)

	now := c.Now()
	startsAt := resolveStart(in.StartTime, now)
	endsAt := startsAt.Add(minutesToDuration(totalMinutes))

	return models.ProductionOrder{
		ID:                c.NewID(),
		ProductCode:       in.ProductCode,
		Product:           in.Product,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		Speed:             in.Speed,
		SimultaneousCoils: in.SimultaneousCoils,
		AvgLength:         in.AvgLength,
		TotalCoils:        in.TotalCoils,
		PalletChanges:     in.PalletChanges,
		PlannedQuantity:   in.PlannedQuantity,
		SetupCount:        setupCount,
		SetupMinutes:      setupMinutes,
		RunMinutes:        runMinutes,
		PalletMinutes:     palletMinutes,
		TotalMinutes:      totalMinutes,
	}
}

// resolveStart combines the "HH:mm" time of day with today's date in the
// clock's location. Malformed input falls back to the current time of day.
func resolveStart(clock string, now time.Time) time.Time {
	hour, minute := now.Hour(), now.Minute()
	if h, m, ok := parseClock(clock); ok {
		hour, minute = h, m
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

// parseClock accepts exactly two numeric components separated by a colon.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// finiteOrZero is the single guard applied to every derived minute quantity:
// NaN, infinite and negative values collapse to 0.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func minutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}
