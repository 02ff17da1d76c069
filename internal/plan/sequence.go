/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package plan

import (
	"math"
	"sort"

	"github.com/friendsincode/skuld_plan/internal/models"
)

// Apply inserts or replaces one computed order and returns the collection
// re-sorted ascending by start time. When editID names an existing order that
// entry is overwritten in place with its identity and creation time preserved;
// otherwise the computed order is appended as new.
func Apply(items []models.ProductionOrder, computed models.ProductionOrder, editID string) []models.ProductionOrder {
	next := make([]models.ProductionOrder, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if editID != "" && it.ID == editID {
			computed.ID = it.ID
			computed.CreatedAt = it.CreatedAt
			next = append(next, computed)
			replaced = true
			continue
		}
		next = append(next, it)
	}
	if !replaced {
		next = append(next, computed)
	}
	SortByStart(next)
	return next
}

// SortByStart orders the collection ascending by start time. The sort is
// stable: orders with equal start times keep their relative order.
func SortByStart(items []models.ProductionOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartsAt.Before(items[j].StartsAt)
	})
}

// Remove deletes the order with the given id. Unknown ids are a no-op so the
// storage layer stays idempotent under retries.
func Remove(items []models.ProductionOrder, id string) []models.ProductionOrder {
	next := items[:0:0]
	for _, it := range items {
		if it.ID == id {
			continue
		}
		next = append(next, it)
	}
	return next
}

// SuggestedStart derives the next order's suggested start of day from the last
// item of the collection: its end time formatted "HH:mm". The collection is
// re-sorted after every mutation, so the last item is the latest-starting
// order. An empty collection yields "" (meaning "use the current time").
func SuggestedStart(items []models.ProductionOrder) string {
	if len(items) == 0 {
		return ""
	}
	return FormatTime(items[len(items)-1].EndsAt)
}

// Summary aggregates the visible collection for the dashboard cards.
type Summary struct {
	Orders          int     `json:"orders"`
	TotalCoils      int     `json:"total_coils"`
	TotalMinutes    float64 `json:"total_minutes"`
	PlannedQuantity int     `json:"planned_quantity"`
	AvgSpeed        int     `json:"avg_speed"`
}

// Summarize reduces the collection to its dashboard totals. Average speed is
// rounded to the nearest integer and zero for an empty collection.
func Summarize(items []models.ProductionOrder) Summary {
	s := Summary{Orders: len(items)}
	if len(items) == 0 {
		return s
	}
	speedSum := 0.0
	for _, it := range items {
		s.TotalCoils += it.TotalCoils
		s.TotalMinutes += it.TotalMinutes
		s.PlannedQuantity += it.PlannedQuantity
		speedSum += it.Speed
	}
	s.AvgSpeed = int(math.Round(speedSum / float64(len(items))))
	return s
}
