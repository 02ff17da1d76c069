/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// RoleName enumerates operator roles.
type RoleName string

const (
	RoleAdmin    RoleName = "admin"
	RolePlanner  RoleName = "planner"
	RoleObserver RoleName = "observer"
)

// User represents an authenticated operator account.
type User struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	Role      RoleName `gorm:"type:varchar(16)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is one entry of the product catalog used for code lookup
// and description autocomplete on the order form.
type Product struct {
	Code        string `gorm:"primaryKey;type:varchar(32)"`
	Description string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductionInput carries the raw, user-supplied order parameters.
// It exists only transiently between form submission and calculation;
// absent or unparseable numeric fields decode to zero.
type ProductionInput struct {
	ProductCode       string  `json:"product_code"`
	Product           string  `json:"product"`
	StartTime         string  `json:"start_time"` // "HH:mm", local time of day
	Speed             float64 `json:"speed"`      // metres per minute
	SimultaneousCoils int     `json:"simultaneous_coils"`
	AvgLength         float64 `json:"avg_length"` // metres per coil
	TotalCoils        int     `json:"total_coils"`
	PalletChanges     int     `json:"pallet_changes"`
	PlannedQuantity   int     `json:"planned_quantity"`
}

// ProductionOrder is one planned production run with computed schedule fields.
// ID is assigned once at creation and is the sole key for update and delete.
// Every derived field is recomputed from scratch on edit; there are no
// partial updates.
type ProductionOrder struct {
	ID                string `gorm:"type:uuid;primaryKey" json:"id"`
	ProductCode       string `gorm:"type:varchar(32);index" json:"product_code"`
	Product           string `gorm:"index" json:"product"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	Speed             float64   `json:"speed"`
	SimultaneousCoils int       `json:"simultaneous_coils"`
	AvgLength         float64   `json:"avg_length"`
	TotalCoils        int       `json:"total_coils"`
	PalletChanges     int       `json:"pallet_changes"`
	PlannedQuantity   int       `json:"planned_quantity"`

	// Derived schedule fields, all finite and non-negative.
	SetupCount    int     `json:"setup_count"`
	SetupMinutes  float64 `json:"setup_minutes"`
	RunMinutes    float64 `json:"run_minutes"`
	PalletMinutes float64 `json:"pallet_minutes"`
	TotalMinutes  float64 `json:"total_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
