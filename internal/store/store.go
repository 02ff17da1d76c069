/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package store defines the narrow persistence ports the scheduling core's
// callers depend on. The calculation engine itself performs no I/O; it only
// needs "the current collection" and upsert/remove by identifier, regardless
// of which backend delivers them.
package store

import (
	"context"

	"github.com/friendsincode/skuld_plan/internal/models"
)

// OrderStore is the production-order collection port. List returns the visible
// collection sorted ascending by start time — ordering is recomputed on every
// read, never stored. Upsert is keyed by ID with last-write-wins semantics;
// Remove of an unknown id is a no-op and reports removed=false.
type OrderStore interface {
	List(ctx context.Context) ([]models.ProductionOrder, error)
	Get(ctx context.Context, id string) (models.ProductionOrder, error)
	Upsert(ctx context.Context, order models.ProductionOrder) error
	Remove(ctx context.Context, id string) (removed bool, err error)
}

// ProductStore is the catalog port backing code lookup and description search.
type ProductStore interface {
	GetByCode(ctx context.Context, code string) (models.Product, error)
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
	Import(ctx context.Context, products []models.Product) (int, error)
}
