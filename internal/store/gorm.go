/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/friendsincode/skuld_plan/internal/models"
)

// GormOrderStore persists orders through gorm; the dialector decides whether
// that means an embedded sqlite file or a networked document collection.
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore wraps a gorm connection.
func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// List returns all orders sorted ascending by start time. Creation time
// breaks ties so equal start times keep their insertion order.
func (s *GormOrderStore) List(ctx context.Context) ([]models.ProductionOrder, error) {
	var orders []models.ProductionOrder
	err := s.db.WithContext(ctx).
		Order("starts_at asc").
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

// Get fetches one order by id.
func (s *GormOrderStore) Get(ctx context.Context, id string) (models.ProductionOrder, error) {
	var order models.ProductionOrder
	err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	return order, err
}

// Upsert writes the full record keyed by ID, overwriting every field of an
// existing row. Last write wins at the record level.
func (s *GormOrderStore) Upsert(ctx context.Context, order models.ProductionOrder) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&order).Error
}

// Remove deletes one order. Missing ids are not an error.
func (s *GormOrderStore) Remove(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.ProductionOrder{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// GormProductStore persists the product catalog.
type GormProductStore struct {
	db *gorm.DB
}

// NewGormProductStore wraps a gorm connection.
func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

// GetByCode fetches one catalog entry.
func (s *GormProductStore) GetByCode(ctx context.Context, code string) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "code = ?", code).Error
	return product, err
}

// Search matches the query case-insensitively against code and description.
func (s *GormProductStore) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(query) + "%"
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(code) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("code asc").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Import upserts catalog entries in bulk, keyed by code.
func (s *GormProductStore) Import(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&products).Error
	if err != nil {
		return 0, err
	}
	return len(products), nil
}
