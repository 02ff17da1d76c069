/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package catalog loads the product reference data that powers code lookup
// and description autocomplete on the order form.
package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/skuld_plan/internal/models"
	"github.com/friendsincode/skuld_plan/internal/store"
)

// MinQueryLength is the shortest search query that returns suggestions.
const MinQueryLength = 2

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// LoadSeed parses a YAML catalog file. Entries without a code are rejected.
func LoadSeed(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	products := make([]models.Product, 0, len(seed.Products))
	for i, p := range seed.Products {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			return nil, fmt.Errorf("catalog entry %d: code is required", i)
		}
		products = append(products, models.Product{
			Code:        code,
			Description: strings.TrimSpace(p.Description),
		})
	}
	return products, nil
}

// Import loads the seed file and upserts it into the product store.
func Import(ctx context.Context, path string, products store.ProductStore) (int, error) {
	seed, err := LoadSeed(path)
	if err != nil {
		return 0, err
	}
	return products.Import(ctx, seed)
}
