/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friendsincode/skuld_plan/internal/catalog"
	"github.com/friendsincode/skuld_plan/internal/db"
	"github.com/friendsincode/skuld_plan/internal/store"
)

var importProductsPath string

var importProductsCmd = &cobra.Command{
	Use:   "import-products",
	Short: "Import the product catalog from a YAML seed file",
	Long:  "Upsert product codes and descriptions into the catalog; existing codes are overwritten",
	RunE:  runImportProducts,
}

func init() {
	importProductsCmd.Flags().StringVar(&importProductsPath, "file", "", "path to the catalog YAML file (required)")
	_ = importProductsCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importProductsCmd)
}

func runImportProducts(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	database, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	count, err := catalog.Import(context.Background(), importProductsPath, store.NewGormProductStore(database))
	if err != nil {
		return err
	}

	logger.Info().Int("products", count).Str("path", importProductsPath).Msg("catalog imported")
	return nil
}
