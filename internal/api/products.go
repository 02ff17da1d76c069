/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/friendsincode/skuld_plan/internal/catalog"
	"github.com/friendsincode/skuld_plan/internal/models"
)

func (a *API) handleProductsSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	// Short queries return an empty suggestion list rather than an error so
	// the form can call this on every keystroke.
	if len(query) < catalog.MinQueryLength {
		writeJSON(w, http.StatusOK, []models.Product{})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	products, err := a.products.Search(r.Context(), query, limit)
	if err != nil {
		a.logger.Error().Err(err).Str("query", query).Msg("search products")
		writeError(w, http.StatusInternalServerError, "search_failed")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (a *API) handleProductsGet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "productCode")

	product, err := a.products.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found")
			return
		}
		a.logger.Error().Err(err).Str("code", code).Msg("load product")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, product)
}
