/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package api exposes the planner's HTTP surface: order CRUD with schedule
// recomputation, catalog lookup, dashboard summary, workbook export and the
// live snapshot stream.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/skuld_plan/internal/auth"
	"github.com/friendsincode/skuld_plan/internal/events"
	"github.com/friendsincode/skuld_plan/internal/plan"
	"github.com/friendsincode/skuld_plan/internal/storage"
	"github.com/friendsincode/skuld_plan/internal/store"
)

// API exposes HTTP handlers.
type API struct {
	db        *gorm.DB
	orders    store.OrderStore
	products  store.ProductStore
	calc      plan.Calculator
	publisher events.Publisher
	bus       *events.Bus
	objects   storage.ObjectStore
	jwtSecret []byte
	logger    zerolog.Logger
}

// New creates the API router wrapper. objects may be nil when no bucket is
// configured; the export upload endpoint then reports it as unavailable.
func New(db *gorm.DB, orders store.OrderStore, products store.ProductStore, calc plan.Calculator, publisher events.Publisher, bus *events.Bus, objects storage.ObjectStore, jwtSecret []byte, logger zerolog.Logger) *API {
	return &API{
		db:        db,
		orders:    orders,
		products:  products,
		calc:      calc,
		publisher: publisher,
		bus:       bus,
		objects:   objects,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Routes mounts API routes on provided router.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/login", a.handleLogin)

		r.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware(a.jwtSecret))

			pr.Route("/orders", func(r chi.Router) {
				r.Get("/", a.handleOrdersList)
				r.Post("/", a.handleOrdersCreate)
				r.Get("/suggested-start", a.handleSuggestedStart)
				r.Get("/export", a.handleOrdersExport)
				r.Route("/{orderID}", func(r chi.Router) {
					r.Put("/", a.handleOrdersUpdate)
					r.Delete("/", a.handleOrdersDelete)
				})
			})

			pr.Get("/summary", a.handleSummary)

			pr.Route("/products", func(r chi.Router) {
				r.Get("/", a.handleProductsSearch)
				r.Get("/{productCode}", a.handleProductsGet)
			})

			pr.Get("/stream", a.handleStream)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
