/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/friendsincode/skuld_plan/internal/events"
	"github.com/friendsincode/skuld_plan/internal/export"
	"github.com/friendsincode/skuld_plan/internal/models"
	"github.com/friendsincode/skuld_plan/internal/plan"
	"github.com/friendsincode/skuld_plan/internal/telemetry"
)

func (a *API) handleOrdersList(w http.ResponseWriter, r *http.Request) {
	items, err := a.orders.List(r.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("list orders")
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if items == nil {
		items = []models.ProductionOrder{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) handleOrdersCreate(w http.ResponseWriter, r *http.Request) {
	var input models.ProductionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if strings.TrimSpace(input.ProductCode) == "" {
		writeError(w, http.StatusBadRequest, "product_code_required")
		return
	}

	order := a.calc.Compute(input)
	if err := a.orders.Upsert(r.Context(), order); err != nil {
		a.logger.Error().Err(err).Str("order_id", order.ID).Msg("persist order")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	telemetry.OrdersComputed.WithLabelValues("create").Inc()
	a.publisher.Publish(events.EventOrderCreated, events.Payload{"id": order.ID})

	writeJSON(w, http.StatusCreated, order)
}

func (a *API) handleOrdersUpdate(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	existing, err := a.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found")
			return
		}
		a.logger.Error().Err(err).Str("order_id", orderID).Msg("load order")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	var input models.ProductionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if strings.TrimSpace(input.ProductCode) == "" {
		writeError(w, http.StatusBadRequest, "product_code_required")
		return
	}

	// Every derived field is recomputed from scratch; only the identity and
	// creation time survive the edit.
	order := a.calc.Compute(input)
	order.ID = existing.ID
	order.CreatedAt = existing.CreatedAt

	if err := a.orders.Upsert(r.Context(), order); err != nil {
		a.logger.Error().Err(err).Str("order_id", order.ID).Msg("persist order")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	telemetry.OrdersComputed.WithLabelValues("edit").Inc()
	a.publisher.Publish(events.EventOrderUpdated, events.Payload{"id": order.ID})

	writeJSON(w, http.StatusOK, order)
}

func (a *API) handleOrdersDelete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	removed, err := a.orders.Remove(r.Context(), orderID)
	if err != nil {
		a.logger.Error().Err(err).Str("order_id", orderID).Msg("remove order")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}

	// Unknown ids are a no-op; the event fires only when a row actually went.
	if removed {
		telemetry.OrdersRemoved.Inc()
		a.publisher.Publish(events.EventOrderDeleted, events.Payload{"id": orderID})
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSuggestedStart(w http.ResponseWriter, r *http.Request) {
	items, err := a.orders.List(r.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("list orders")
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"suggested_start": plan.SuggestedStart(items),
	})
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	items, err := a.orders.List(r.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("list orders")
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, plan.Summarize(items))
}

func (a *API) handleOrdersExport(w http.ResponseWriter, r *http.Request) {
	items, err := a.orders.List(r.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("list orders")
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	data, err := export.Workbook(items)
	if err != nil {
		a.logger.Error().Err(err).Msg("render workbook")
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	if r.URL.Query().Get("upload") == "true" {
		if a.objects == nil {
			writeError(w, http.StatusServiceUnavailable, "object_storage_not_configured")
			return
		}
		key := fmt.Sprintf("exports/schedule-%s.xlsx", a.calc.Now().Format("20060102-150405"))
		if err := a.objects.Put(r.Context(), key, export.ContentTypeXLSX, data); err != nil {
			a.logger.Error().Err(err).Str("key", key).Msg("upload workbook")
			writeError(w, http.StatusBadGateway, "upload_failed")
			return
		}
		a.logger.Info().Str("key", key).Int("orders", len(items)).Msg("schedule exported to object storage")
		writeJSON(w, http.StatusOK, map[string]any{"uploaded": true, "key": key})
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
