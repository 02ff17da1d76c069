/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	ws "nhooyr.io/websocket"

	"github.com/friendsincode/skuld_plan/internal/events"
	"github.com/friendsincode/skuld_plan/internal/models"
	"github.com/friendsincode/skuld_plan/internal/plan"
	"github.com/friendsincode/skuld_plan/internal/telemetry"
)

const streamWriteTimeout = 10 * time.Second

// snapshot is one full-collection stream frame. Clients replace their local
// state wholesale; there is no incremental diff protocol.
type snapshot struct {
	Type           string                   `json:"type"`
	Orders         []models.ProductionOrder `json:"orders"`
	Summary        plan.Summary             `json:"summary"`
	SuggestedStart string                   `json:"suggested_start"`
}

// handleStream pushes a schedule snapshot on connect and after every order
// mutation, regardless of which instance performed it.
func (a *API) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.Accept(w, r, &ws.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(ws.StatusInternalError, "server error")

	telemetry.StreamClients.Inc()
	defer telemetry.StreamClients.Dec()

	created := a.bus.Subscribe(events.EventOrderCreated)
	updated := a.bus.Subscribe(events.EventOrderUpdated)
	deleted := a.bus.Subscribe(events.EventOrderDeleted)
	defer a.bus.Unsubscribe(events.EventOrderCreated, created)
	defer a.bus.Unsubscribe(events.EventOrderUpdated, updated)
	defer a.bus.Unsubscribe(events.EventOrderDeleted, deleted)

	// The stream is push-only; CloseRead discards client frames and cancels
	// the context when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	a.logger.Debug().Str("remote", r.RemoteAddr).Msg("stream client connected")

	if err := a.sendSnapshot(ctx, conn); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(ws.StatusNormalClosure, "")
			return
		case <-created:
		case <-updated:
		case <-deleted:
		}

		if err := a.sendSnapshot(ctx, conn); err != nil {
			a.logger.Debug().Err(err).Msg("stream write failed")
			return
		}
	}
}

func (a *API) sendSnapshot(ctx context.Context, conn *ws.Conn) error {
	items, err := a.orders.List(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []models.ProductionOrder{}
	}

	frame, err := json.Marshal(snapshot{
		Type:           "schedule",
		Orders:         items,
		Summary:        plan.Summarize(items),
		SuggestedStart: plan.SuggestedStart(items),
	})
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, ws.MessageText, frame)
}
