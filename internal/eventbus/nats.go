/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package eventbus provides distributed bridges for the in-process event bus
// so multiple planner instances observe each other's collection changes.
// A bridge that cannot reach its transport degrades to local-only delivery.
package eventbus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/friendsincode/skuld_plan/internal/events"
)

const natsSubjectPrefix = "skuld.events."

// envelope is the wire form of one event.
type envelope struct {
	NodeID  string         `json:"node_id"`
	Type    string         `json:"type"`
	Payload events.Payload `json:"payload"`
}

// NATSBus fans events out over NATS core pub/sub. Local delivery always
// happens first; remote delivery is best effort.
type NATSBus struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	local  *events.Bus
	logger zerolog.Logger
	nodeID string
}

// NewNATSBus connects to NATS and starts mirroring remote events into the
// local bus. On connection failure the bridge still works local-only.
func NewNATSBus(url, nodeID string, local *events.Bus, logger zerolog.Logger) (*NATSBus, error) {
	if nodeID == "" {
		nodeID = uuid.NewString()
	}
	nb := &NATSBus{
		local:  local,
		logger: logger.With().Str("component", "eventbus-nats").Logger(),
		nodeID: nodeID,
	}

	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		nb.logger.Warn().Err(err).Str("url", url).Msg("NATS unavailable, events stay local")
		return nb, nil
	}
	nb.conn = conn

	sub, err := conn.Subscribe(natsSubjectPrefix+">", nb.handleRemote)
	if err != nil {
		nb.logger.Warn().Err(err).Msg("NATS subscribe failed, events stay local")
		conn.Close()
		nb.conn = nil
		return nb, nil
	}
	nb.sub = sub

	nb.logger.Info().Str("url", url).Str("node_id", nodeID).Msg("NATS event bridge connected")
	return nb, nil
}

// Publish delivers locally, then fans out.
func (nb *NATSBus) Publish(eventType events.EventType, payload events.Payload) {
	nb.local.Publish(eventType, payload)

	if nb.conn == nil {
		return
	}
	data, err := json.Marshal(envelope{NodeID: nb.nodeID, Type: string(eventType), Payload: payload})
	if err != nil {
		return
	}
	if err := nb.conn.Publish(natsSubjectPrefix+string(eventType), data); err != nil {
		nb.logger.Debug().Err(err).Str("event", string(eventType)).Msg("remote publish failed")
	}
}

func (nb *NATSBus) handleRemote(msg *nats.Msg) {
	var env envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		nb.logger.Debug().Err(err).Msg("malformed remote event")
		return
	}
	if env.NodeID == nb.nodeID {
		return
	}
	nb.local.Publish(events.EventType(env.Type), env.Payload)
}

// Close drains the subscription and closes the connection.
func (nb *NATSBus) Close() error {
	if nb.sub != nil {
		_ = nb.sub.Unsubscribe()
	}
	if nb.conn != nil {
		nb.conn.Close()
	}
	return nil
}
