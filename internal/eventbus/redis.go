/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/friendsincode/skuld_plan/internal/events"
)

const redisChannel = "skuld:events"

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisBus fans events out over a Redis pub/sub channel. Like the NATS
// bridge it degrades to local-only delivery when Redis is unreachable.
type RedisBus struct {
	client *redis.Client
	pubsub *redis.PubSub
	local  *events.Bus
	logger zerolog.Logger
	nodeID string

	cancel context.CancelFunc
}

// NewRedisBus connects to Redis and starts mirroring remote events into the
// local bus.
func NewRedisBus(cfg RedisConfig, nodeID string, local *events.Bus, logger zerolog.Logger) (*RedisBus, error) {
	if nodeID == "" {
		nodeID = uuid.NewString()
	}
	rb := &RedisBus{
		local:  local,
		logger: logger.With().Str("component", "eventbus-redis").Logger(),
		nodeID: nodeID,
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		rb.logger.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, events stay local")
		_ = client.Close()
		return rb, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	rb.client = client
	rb.cancel = cancel
	rb.pubsub = client.Subscribe(ctx, redisChannel)

	go rb.consume(ctx)

	rb.logger.Info().Str("addr", cfg.Addr).Str("node_id", nodeID).Msg("Redis event bridge connected")
	return rb, nil
}

// Publish delivers locally, then fans out.
func (rb *RedisBus) Publish(eventType events.EventType, payload events.Payload) {
	rb.local.Publish(eventType, payload)

	if rb.client == nil {
		return
	}
	data, err := json.Marshal(envelope{NodeID: rb.nodeID, Type: string(eventType), Payload: payload})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rb.client.Publish(ctx, redisChannel, data).Err(); err != nil {
		rb.logger.Debug().Err(err).Str("event", string(eventType)).Msg("remote publish failed")
	}
}

func (rb *RedisBus) consume(ctx context.Context) {
	ch := rb.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				rb.logger.Debug().Err(err).Msg("malformed remote event")
				continue
			}
			if env.NodeID == rb.nodeID {
				continue
			}
			rb.local.Publish(events.EventType(env.Type), env.Payload)
		}
	}
}

// Close stops the consumer and releases the connection.
func (rb *RedisBus) Close() error {
	if rb.cancel != nil {
		rb.cancel()
	}
	if rb.pubsub != nil {
		_ = rb.pubsub.Close()
	}
	if rb.client != nil {
		return rb.client.Close()
	}
	return nil
}
