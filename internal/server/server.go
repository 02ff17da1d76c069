/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package server wires configuration, storage, the event bus and the HTTP
// surface into one runnable planner instance.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/friendsincode/skuld_plan/internal/api"
	"github.com/friendsincode/skuld_plan/internal/catalog"
	"github.com/friendsincode/skuld_plan/internal/config"
	"github.com/friendsincode/skuld_plan/internal/db"
	"github.com/friendsincode/skuld_plan/internal/eventbus"
	"github.com/friendsincode/skuld_plan/internal/events"
	"github.com/friendsincode/skuld_plan/internal/plan"
	"github.com/friendsincode/skuld_plan/internal/storage"
	"github.com/friendsincode/skuld_plan/internal/store"
	"github.com/friendsincode/skuld_plan/internal/telemetry"
)

// Server bundles HTTP and supporting services.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	metricsSrv *http.Server
	closers    []func() error

	db        *gorm.DB
	orders    store.OrderStore
	products  store.ProductStore
	bus       *events.Bus
	publisher events.Publisher
	api       *api.API
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.MetricsMiddleware)
	router.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "skuld-plan-api")
	})
	// Skip timeout for the snapshot stream; websocket connections are
	// long-lived by design.
	router.Use(func(next http.Handler) http.Handler {
		timeout := middleware.Timeout(60 * time.Second)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}
			timeout(next).ServeHTTP(w, r)
		})
	})

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
		bus:    events.NewBus(),
	}

	if err := srv.initDependencies(); err != nil {
		return nil, err
	}

	srv.configureRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort)
	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		// WriteTimeout stays 0 so the websocket stream is not cut off; the
		// middleware timeout covers the plain API routes.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	return srv, nil
}

func (s *Server) initDependencies() error {
	database, err := db.Connect(s.cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		return err
	}
	if err := db.SeedAdmin(database, s.cfg); err != nil {
		return err
	}
	s.db = database
	s.DeferClose(func() error { return db.Close(database) })

	s.orders = store.NewGormOrderStore(database)
	s.products = store.NewGormProductStore(database)

	if s.cfg.CatalogPath != "" {
		count, err := catalog.Import(context.Background(), s.cfg.CatalogPath, s.products)
		if err != nil {
			return fmt.Errorf("import catalog: %w", err)
		}
		s.logger.Info().Int("products", count).Str("path", s.cfg.CatalogPath).Msg("product catalog imported")
		s.bus.Publish(events.EventCatalogImported, events.Payload{"count": count})
	}

	nodeID := s.cfg.InstanceID
	if nodeID == "" {
		nodeID = uuid.NewString()
	}

	// A single instance publishes straight to the in-process bus; clustered
	// deployments bridge mutations over NATS or Redis so every instance's
	// stream clients see them.
	switch s.cfg.EventBridge {
	case config.BridgeNATS:
		bridge, err := eventbus.NewNATSBus(s.cfg.NATSURL, nodeID, s.bus, s.logger)
		if err != nil {
			return fmt.Errorf("nats bridge: %w", err)
		}
		s.publisher = bridge
		s.DeferClose(bridge.Close)
	case config.BridgeRedis:
		bridge, err := eventbus.NewRedisBus(eventbus.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPassword,
			DB:       s.cfg.RedisDB,
		}, nodeID, s.bus, s.logger)
		if err != nil {
			return fmt.Errorf("redis bridge: %w", err)
		}
		s.publisher = bridge
		s.DeferClose(bridge.Close)
	default:
		s.publisher = s.bus
	}

	var objects storage.ObjectStore
	if s.cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			AccessKeyID:     s.cfg.S3AccessKeyID,
			SecretAccessKey: s.cfg.S3SecretAccessKey,
			Region:          s.cfg.S3Region,
			Bucket:          s.cfg.S3Bucket,
			Endpoint:        s.cfg.S3Endpoint,
			UsePathStyle:    s.cfg.S3UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		objects = s3Store
		s.logger.Info().Str("bucket", s.cfg.S3Bucket).Msg("export upload target configured")
	}

	s.api = api.New(database, s.orders, s.products, plan.NewCalculator(), s.publisher, s.bus, objects, []byte(s.cfg.JWTSigningKey), s.logger)

	return nil
}

func (s *Server) configureRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.api.Routes(s.router)
}

// HTTPServer returns the configured API server for the caller to run.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// StartMetricsServer serves Prometheus metrics on the dedicated bind address
// so the scrape endpoint never shares the public listener.
func (s *Server) StartMetricsServer() {
	if s.cfg.MetricsBind == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())

	s.metricsSrv = &http.Server{
		Addr:              s.cfg.MetricsBind,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.cfg.MetricsBind).Msg("metrics listener started")
		if err := s.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("metrics listener exited")
		}
	}()
}

// DeferClose registers a cleanup hook.
func (s *Server) DeferClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

// Close releases owned resources in reverse order.
func (s *Server) Close() error {
	if s.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = s.metricsSrv.Shutdown(ctx)
		cancel()
	}

	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'; base-uri 'self'")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
