package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/estimator/internal/config"
	"github.com/Simplici0/estimator/internal/db"
	"github.com/Simplici0/estimator/internal/logging"
	"github.com/Simplici0/estimator/internal/migrations"
	"github.com/Simplici0/estimator/internal/ratecard"
	"github.com/Simplici0/estimator/internal/seed"
	"github.com/Simplici0/estimator/internal/session"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	logger   *zap.Logger
	rates    *ratecard.Store
	sessions session.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := prepareDevDatabase(ctx, database, logger); err != nil {
			logger.Fatal("failed to prepare database", zap.Error(err))
		}
	}

	sessions, closeSessions, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	srv := &server{
		logger:   logger,
		rates:    ratecard.NewStore(database),
		sessions: sessions,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func prepareDevDatabase(ctx context.Context, database *sql.DB, logger *zap.Logger) error {
	if err := migrations.Up(ctx, database, logger); err != nil {
		return err
	}
	stats, err := seed.Run(ctx, database)
	if err != nil {
		return err
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts))
	return nil
}

func openSessionStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Store, func(), error) {
	if !cfg.UseRedis() {
		logger.Info("sessions kept in memory", zap.Duration("ttl", cfg.SessionTTL))
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	store, err := session.NewRedisStore(ctx, session.RedisConfig{
		Addr:           cfg.RedisAddr,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		TTL:            cfg.SessionTTL,
		ConnectTimeout: cfg.RedisConnectTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("sessions kept in redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.SessionTTL))
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/rates", s.handleRatesGet)
		r.Put("/rates", s.handleRatesPut)

		r.Post("/videotech/estimate", s.handleVideoTechEstimate)
		r.Post("/webmobile/estimate", s.handleWebMobileEstimate)
		r.Get("/webmobile/features", s.handleFeatures)

		r.Post("/sessions", s.handleSessionCreate)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionGet)
			r.Delete("/", s.handleSessionDelete)
			r.Put("/panels", s.handlePanelsPut)
			r.Get("/export.xlsx", s.handleSessionExport)

			r.Patch("/videotech", s.handleVideoTechPatch)
			r.Post("/videotech/reset", s.handleVideoTechReset)

			r.Patch("/webmobile", s.handleWebMobilePatch)
			r.Post("/webmobile/reset", s.handleWebMobileReset)
			r.Post("/webmobile/third-party", s.handleThirdPartyAdd)
			r.Patch("/webmobile/third-party/{itemID}", s.handleThirdPartyUpdate)
			r.Delete("/webmobile/third-party/{itemID}", s.handleThirdPartyDelete)
		})
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}
