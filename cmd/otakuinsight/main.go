package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/otaku-insight/internal/handlers"
	"github.com/example/otaku-insight/internal/jikan"
	"github.com/example/otaku-insight/internal/platform/auth"
	"github.com/example/otaku-insight/internal/platform/config"
	"github.com/example/otaku-insight/internal/platform/db"
	"github.com/example/otaku-insight/internal/platform/events"
	"github.com/example/otaku-insight/internal/platform/httpserver"
	"github.com/example/otaku-insight/internal/platform/logging"
	"github.com/example/otaku-insight/internal/platform/natsconn"
	"github.com/example/otaku-insight/internal/platform/run"
	"github.com/example/otaku-insight/internal/service"
	"github.com/example/otaku-insight/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Error("open database", zap.Error(err))
		run.Exit(1)
	}
	defer pool.Close()

	pg := store.NewPostgresStore(pool)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		log.Error("ensure schema", zap.Error(err))
		run.Exit(1)
	}

	// Event publishing is optional; without NATS_URL the publisher is a no-op.
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL})
		if err != nil {
			log.Error("connect nats", zap.Error(err))
			run.Exit(1)
		}
		defer nc.Drain()
		js, err := nc.JetStream(nats.PublishAsyncMaxPending(256))
		if err != nil {
			log.Error("init jetstream", zap.Error(err))
			run.Exit(1)
		}
		publisher = events.New(js, log)
	}

	client := jikan.New(cfg.Jikan.BaseURL, log)
	client.PageDelay = cfg.Jikan.PageDelay

	animeSvc := service.NewAnimeLookup(client, pg, publisher, log)
	episodeSvc := service.NewEpisodeAnalysis(client, pg, publisher, log)
	mangaSvc := service.NewMangaLookup(client, log)

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ReadyFunc: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
	})

	r.Route("/api/anime", func(r chi.Router) {
		r.Get("/search", handlers.SearchAnime(animeSvc))
		r.Get("/{anime_id}/episodes/analysis", handlers.GetEpisodeAnalysis(episodeSvc))
		r.Get("/{anime_id}/manga-info", handlers.GetMangaInfo(mangaSvc))
	})

	if cfg.AdminJWTSecret != "" {
		verifier := auth.JWTVerifier{Secret: []byte(cfg.AdminJWTSecret)}
		backfill := handlers.BackfillHandler{Analyzer: episodeSvc, Log: log}
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(auth.RequireUser(verifier))
			r.Use(auth.RequireAdmin)
			backfill.Register(r)
		})
	} else {
		log.Warn("ADMIN_JWT_SECRET not set, admin routes disabled")
	}

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
