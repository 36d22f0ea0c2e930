package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/obs"
	"github.com/studyhub-app/studyhub-backend/internal/platform/cache"
	"github.com/studyhub-app/studyhub-backend/internal/platform/config"
	"github.com/studyhub-app/studyhub-backend/internal/platform/database"
	"github.com/studyhub-app/studyhub-backend/internal/quiz"
	"github.com/studyhub-app/studyhub-backend/internal/review"
	"github.com/studyhub-app/studyhub-backend/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	observer := obs.NewSlog(logger)

	var graphCache *cache.Cache
	if cfg.Cache.URL != "" {
		graphCache, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("cache unavailable, loading without snapshot", "error", err)
		} else {
			defer graphCache.Close()
		}
	}

	loader := source.NewLoader(observer,
		source.NewPagesStrategy(cfg.Source.Root, observer),
		source.NewWorkbookStrategy(cfg.Source.Root, cfg.Source.MasterWorkbook, observer),
	)

	graph, err := loadGraph(ctx, loader, graphCache, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
	if err != nil {
		slog.Error("failed to load curriculum", "error", err)
		os.Exit(1)
	}

	var db *database.DB
	var store review.Store
	if cfg.Database.URL != "" {
		db, err = database.New(ctx, cfg.Database.URL, database.Options{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pgStore, err := review.NewPostgresStore(db.Pool)
		if err != nil {
			slog.Error("failed to create review store", "error", err)
			os.Exit(1)
		}
		if err := pgStore.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare review schema", "error", err)
			os.Exit(1)
		}
		store = pgStore
	} else {
		slog.Warn("no database configured, review schedule is in-memory only")
		store = review.NewMemoryStore()
	}

	app := &app{
		graph:       graph,
		scheduler:   review.NewScheduler(store),
		selector:    quiz.NewSelector(nil),
		targetCount: cfg.Quiz.TargetCount,
		db:          db,
		cache:       graphCache,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// loadGraph consults the snapshot cache before running the source loader and
// refreshes the snapshot after a successful load. Cache failures are soft.
func loadGraph(ctx context.Context, loader *source.Loader, graphCache *cache.Cache, ttl time.Duration) (*content.Graph, error) {
	if graphCache != nil {
		graph, ok, err := graphCache.GetGraph(ctx)
		if err != nil {
			slog.Warn("graph snapshot unavailable", "error", err)
		} else if ok {
			slog.Info("curriculum loaded from snapshot",
				"subjects", len(graph.Subjects), "topics", len(graph.Topics))
			return graph, nil
		}
	}

	graph, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if graphCache != nil {
		if err := graphCache.SetGraph(ctx, graph, ttl); err != nil {
			slog.Warn("failed to store graph snapshot", "error", err)
		}
	}
	return graph, nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
