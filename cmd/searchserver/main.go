package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ase77/searchserver/internal/engine"
	"github.com/ase77/searchserver/internal/history"
	"github.com/ase77/searchserver/internal/ingest/consumer"
	"github.com/ase77/searchserver/internal/ingest/publisher"
	"github.com/ase77/searchserver/internal/server"
	"github.com/ase77/searchserver/internal/server/cache"
	"github.com/ase77/searchserver/internal/server/handler"
	"github.com/ase77/searchserver/pkg/config"
	"github.com/ase77/searchserver/pkg/health"
	"github.com/ase77/searchserver/pkg/kafka"
	"github.com/ase77/searchserver/pkg/logger"
	"github.com/ase77/searchserver/pkg/metrics"
	"github.com/ase77/searchserver/pkg/middleware"
	"github.com/ase77/searchserver/pkg/postgres"
	pkgredis "github.com/ase77/searchserver/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting search server", "port", cfg.Server.Port)

	eng := engine.New()
	if cfg.Engine.StopWords != "" {
		eng.SetStopWords(cfg.Engine.StopWords)
		slog.Info("stop words configured", "stop_words", cfg.Engine.StopWords)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	var queryCache *cache.QueryCache
	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, query caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		queryCache = cache.New(redisClient, cfg.Redis)
		slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	var historyStore *history.Store
	var pgClient *postgres.Client
	if cfg.History.Enabled {
		pgClient, err = postgres.New(cfg.Postgres)
		if err != nil {
			slog.Warn("postgres unavailable, search history disabled", "error", err)
		} else {
			defer pgClient.Close()
			historyStore = history.NewStore(pgClient)
			slog.Info("search history enabled", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)
		}
	}

	svc := server.New(eng, queryCache, historyStore, m)

	indexProducer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.DocumentIndex)
	defer indexProducer.Close()
	pub := publisher.New(indexProducer)

	indexConsumer := consumer.New(cfg.Kafka, cfg.Kafka.Topics.DocumentIndex, svc)
	go func() {
		if err := indexConsumer.Start(ctx); err != nil {
			slog.Error("ingest consumer error", "error", err)
		}
	}()

	checker := health.NewChecker()
	checker.Register("engine", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents indexed", svc.DocumentCount()),
		}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	checker.Register("kafka", func(ctx context.Context) health.ComponentHealth {
		if err := kafka.Ping(ctx, cfg.Kafka.Brokers); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
		if pgClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := pgClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	h := handler.New(svc, pub, cfg.History.RecentLimit)
	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("search server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("search server stopped")
}
