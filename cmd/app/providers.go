package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/venuecast/internal/domain/recommend"
	"github.com/yanqian/venuecast/internal/domain/rerank"
	"github.com/yanqian/venuecast/internal/infra/config"
	"github.com/yanqian/venuecast/internal/infra/geo"
	"github.com/yanqian/venuecast/internal/infra/llm/chatgpt"
	"github.com/yanqian/venuecast/internal/infra/llm/tokens"
	"github.com/yanqian/venuecast/internal/infra/profilestore"
	"github.com/yanqian/venuecast/internal/infra/venues/places"
	"github.com/yanqian/venuecast/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/venuecast/internal/interface/http"
)

func provideRecommendConfig(cfg *config.Config) recommend.Config {
	return recommend.Config{
		MaxResults:      cfg.Recommend.MaxResults,
		DefaultRadiusKm: cfg.Recommend.DefaultRadiusKm,
		Workers:         cfg.Recommend.Workers,
	}
}

func provideRerankConfig(cfg *config.Config) rerank.Config {
	return rerank.Config{
		Model:         cfg.LLM.Model,
		Temperature:   cfg.LLM.Temperature,
		Prompt:        cfg.Rerank.Prompt,
		MaxCandidates: cfg.Rerank.MaxCandidates,
		TokenBudget:   cfg.Rerank.TokenBudget,
		Timeout:       cfg.Rerank.Timeout,
	}
}

// provideReranker builds the semantic reranking service. Without an LLM API
// key the service is constructed clientless and every request falls back to
// the deterministic ordering.
func provideReranker(cfg *config.Config, logger *slog.Logger) (rerank.Service, error) {
	var client rerank.ChatClient
	if strings.TrimSpace(cfg.LLM.APIKey) != "" {
		chatClient, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
		client = chatClient
	} else {
		logger.Info("llm api key not set, semantic reranking disabled")
	}
	return rerank.NewService(provideRerankConfig(cfg), client, tokens.NewCounter(cfg.LLM.Model), logger), nil
}

func provideWeatherClient(cfg *config.Config) *openweather.Client {
	return openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)
}

func provideVenuesClient(cfg *config.Config) *places.Client {
	return places.NewClient(cfg.Venues.APIKey, cfg.Venues.BaseURL)
}

func provideDistanceCalculator() *geo.Haversine {
	return geo.NewHaversine()
}

// provideProfileStore selects the profile backend. Postgres and valkey fall
// back to the in-memory store when the connection cannot be established, so a
// misbehaving backend degrades the service instead of taking it down.
func provideProfileStore(cfg *config.Config, logger *slog.Logger) httpiface.ProfileStore {
	switch cfg.Profiles.Backend {
	case "postgres":
		if store := buildPostgresStore(cfg, logger); store != nil {
			return store
		}
	case "valkey":
		if store := buildValkeyStore(cfg, logger); store != nil {
			return store
		}
	}
	return profilestore.NewMemoryStore()
}

func buildPostgresStore(cfg *config.Config, logger *slog.Logger) httpiface.ProfileStore {
	poolConfig, err := pgxpool.ParseConfig(cfg.Profiles.Postgres.DSN)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory profile store", "error", err)
		return nil
	}
	if cfg.Profiles.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Profiles.Postgres.MaxConns
	}
	if cfg.Profiles.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Profiles.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory profile store", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory profile store", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres profile store enabled")
	return profilestore.NewPostgresStore(pool)
}

func buildValkeyStore(cfg *config.Config, logger *slog.Logger) httpiface.ProfileStore {
	opt, err := buildValkeyOptions(cfg.Profiles.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, using memory profile store", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, using memory profile store", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, using memory profile store", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey profile store enabled", "addr", cfg.Profiles.Valkey.Addr)
	return profilestore.NewValkeyStore(client, "profile")
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideRecommendProfileStore narrows the read/write store to the read-only
// surface the recommendation service needs.
func provideRecommendProfileStore(store httpiface.ProfileStore) recommend.ProfileStore {
	return store
}
