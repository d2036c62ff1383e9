package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Weather   WeatherConfig   `yaml:"weather"`
	Venues    VenuesConfig    `yaml:"venues"`
	Recommend RecommendConfig `yaml:"recommend"`
	Rerank    RerankConfig    `yaml:"rerank"`
	Profiles  ProfilesConfig  `yaml:"profiles"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig contains settings for the OpenAI-compatible reasoning service.
// An empty API key disables semantic reranking entirely.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// WeatherConfig points at the upstream weather provider.
type WeatherConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

// VenuesConfig points at the upstream venue provider.
type VenuesConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	MaxResults      int     `yaml:"maxResults"`
	DefaultRadiusKm float64 `yaml:"defaultRadiusKm"`
	Workers         int     `yaml:"workers"`
}

// RerankConfig tunes the semantic reranker.
type RerankConfig struct {
	Prompt        string        `yaml:"prompt"`
	MaxCandidates int           `yaml:"maxCandidates"`
	TokenBudget   int           `yaml:"tokenBudget"`
	Timeout       time.Duration `yaml:"timeout"`
}

// ProfilesConfig selects the preference profile backend.
type ProfilesConfig struct {
	Backend  string         `yaml:"backend"` // memory | postgres | valkey
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for profile storage.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("VENUES_API_KEY"); v != "" {
		cfg.Venues.APIKey = v
	}
	if v := os.Getenv("VENUES_BASE_URL"); v != "" {
		cfg.Venues.BaseURL = v
	}
	if v := os.Getenv("RECOMMEND_MAX_RESULTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.MaxResults = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_DEFAULT_RADIUS_KM"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Recommend.DefaultRadiusKm = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_WORKERS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.Workers = parsed
		}
	}
	if v := os.Getenv("RERANK_PROMPT"); v != "" {
		cfg.Rerank.Prompt = v
	}
	if v := os.Getenv("RERANK_MAX_CANDIDATES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Rerank.MaxCandidates = parsed
		}
	}
	if v := os.Getenv("RERANK_TOKEN_BUDGET"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Rerank.TokenBudget = parsed
		}
	}
	if v := os.Getenv("RERANK_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Rerank.Timeout = parsed
		}
	}
	if v := os.Getenv("PROFILES_BACKEND"); v != "" {
		cfg.Profiles.Backend = v
	}
	if v := os.Getenv("PROFILES_POSTGRES_DSN"); v != "" {
		cfg.Profiles.Postgres.DSN = v
	}
	if v := os.Getenv("PROFILES_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Profiles.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("PROFILES_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Profiles.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("PROFILES_VALKEY_ADDR"); v != "" {
		cfg.Profiles.Valkey.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
		},
		Venues: VenuesConfig{
			BaseURL: "https://maps.googleapis.com/maps/api/place",
		},
		Recommend: RecommendConfig{
			MaxResults:      10,
			DefaultRadiusKm: 5,
			Workers:         4,
		},
		Rerank: RerankConfig{
			Prompt:        "You are a local guide ranking venues for the best possible visit given current weather. Prefer indoor venues when conditions are adverse and outdoor or scenic venues when they are pleasant, respect open/closed status, and balance weather fit against venue quality.",
			MaxCandidates: 50,
			TokenBudget:   6000,
			Timeout:       10 * time.Second,
		},
		Profiles: ProfilesConfig{
			Backend: "memory",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Venues.BaseURL == "" {
		return errors.New("venues.baseUrl cannot be empty")
	}
	if c.Recommend.MaxResults <= 0 {
		return errors.New("recommend.maxResults must be positive")
	}
	if c.Recommend.DefaultRadiusKm <= 0 {
		return errors.New("recommend.defaultRadiusKm must be positive")
	}
	if c.Recommend.Workers <= 0 {
		return errors.New("recommend.workers must be positive")
	}
	if c.Rerank.MaxCandidates <= 0 {
		return errors.New("rerank.maxCandidates must be positive")
	}
	if c.Rerank.Timeout <= 0 {
		return errors.New("rerank.timeout must be positive")
	}
	switch c.Profiles.Backend {
	case "memory", "postgres", "valkey":
	default:
		return fmt.Errorf("profiles.backend %q is not supported", c.Profiles.Backend)
	}
	if c.Profiles.Backend == "postgres" && strings.TrimSpace(c.Profiles.Postgres.DSN) == "" {
		return errors.New("profiles.postgres.dsn cannot be empty when the postgres backend is selected")
	}
	if c.Profiles.Backend == "valkey" && strings.TrimSpace(c.Profiles.Valkey.Addr) == "" {
		return errors.New("profiles.valkey.addr cannot be empty when the valkey backend is selected")
	}
	return nil
}
