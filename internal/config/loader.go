package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from .env, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromLegacyEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.max_output_tokens", 8192)
	v.SetDefault("llm.timeout", 50*time.Second)

	v.SetDefault("pipeline.reprice_with_estimator", true)
	v.SetDefault("pipeline.default_max_results", 4)
	v.SetDefault("pipeline.max_results_limit", 10)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.prefix", "tripsync:trips:")

	v.SetDefault("imagery.unsplash_access_key", "")
	v.SetDefault("imagery.unsplash_base_url", "https://api.unsplash.com")
	v.SetDefault("imagery.timeout", 5*time.Second)

	v.SetDefault("ratelimit.requests_per_minute", 60)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// overrideFromLegacyEnv honours the plain variable names the mobile backend
// has always been deployed with (PORT, GEMINI_API_KEY, ...).
func overrideFromLegacyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if key := os.Getenv("UNSPLASH_ACCESS_KEY"); key != "" && cfg.Imagery.UnsplashAccessKey == "" {
		cfg.Imagery.UnsplashAccessKey = key
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.Model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		case "gemini":
			cfg.LLM.Model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		}
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported llm provider %q, use 'openai' or 'gemini'", cfg.LLM.Provider)
	}
	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache backend %q, use 'memory' or 'redis'", cfg.Cache.Backend)
	}
	if cfg.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if cfg.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if cfg.Pipeline.MaxResultsLimit < 1 {
		return errors.New("pipeline.max_results_limit must be at least 1")
	}
	if cfg.Pipeline.DefaultMaxResults < 1 || cfg.Pipeline.DefaultMaxResults > cfg.Pipeline.MaxResultsLimit {
		return fmt.Errorf("pipeline.default_max_results must be between 1 and %d", cfg.Pipeline.MaxResultsLimit)
	}
	return nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
