// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"iconforge/internal/ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Image provider settings
	ImageProvider     string // "replicate", "openai", "gemini"
	ReplicateToken    string
	ReplicateModel    string
	ReplicateBaseURL  string
	OpenAIKey         string
	OpenAIImageModel  string
	OpenAIBaseURL     string
	GeminiKey         string
	GeminiImageModel  string
	ModerationEnabled bool

	// Generation limits
	GenerationTimeout time.Duration // per image call
	RateLimit         int           // requests per RateWindow per client
	RateWindow        time.Duration

	// PostgreSQL connection (history is disabled when DBHost is empty)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (shared rate limiting; in-process limiter when ValkeyHost is empty)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
	S3Mirror    bool // copy provider-hosted images into the bucket

	// Static client bundle
	ClientDir string

	// Hosts POST /api/download may fetch from
	DownloadHosts []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Outside production a .env file in the
// working directory is loaded first; variables already set win. Returns
// an error for malformed values or insecure production settings.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "3000"),
		Env:  envOrDefault("APP_ENV", "development"),

		ImageProvider:    envOrDefault("IMAGE_PROVIDER", "replicate"),
		ReplicateToken:   os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateModel:   envOrDefault("REPLICATE_MODEL", "black-forest-labs/flux-schnell"),
		ReplicateBaseURL: envOrDefault("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIImageModel: envOrDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),
		OpenAIBaseURL:    envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiImageModel: envOrDefault("GEMINI_IMAGE_MODEL", "imagen-4.0-fast-generate-001"),

		DBHost:     os.Getenv("POSTGRES_HOST"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "iconforge"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "iconforge"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "iconforge-public"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		ClientDir: envOrDefault("CLIENT_DIR", "client/dist"),

		DownloadHosts: splitList(envOrDefault("DOWNLOAD_HOSTS",
			"replicate.delivery,oaidalleapiprodscus.blob.core.windows.net")),
	}

	var err error
	if cfg.ModerationEnabled, err = envBool("MODERATION_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.S3Mirror, err = envBool("S3_MIRROR", false); err != nil {
		return nil, err
	}
	if cfg.GenerationTimeout, err = envDuration("GENERATION_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = envDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = envInt("RATE_LIMIT", 20); err != nil {
		return nil, err
	}

	switch cfg.ImageProvider {
	case "replicate", "openai", "gemini":
	default:
		return nil, fmt.Errorf("IMAGE_PROVIDER must be replicate, openai or gemini, got %q", cfg.ImageProvider)
	}

	if cfg.Env == "production" && cfg.HistoryEnabled() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// ProviderConfigs returns the per-provider settings for ai.NewRegistry.
func (c *Config) ProviderConfigs() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"replicate": {APIKey: c.ReplicateToken, Model: c.ReplicateModel, BaseURL: c.ReplicateBaseURL},
		"openai":    {APIKey: c.OpenAIKey, Model: c.OpenAIImageModel, BaseURL: c.OpenAIBaseURL},
		"gemini":    {APIKey: c.GeminiKey, Model: c.GeminiImageModel},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HistoryEnabled reports whether generations are persisted to PostgreSQL.
func (c *Config) HistoryEnabled() bool {
	return c.DBHost != ""
}

// SharedRateLimit reports whether rate counters live in Valkey.
func (c *Config) SharedRateLimit() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: must be a positive duration like 90s, got %q", key, v)
	}
	return d, nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
