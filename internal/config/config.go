package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the complete application configuration. Everything here comes
// from the environment; credentials are never source literals.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Chroma    ChromaConfig
	Redis     RedisConfig
	Gemini    GeminiConfig
	Retrieval RetrievalConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string        `validate:"required"`
	ReadTimeout  time.Duration `validate:"min=0"`
	WriteTimeout time.Duration `validate:"min=0"`
}

// DatabaseConfig holds the product store connection settings
type DatabaseConfig struct {
	URL        string `validate:"required"`
	Table      string `validate:"required"`
	FetchLimit int    `validate:"gt=0"`
}

// ChromaConfig holds the vector database connection settings
type ChromaConfig struct {
	Host       string `validate:"required"`
	Port       int    `validate:"gt=0"`
	Tenant     string
	Database   string
	Collection string `validate:"required"`
	Timeout    time.Duration
}

// RedisConfig holds the optional product cache settings. A zero CacheTTL
// disables caching entirely and every rebuild reads the store directly.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

// GeminiConfig holds the hosted model settings
type GeminiConfig struct {
	APIKey         string `validate:"required"`
	Model          string `validate:"required"`
	EmbeddingModel string `validate:"required"`
}

// RetrievalConfig holds the retrieval tuning knobs
type RetrievalConfig struct {
	SearchTopK int `validate:"gt=0"` // default k for direct similarity search
}

// Load reads configuration from the environment. A .env file is honored
// when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:         envString("SERVER_ADDR", ":8080"),
			ReadTimeout:  envDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: envDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
		},
		Database: DatabaseConfig{
			URL:        os.Getenv("DATABASE_URL"),
			Table:      envString("PRODUCTS_TABLE", "products"),
			FetchLimit: envInt("PRODUCT_FETCH_LIMIT", 10000),
		},
		Chroma: ChromaConfig{
			Host:       envString("CHROMA_HOST", "localhost"),
			Port:       envInt("CHROMA_PORT", 8000),
			Tenant:     os.Getenv("CHROMA_TENANT"),
			Database:   os.Getenv("CHROMA_DATABASE"),
			Collection: envString("COLLECTION_NAME", "price_advisor_products"),
			Timeout:    envDuration("CHROMA_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Host:     envString("REDIS_HOST", "localhost"),
			Port:     envInt("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
			CacheTTL: envDuration("PRODUCT_CACHE_TTL", 0),
		},
		Gemini: GeminiConfig{
			APIKey:         os.Getenv("GOOGLE_API_KEY"),
			Model:          envString("GEMINI_MODEL", "gemini-2.0-flash-lite"),
			EmbeddingModel: envString("EMBEDDING_MODEL", "text-embedding-004"),
		},
		Retrieval: RetrievalConfig{
			SearchTopK: envInt("SEARCH_TOP_K", 5),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
