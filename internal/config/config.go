package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds every runtime setting the service consumes. It is built
// once at startup and passed into each component's constructor; request
// handling never reads the environment directly.
type Config struct {
	Port        int
	DatabaseURL string

	JWTSecret    string
	JWTAlgorithm string
	TokenTTL     time.Duration

	BcryptCost int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	CORSOrigins []string

	DefaultPageSize int
	MaxPageSize     int
}

// Load builds a Config from the environment. A .env file in the working
// directory is overlaid first when present; real environment variables
// win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            8080,
		JWTAlgorithm:    "HS256",
		TokenTTL:        24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
		MinioEndpoint:   "localhost:9000",
		MinioAccessKey:  "minioadmin",
		MinioSecretKey:  "minioadmin",
		MinioBucket:     "brand-logos",
		DefaultPageSize: 50,
		MaxPageSize:     200,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if v := os.Getenv("JWT_ALGORITHM"); v != "" {
		cfg.JWTAlgorithm = v
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", v)
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	cfg.MinioUseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	cfg.CORSOrigins = splitOrigins(os.Getenv("CORS_ORIGINS"))

	return cfg, nil
}

// splitOrigins parses a comma-separated origin list, dropping empty
// entries.
func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
