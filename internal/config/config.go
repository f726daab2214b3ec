package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	AuthDisabled bool
	RateLimit    int // requests per minute per client IP
}

// Load reads configuration from the environment with local defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/tripplan.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	rateLimit := 120
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateLimit = n
		}
	}

	return &Config{
		Port:         port,
		DBPath:       dbPath,
		JWTSecret:    jwtSecret,
		AuthDisabled: os.Getenv("AUTH_DISABLED") == "true",
		RateLimit:    rateLimit,
	}
}
