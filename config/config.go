package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every policy value the server reads from the environment.
// It is built once in main and handed to the storage initializers and the
// router; nothing reads the environment after startup.
type Config struct {
	ListenAddr string

	DatabaseDSN string
	RedisURL    string

	// AdminKey guards the reservation sync endpoint. Empty means the
	// endpoint is disabled (every call is rejected as unauthorized).
	AdminKey string

	// AllowedOrigins are CORS rules: exact origins or "*.suffix" wildcards.
	// An empty list allows every origin.
	AllowedOrigins []string

	// SessionTokenSecret signs the per-session upload credentials.
	SessionTokenSecret string

	ObjectStore ObjectStoreConfig
}

// ObjectStoreConfig carries the signed-API credentials for the blob store
// holding uploaded identity documents.
type ObjectStoreConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Load reads the process environment into a Config. A .env file is loaded
// first when present (development convenience, same as production ignoring it).
func Load() *Config {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	cfg := &Config{
		ListenAddr:         getenvDefault("LISTEN_ADDR", ":8080"),
		DatabaseDSN:        os.Getenv("DB_CONNECTION_STRING"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AdminKey:           os.Getenv("ADMIN_KEY"),
		AllowedOrigins:     splitOrigins(os.Getenv("APP_ALLOWED_ORIGINS")),
		SessionTokenSecret: os.Getenv("SESSION_TOKEN_SECRET"),
		ObjectStore: ObjectStoreConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
	}

	if cfg.DatabaseDSN == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}
	if cfg.SessionTokenSecret == "" {
		log.Panic("SESSION_TOKEN_SECRET environment variable is required")
	}
	if cfg.AdminKey == "" {
		log.Println("⚠️  ADMIN_KEY not set, reservation sync endpoint is disabled")
	}

	return cfg
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
