package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	DBDriver        string
	DatabaseURL     string
	RedisAddr       string
	SessionBackend  string
	SessionTTL      time.Duration
	JWTIssuer       string
	JWTSigningKey   string
	AccessTTL       time.Duration
	AdminEmail      string
	AdminPassword   string
	RateLimitPerMin int

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// Load returns application config populated from environment variables with
// sensible defaults. A .env file in the working directory is honored when
// present.
func Load() App {
	_ = godotenv.Load()

	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		DatabaseURL:     getEnv("DATABASE_URL", "file:campusattend.db?_fk=1"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		SessionBackend:  getEnv("SESSION_BACKEND", "memory"),
		SessionTTL:      durationEnv("SESSION_TTL", 12*time.Hour),
		JWTIssuer:       getEnv("JWT_ISSUER", "campusattend"),
		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		AccessTTL:       durationEnv("ACCESS_TTL", 15*time.Minute),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@campusattend.local"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "change-me-now"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "campusattend"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
