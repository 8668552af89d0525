package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Port           string
	DBDriver       string
	DBDSN          string
	JWTSecret      string
	JWTTTL         time.Duration
	UploadDir      string
	PublicBaseURL  string
	OfficeCacheTTL time.Duration
	SweepInterval  time.Duration
	LogLevel       string
	LogFormat      string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           GetEnv("APP_PORT", "3000"),
		DBDriver:       GetEnv("DB_DRIVER", "mysql"),
		DBDSN:          GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/presence_db?charset=utf8mb4&parseTime=True&loc=UTC"),
		JWTSecret:      GetEnv("JWT_SECRET", "change-me"),
		JWTTTL:         time.Duration(GetEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		UploadDir:      GetEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:  GetEnv("PUBLIC_BASE_URL", ""),
		OfficeCacheTTL: time.Duration(GetEnvAsInt("OFFICE_CACHE_TTL_SECONDS", 300)) * time.Second,
		SweepInterval:  time.Duration(GetEnvAsInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		LogFormat:      GetEnv("LOG_FORMAT", "text"),
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
