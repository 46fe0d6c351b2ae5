package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	UploadDirectory  string
	CollageDirectory string
	DatabasePath     string
	LogDirectory     string
	CollageInterval  int   // Seconds between collage ticks
	CanvasWidth      int   // Collage canvas width in pixels (A4 at 300 DPI)
	CanvasHeight     int   // Collage canvas height in pixels
	MaxUploadSize    int64 // Maximum upload size in MB
}

func Load() *Config {
	// Optional .env file; env vars win when both are set.
	_ = godotenv.Load()

	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		UploadDirectory:  getEnv("UPLOAD_DIR", filepath.Join(".", "uploads")),
		CollageDirectory: getEnv("COLLAGE_DIR", filepath.Join(".", "collages")),
		DatabasePath:     getEnv("DB_PATH", filepath.Join(".", "data", "collages.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		CollageInterval:  getEnvAsInt("COLLAGE_INTERVAL", 60),
		CanvasWidth:      getEnvAsInt("CANVAS_WIDTH", 2480),
		CanvasHeight:     getEnvAsInt("CANVAS_HEIGHT", 3508),
		MaxUploadSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 32), // MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
