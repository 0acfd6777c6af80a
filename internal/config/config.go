package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Kakao     KakaoConfig
	VWorld    VWorldConfig
	Elevation ElevationConfig
	Server    ServerConfig
	Survey    SurveyConfig
}

// KakaoConfig holds Kakao Local API configuration (reverse geocoding and
// place-keyword search).
type KakaoConfig struct {
	RESTKey string
	BaseURL string
	// RateLimit is requests per second against the Kakao API.
	RateLimit float64
	Enabled   bool
}

// VWorldConfig holds the VWorld building-registry API configuration.
type VWorldConfig struct {
	APIKey    string
	BaseURL   string
	RateLimit float64
	Enabled   bool
}

// ElevationConfig holds the open elevation service configuration.
type ElevationConfig struct {
	BaseURL   string
	RateLimit float64
	Enabled   bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SurveyConfig holds session defaults.
type SurveyConfig struct {
	DefaultLat     float64
	DefaultLng     float64
	LookupTimeout  time.Duration
	CachePrecision int
	SchemaPath     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Kakao: KakaoConfig{
			RESTKey:   getEnv("KAKAO_REST_KEY", ""),
			BaseURL:   getEnv("KAKAO_BASE_URL", "https://dapi.kakao.com"),
			RateLimit: getEnvAsFloat("KAKAO_RATE_LIMIT", 10),
			Enabled:   getEnv("KAKAO_REST_KEY", "") != "",
		},
		VWorld: VWorldConfig{
			APIKey:    getEnv("VWORLD_API_KEY", ""),
			BaseURL:   getEnv("VWORLD_BASE_URL", "https://api.vworld.kr"),
			RateLimit: getEnvAsFloat("VWORLD_RATE_LIMIT", 5),
			Enabled:   getEnv("VWORLD_API_KEY", "") != "",
		},
		Elevation: ElevationConfig{
			BaseURL:   getEnv("ELEVATION_BASE_URL", "https://api.open-elevation.com"),
			RateLimit: getEnvAsFloat("ELEVATION_RATE_LIMIT", 1),
			Enabled:   getEnvAsBool("ELEVATION_ENABLED", true),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Survey: SurveyConfig{
			DefaultLat:     getEnvAsFloat("SURVEY_DEFAULT_LAT", 37.566826),
			DefaultLng:     getEnvAsFloat("SURVEY_DEFAULT_LNG", 126.9786567),
			LookupTimeout:  getEnvAsDuration("SURVEY_LOOKUP_TIMEOUT", 2*time.Second),
			CachePrecision: getEnvAsInt("SURVEY_CACHE_PRECISION", 4),
			SchemaPath:     getEnv("SURVEY_SCHEMA_PATH", ""),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
