package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv                 string
	LogLevel               slog.Level
	ApiServicePort         string
	PostgreSQLHost         string
	PostgreSQLPort         int64
	PostgreSQLUser         string
	PostgreSQLPassword     string
	PostgreSQLDatabase     string
	JWTSecret              string
	AccessTokenExpiration  int64
	RefreshTokenExpiration int64
	RedisHost              string
	RedisPort              int64
	RedisPassword          string
	RedisDB                int64
	WeatherAPIURL          string
	WeatherAPIKey          string
	WeatherTimeout         int64 // Weather lookup timeout in seconds
	WeatherCacheTTL        int64 // Cached weather TTL in seconds
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),                    // Default development
		LogLevel:               getLogLevel(),                                       // Default INFO
		ApiServicePort:         getEnv("API_SERVICE_PORT", "8080"),                  // Default 8080
		PostgreSQLHost:         getEnv("POSTGRESQL_HOST", "db"),                     // Default db
		PostgreSQLPort:         getEnvAsInt64("POSTGRESQL_PORT", 5432),              // Default 5432
		PostgreSQLUser:         getEnv("POSTGRESQL_USER", "lockerhub_user"),         // Default user
		PostgreSQLPassword:     getEnv("POSTGRESQL_PASSWORD", "lockerhub_password"), // Default password
		PostgreSQLDatabase:     getEnv("POSTGRESQL_DATABASE", "lockerhub_db"),       // Default database name
		JWTSecret:              getEnv("JWT_SECRET", "lockerhub_secret"),            // Default secret key
		AccessTokenExpiration:  getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),       // Default 15 minutes
		RefreshTokenExpiration: getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800),   // Default 7 days
		RedisHost:              getEnv("REDIS_HOST", "redis"),                       // Default redis
		RedisPort:              getEnvAsInt64("REDIS_PORT", 6379),                   // Default 6379
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),                        // Default empty
		RedisDB:                getEnvAsInt64("REDIS_DATABASE", 0),                  // Default 0
		WeatherAPIURL:          getEnv("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherAPIKey:          getEnv("WEATHER_API_KEY", ""),         // Empty disables lookups
		WeatherTimeout:         getEnvAsInt64("WEATHER_TIMEOUT", 3),   // Default 3 seconds
		WeatherCacheTTL:        getEnvAsInt64("WEATHER_CACHE_TTL", 600), // Default 10 minutes
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
