package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Env      string
	Server   ServerConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Geocoder GeocoderConfig
	Overpass OverpassConfig
	Events   EventsConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig controls whether upstream lookups are cached in Redis
type CacheConfig struct {
	Enabled           bool
	ContentTTLSeconds int
	GeocodeTTLSeconds int
	WarmLocations     []string
}

// GeocoderConfig holds the geocoding provider configuration
type GeocoderConfig struct {
	Provider        string
	APIKey          string
	BaseURL         string
	UserAgent       string
	CountryCode     string
	CountryName     string
	Timeout         time.Duration
	CacheTTLSeconds int
}

// OverpassConfig holds the facility query service configuration
type OverpassConfig struct {
	URL             string
	UserAgent       string
	RadiusMeters    int
	ResultLimit     int
	ServerTimeout   time.Duration
	Timeout         time.Duration
	CacheTTLSeconds int
}

// EventsConfig controls publishing of search events over Redis pub/sub
type EventsConfig struct {
	Enabled bool
	Channel string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "production"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Enabled:           getEnvAsBool("CACHE_ENABLED", false),
			ContentTTLSeconds: getEnvAsInt("CACHE_CONTENT_TTL_SECONDS", 1800),
			GeocodeTTLSeconds: getEnvAsInt("CACHE_GEOCODE_TTL_SECONDS", 3600),
			WarmLocations:     getEnvAsList("CACHE_WARM_LOCATIONS"),
		},
		Geocoder: GeocoderConfig{
			Provider:        getEnv("GEOCODER_PROVIDER", "nominatim"),
			APIKey:          getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL:         getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/search"),
			UserAgent:       getEnv("GEOCODER_USER_AGENT", "HPV-Prevention-Website/2.0"),
			CountryCode:     getEnv("GEOCODER_COUNTRY_CODE", "in"),
			CountryName:     getEnv("GEOCODER_COUNTRY_NAME", "India"),
			Timeout:         getEnvAsDuration("GEOCODER_TIMEOUT", 15*time.Second),
			CacheTTLSeconds: getEnvAsInt("GEOCODER_CACHE_TTL_SECONDS", 60*60*24*7),
		},
		Overpass: OverpassConfig{
			URL:             getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			UserAgent:       getEnv("OVERPASS_USER_AGENT", "HPV-Prevention-Website/2.0"),
			RadiusMeters:    getEnvAsInt("OVERPASS_RADIUS_METERS", 15000),
			ResultLimit:     getEnvAsInt("OVERPASS_RESULT_LIMIT", 10),
			ServerTimeout:   getEnvAsDuration("OVERPASS_SERVER_TIMEOUT", 25*time.Second),
			Timeout:         getEnvAsDuration("OVERPASS_TIMEOUT", 40*time.Second),
			CacheTTLSeconds: getEnvAsInt("OVERPASS_CACHE_TTL_SECONDS", 60*60),
		},
		Events: EventsConfig{
			Enabled: getEnvAsBool("SEARCH_EVENTS_ENABLED", false),
			Channel: getEnv("SEARCH_EVENTS_CHANNEL", "hpv:searches"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hpv-prevention"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if cfg.Overpass.RadiusMeters <= 0 {
		return nil, fmt.Errorf("OVERPASS_RADIUS_METERS must be positive, got %d", cfg.Overpass.RadiusMeters)
	}
	if cfg.Overpass.ResultLimit <= 0 {
		return nil, fmt.Errorf("OVERPASS_RESULT_LIMIT must be positive, got %d", cfg.Overpass.ResultLimit)
	}

	return cfg, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
