package main

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the service reads from the environment. It is
// built once in main and handed to the server; nothing else touches os.Getenv
// at request time.
type Config struct {
	Port    string
	LogFile string

	// Oxylabs realtime API
	OxylabsEndpoint string
	OxylabsUsername string
	OxylabsPassword string

	RequestTimeout time.Duration
	Retries        int
	BackoffBase    time.Duration

	// Outbound throttling
	RequestsPerSecond float64
	DetailDelay       time.Duration

	// Request defaults
	DefaultPages       int
	DefaultMaxProducts int
	MaxDetailTokens    int

	// Optional Redis response cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// GCP Memorystore instance lookup for the Redis CA certs
	ProjectID  string
	Region     string
	InstanceID string
}

func loadConfig() Config {
	return Config{
		Port:    getEnvWithDefault("PORT", "8080"),
		LogFile: getEnvWithDefault("LOG_FILE", "gocompare_api.log"),

		OxylabsEndpoint: getEnvWithDefault("OXYLABS_ENDPOINT", "https://realtime.oxylabs.io/v1/queries"),
		OxylabsUsername: os.Getenv("OXYLABS_USERNAME"),
		OxylabsPassword: os.Getenv("OXYLABS_PASSWORD"),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 45*time.Second),
		Retries:        getEnvInt("OXYLABS_RETRIES", 3),
		BackoffBase:    getEnvDuration("BACKOFF_BASE", 2*time.Second),

		RequestsPerSecond: getEnvFloat("REQUESTS_PER_SECOND", 5),
		DetailDelay:       getEnvDuration("DETAIL_DELAY", time.Second),

		DefaultPages:       getEnvInt("DEFAULT_PAGES", 1),
		DefaultMaxProducts: getEnvInt("DEFAULT_MAX_PRODUCTS", 10),
		MaxDetailTokens:    getEnvInt("MAX_DETAIL_TOKENS", 20),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 15*time.Minute),

		ProjectID:  os.Getenv("PROJECT_ID"),
		Region:     os.Getenv("REGION"),
		InstanceID: os.Getenv("INSTANCE_ID"),
	}
}

// Get environment variable, return default value if not set
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logMessage(LogLevelWarning, "Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logMessage(LogLevelWarning, "Invalid number for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logMessage(LogLevelWarning, "Invalid duration for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
