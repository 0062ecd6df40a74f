package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env               string
	HTTPAddr          string
	StoreMode         string
	MongoURI          string
	MongoDB           string
	KafkaBrokers      []string
	KafkaTopicPrefix  string
	LodgifyAPIURL     string
	LodgifyAPIKey     string
	LodgifyPropertyID string
	ICalFeedURL       string
	SourceCacheTTL    time.Duration
	HTTPClientTimeout time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StoreMode:         strings.ToLower(getEnv("STORE_MODE", "memory")),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "gitecal"),
		KafkaTopicPrefix:  getEnv("KAFKA_TOPIC_PREFIX", ""),
		LodgifyAPIURL:     getEnv("LODGIFY_API_URL", "https://api.lodgify.com/v2"),
		LodgifyAPIKey:     os.Getenv("LODGIFY_API_KEY"),
		LodgifyPropertyID: os.Getenv("LODGIFY_PROPERTY_ID"),
		ICalFeedURL:       os.Getenv("ICAL_FEED_URL"),
	}

	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	ttl, err := parseDurationEnv("SOURCE_CACHE_TTL", time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SourceCacheTTL = ttl

	clientTimeout, err := parseDurationEnv("HTTP_CLIENT_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTPClientTimeout = clientTimeout

	switch cfg.StoreMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_MODE %q", cfg.StoreMode)
	}

	if cfg.LodgifyAPIKey == "" {
		return Config{}, fmt.Errorf("LODGIFY_API_KEY is required")
	}
	if cfg.LodgifyPropertyID == "" {
		return Config{}, fmt.Errorf("LODGIFY_PROPERTY_ID is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
