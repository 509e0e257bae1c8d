package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process configuration for the beelight services.
type Config struct {
	// NATS
	NATSUrl    string
	NATSStream string

	// History store
	DuckDBPath string

	// MQTT (bridge)
	MQTTBroker           string
	MQTTClientID         string
	MQTTUsername         string
	MQTTPassword         string
	MQTTTopicIlluminance string
	MQTTTopicManual      string

	// Model parameters
	MinAmbient     int
	MaxAmbient     int
	BinCount       int
	TimeWeight     float64
	RecencyWeight  float64
	ActivityWeight float64

	// Agent housekeeping
	CleanupInterval time.Duration
}

// Load reads configuration from the environment, honoring a .env file when
// present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		NATSUrl:    getEnv("NATS_URL", "nats://localhost:4222"),
		NATSStream: getEnv("NATS_STREAM", "beelight"),

		DuckDBPath: getEnv("DUCKDB_PATH", "beelight.db"),

		MQTTBroker:           getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID:         getEnv("MQTT_CLIENT_ID", "beelight-bridge"),
		MQTTUsername:         getEnv("MQTT_USERNAME", ""),
		MQTTPassword:         getEnv("MQTT_PASSWORD", ""),
		MQTTTopicIlluminance: getEnv("MQTT_TOPIC_ILLUMINANCE", "sensor/+/illuminance"),
		MQTTTopicManual:      getEnv("MQTT_TOPIC_MANUAL", "display/+/manual"),

		MinAmbient:     getEnvInt("MODEL_MIN_AMBIENT", 0),
		MaxAmbient:     getEnvInt("MODEL_MAX_AMBIENT", 2000),
		BinCount:       getEnvInt("MODEL_BIN_COUNT", 10),
		TimeWeight:     getEnvFloat("MODEL_TIME_WEIGHT", 0.3),
		RecencyWeight:  getEnvFloat("MODEL_RECENCY_WEIGHT", 0.4),
		ActivityWeight: getEnvFloat("MODEL_ACTIVITY_WEIGHT", 0.3),

		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
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

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as duration, using default: %v", key, err)
		return defaultValue
	}
	return d
}
