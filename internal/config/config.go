package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Fetch pacing at speed 1.0: five concurrent requests per batch, four
// seconds of quiet between batches. The single ANIMEHUB_SPEED knob
// scales both.
const (
	baseBatchSize  = 5
	baseBatchDelay = 4 * time.Second
)

type Config struct {
	MALClientID string  // X-MAL-CLIENT-ID credential for the list service
	Speed       float64 // pacing multiplier, > 0
	DataDir     string  // intermediate CSV directory
	Port        string  // api-server listen port
}

// Load reads configuration from the environment, after best-effort
// loading of a local .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	speed := 1.0
	if raw := getEnv("ANIMEHUB_SPEED", ""); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			log.Printf("[config] invalid ANIMEHUB_SPEED %q, using 1.0", raw)
		} else {
			speed = v
		}
	}

	return Config{
		MALClientID: getEnv("ANIMEHUB_MAL_CLIENT_ID", ""),
		Speed:       speed,
		DataDir:     getEnv("ANIMEHUB_DATA_DIR", "data"),
		Port:        getEnv("ANIMEHUB_PORT", "8080"),
	}
}

// BatchSize is how many usernames are fetched concurrently per batch.
func (c Config) BatchSize() int {
	n := int(baseBatchSize * c.Speed)
	if n < 1 {
		n = 1
	}
	return n
}

// InterBatchDelay is the pause between consecutive batches.
func (c Config) InterBatchDelay() time.Duration {
	if c.Speed <= 0 {
		return baseBatchDelay
	}
	return time.Duration(float64(baseBatchDelay) / c.Speed)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
