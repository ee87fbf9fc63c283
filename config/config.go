package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	RedisURL         string
	CacheTTL         time.Duration
	KafkaBrokers     []string
	OrderEventsTopic string
	UploadDir        string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. RedisURL and KafkaBrokers are optional; leaving them
// empty disables the catalog cache and the order event feed respectively.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	return Config{
		Port:             getEnv("PORT", "5000"),
		Env:              getEnv("ENV", "development"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:          getEnv("MONGO_DB", "amazon"),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		RedisURL:         os.Getenv("REDIS_URL"),
		CacheTTL:         getDuration("CACHE_TTL", 5*time.Minute),
		KafkaBrokers:     splitCSV(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order.events"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
