package config

import (
	"log"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port         string
	DBDriver     string
	DBDSN        string
	LogFile      string
	JWTSecret    string
	TokenTTL     time.Duration
	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string
	CORSOrigins  string
	CookieSecure bool
	ServiceName  string
}

func Load() Config {
	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DBDriver:     getenv("DB_DRIVER", "sqlite"),
		DBDSN:        getenv("DB_DSN", "storeadmin.db"), // sqlite file in project root
		LogFile:      os.Getenv("LOG_FILE"),
		JWTSecret:    getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:     duration(getenv("TOKEN_TTL", "24h"), 24*time.Hour),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "storeadmin.entities"),
		CORSOrigins:  getenv("CORS_ORIGINS", "*"),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		ServiceName:  getenv("SERVICE_NAME", "storeadmin"),
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s REDIS_ADDR=%s KAFKA_BROKERS=%v",
		cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.LogFile, cfg.RedisAddr, cfg.KafkaBrokers)
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("[warn] bad duration %q, using %s", s, def)
		return def
	}
	return d
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
