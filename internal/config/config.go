package config

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress       string
	DatabaseURI      string
	JWTSecret        string
	AMQPURL          string
	SimulatedLatency time.Duration
	SessionTTL       time.Duration
}

func New() *Config {
	// a missing .env is fine, flags and the environment still apply
	_ = godotenv.Load(".env")

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "server address and port")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI, empty keeps client storage in memory")
	flag.StringVar(&cfg.JWTSecret, "s", "super-secret-jwt-key", "jwt signing key")
	flag.StringVar(&cfg.AMQPURL, "m", "", "rabbitmq URL for order events, empty disables publishing")
	flag.DurationVar(&cfg.SimulatedLatency, "l", time.Second, "artificial delay on login and order creation")
	flag.DurationVar(&cfg.SessionTTL, "t", 30*time.Minute, "idle time before a client session is evicted")
	flag.Parse()

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	cfg.SimulatedLatency = getEnvDuration("SIMULATED_LATENCY", cfg.SimulatedLatency)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", cfg.SessionTTL)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring malformed duration", "key", key, "value", value, "error", err)
		return fallback
	}
	return d
}
