package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        int
	LogLevel    string
	Backend     string // "ollama", "openai" or "anthropic"
	APIBaseURL  string
	Model       string
	Temperature float64
	Timeout     time.Duration
	APIKey      string // credential for CLI runs; the HTTP API takes it per request
	DatabaseURL string
	NatsURL     string
	NatsToken   string
	MaxSessions int
}

const (
	BackendOllama    = "ollama"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
)

func Load() Config {
	return Config{
		Port:        envInt("TYPECAST_PORT", 8760),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		Backend:     envStr("TYPECAST_BACKEND", BackendOllama),
		APIBaseURL:  envStr("TYPECAST_API_BASE_URL", "https://api-gateway.netdb.csie.ncku.edu.tw"),
		Model:       envStr("TYPECAST_MODEL", "gemma3:4b"),
		Temperature: envFloat("TYPECAST_TEMPERATURE", 0.7),
		Timeout:     time.Duration(envInt("TYPECAST_TIMEOUT_SECONDS", 60)) * time.Second,
		APIKey:      envStr("TYPECAST_API_KEY", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		MaxSessions: envInt("TYPECAST_MAX_SESSIONS", 256),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
