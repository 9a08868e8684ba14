package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	Remote RemoteConfig
	Sync   SyncConfig
}

type ServerConfig struct {
	AppEnv string
	UserID string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type RemoteConfig struct {
	BaseURL        string
	RecallBaseURL  string
	RequestTimeout int
	UserAgent      string
}

type SyncConfig struct {
	RefreshAfterDelete bool
}

// Timeout converts the configured seconds into a duration.
func (r RemoteConfig) Timeout() time.Duration {
	return time.Duration(r.RequestTimeout) * time.Second
}

func LoadEnv() *Config {
	baseURL := strings.TrimRight(getEnv("REMOTE_BASE_URL", "https://conso-maestro-backend.vercel.app"), "/")
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
			UserID: getEnv("CONSO_USER_ID", ""),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Remote: RemoteConfig{
			BaseURL:        baseURL,
			RecallBaseURL:  strings.TrimRight(getEnv("RECALL_BASE_URL", baseURL), "/"),
			RequestTimeout: getEnvInt("REMOTE_REQUEST_TIMEOUT_SECONDS", 10),
			UserAgent:      getEnv("REMOTE_USER_AGENT", "conso-sync/1.0"),
		},
		Sync: SyncConfig{
			RefreshAfterDelete: getEnvBool("REFRESH_AFTER_DELETE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
