package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	FeedSourceFreshRSS = "freshrss"
	FeedSourceRSS      = "rss"
)

type Config struct {
	FreshRSSAPI       string
	FreshRSSAuthToken string
	FeedSource        string
	FeedURL           string
	FetchLimit        int
	Timezone          string
	HTTPTimeout       time.Duration
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OllamaAPIURL      string
	RAMThreshold      float64
	RAMCheckInterval  time.Duration
	RAMGracePeriod    time.Duration
	TelegramToken     string
	TelegramChatID    int64
	DigestOutputDir   string
	MarkdownStyle     string
	LogLevel          string
}

func Load() *Config {
	return &Config{
		FreshRSSAPI:       getEnv("FRESHRSS_API", "http://localhost:8080/api/greader.php"),
		FreshRSSAuthToken: getEnv("FRESHRSS_AUTH_TOKEN", ""),
		FeedSource:        getEnv("FEED_SOURCE", FeedSourceFreshRSS),
		FeedURL:           getEnv("FEED_URL", ""),
		FetchLimit:        getEnvAsInt("FETCH_LIMIT", 0),
		Timezone:          getEnv("FEED_TIMEZONE", ""),
		HTTPTimeout:       getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OllamaAPIURL:      getEnv("OLLAMA_API_URL", "http://127.0.0.1:11434/api/generate"),
		RAMThreshold:      getEnvAsFloat("RAM_THRESHOLD", 80),
		RAMCheckInterval:  getEnvAsDuration("RAM_CHECK_INTERVAL", time.Second),
		RAMGracePeriod:    getEnvAsDuration("RAM_GRACE_PERIOD", 2*time.Second),
		TelegramToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		DigestOutputDir:   getEnv("DIGEST_OUTPUT_DIR", ""),
		MarkdownStyle:     getEnv("MARKDOWN_STYLE", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// Location resolves FEED_TIMEZONE. It falls back to the local zone when the
// variable is unset, and also when it is unknown, in which case the lookup
// error is returned alongside.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("unknown FEED_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
