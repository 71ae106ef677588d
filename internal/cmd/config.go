package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the console client configuration, loaded from YAML with
// environment overrides.
type Config struct {
	Server struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Sync struct {
		PollIntervalMs  int `yaml:"poll_interval_ms"`
		BackoffMinMs    int `yaml:"backoff_min_ms"`
		BackoffMaxMs    int `yaml:"backoff_max_ms"`
		OptimisticTTLMs int `yaml:"optimistic_ttl_ms"`
	} `yaml:"sync"`

	Client struct {
		StatePath string `yaml:"state_path"`
		ChatRoom  string `yaml:"chat_room"`
		LogLevel  string `yaml:"log_level"`
	} `yaml:"client"`
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

func loadConfig(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Server.BaseURL = getEnv("AUCTION_BASE_URL", config.Server.BaseURL)
	config.Sync.PollIntervalMs = getEnvAsInt("AUCTION_POLL_INTERVAL_MS", orDefault(config.Sync.PollIntervalMs, 4000))
	config.Sync.BackoffMinMs = getEnvAsInt("AUCTION_BACKOFF_MIN_MS", orDefault(config.Sync.BackoffMinMs, 1000))
	config.Sync.BackoffMaxMs = getEnvAsInt("AUCTION_BACKOFF_MAX_MS", orDefault(config.Sync.BackoffMaxMs, 30000))
	config.Sync.OptimisticTTLMs = getEnvAsInt("AUCTION_OPTIMISTIC_TTL_MS", orDefault(config.Sync.OptimisticTTLMs, 10000))
	config.Client.StatePath = getEnv("AUCTION_STATE_PATH", orDefaultStr(config.Client.StatePath, ".auction-state.json"))
	config.Client.ChatRoom = getEnv("AUCTION_CHAT_ROOM", orDefaultStr(config.Client.ChatRoom, "auction"))
	config.Client.LogLevel = getEnv("AUCTION_LOG_LEVEL", orDefaultStr(config.Client.LogLevel, "info"))

	if config.Server.BaseURL == "" {
		return nil, fmt.Errorf("server base URL is required (AUCTION_BASE_URL)")
	}

	return &config, nil
}

func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func orDefaultStr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) pollInterval() time.Duration {
	return time.Duration(c.Sync.PollIntervalMs) * time.Millisecond
}

func (c *Config) backoffMin() time.Duration {
	return time.Duration(c.Sync.BackoffMinMs) * time.Millisecond
}

func (c *Config) backoffMax() time.Duration {
	return time.Duration(c.Sync.BackoffMaxMs) * time.Millisecond
}

func (c *Config) optimisticTTL() time.Duration {
	return time.Duration(c.Sync.OptimisticTTLMs) * time.Millisecond
}
