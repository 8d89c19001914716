package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client and server configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Auth   AuthConfig   `yaml:"auth"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
}

type APIConfig struct {
	URL            string        `yaml:"url"`
	Timeout        time.Duration `yaml:"timeout"`
	ProcessTimeout time.Duration `yaml:"process_timeout"`
}

// AuthConfig selects the token source. A static Token wins over client
// credentials.
type AuthConfig struct {
	Token        string   `yaml:"token"`
	TokenURL     string   `yaml:"token_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Scopes       []string `yaml:"scopes"`
}

type CacheConfig struct {
	StaleTime    time.Duration `yaml:"stale_time"`
	StatsRefresh time.Duration `yaml:"stats_refresh"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			URL:            "http://localhost:8080",
			Timeout:        30 * time.Second,
			ProcessTimeout: 10 * time.Minute,
		},
		Cache: CacheConfig{
			StaleTime:    time.Minute,
			StatsRefresh: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "clipdeck.db",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CLIPDECK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	setString(&cfg.API.URL, "CLIPDECK_API_URL")
	setString(&cfg.Auth.Token, "CLIPDECK_TOKEN")
	setString(&cfg.Auth.TokenURL, "CLIPDECK_TOKEN_URL")
	setString(&cfg.Auth.ClientID, "CLIPDECK_CLIENT_ID")
	setString(&cfg.Auth.ClientSecret, "CLIPDECK_CLIENT_SECRET")
	setString(&cfg.Log.Level, "CLIPDECK_LOG_LEVEL")
	setString(&cfg.Log.Path, "CLIPDECK_LOG_PATH")
	setString(&cfg.Server.Host, "CLIPDECK_SERVER_HOST")
	setString(&cfg.DB.Path, "CLIPDECK_DB_PATH")

	if portStr := os.Getenv("CLIPDECK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CLIPDECK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"CLIPDECK_API_TIMEOUT", &cfg.API.Timeout},
		{"CLIPDECK_PROCESS_TIMEOUT", &cfg.API.ProcessTimeout},
		{"CLIPDECK_STALE_TIME", &cfg.Cache.StaleTime},
		{"CLIPDECK_STATS_REFRESH", &cfg.Cache.StatsRefresh},
	}
	for _, d := range durations {
		raw := os.Getenv(d.env)
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", d.env, err)
		}
		*d.dst = v
	}

	return cfg, nil
}

// Addr returns the server listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
