// Package config loads the Tourmesh configuration from an optional YAML
// file with environment overrides. Defaults are safe for local development
// against the public Nominatim / Open-Meteo / Overpass endpoints.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Geocoding struct {
		BaseURL        string `yaml:"base_url"`
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"geocoding"`

	Weather struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"weather"`

	Places struct {
		BaseURL        string `yaml:"base_url"`
		RadiusMeters   int    `yaml:"radius_meters"`
		Limit          int    `yaml:"limit"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"places"`

	// Model enables the language-model-based extractor/clarifier when a
	// provider is set ("openai" or "anthropic"). Empty means heuristic only.
	Model struct {
		Provider string `yaml:"provider"`
		Name     string `yaml:"name"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"model"`

	Session struct {
		// Backend selects the history store: "memory" or "redis".
		Backend    string `yaml:"backend"`
		RedisURL   string `yaml:"redis_url"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"session"`
}

// Default returns the baseline configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":5000"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Geocoding.BaseURL = "https://nominatim.openstreetmap.org/search"
	cfg.Geocoding.UserAgent = "tourmesh/1.0"
	cfg.Geocoding.TimeoutSeconds = 10
	cfg.Weather.BaseURL = "https://api.open-meteo.com/v1/forecast"
	cfg.Weather.TimeoutSeconds = 10
	cfg.Places.BaseURL = "https://overpass-api.de/api/interpreter"
	cfg.Places.RadiusMeters = 20000
	cfg.Places.Limit = 5
	cfg.Places.TimeoutSeconds = 30
	cfg.Session.Backend = "memory"
	cfg.Session.TTLMinutes = 40
	return cfg
}

// Load reads the YAML file at path (skipped when path is empty) over the
// defaults and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv maps the environment variables the original deployment used onto
// the config.
func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		c.Session.RedisURL = url
		c.Session.Backend = "redis"
	}
	if provider := os.Getenv("MODEL_PROVIDER"); provider != "" {
		c.Model.Provider = provider
	}
	if name := os.Getenv("MODEL_NAME"); name != "" {
		c.Model.Name = name
	}
	if key := os.Getenv("MODEL_API_KEY"); key != "" {
		c.Model.APIKey = key
	}
}
