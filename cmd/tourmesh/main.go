// Command tourmesh runs the travel assistant HTTP server: heuristic intent
// resolution by default, with the model-based extractor/clarifier and Redis
// session persistence enabled through configuration.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/tourmesh/tourmesh"
	"github.com/tourmesh/tourmesh/agent"
	"github.com/tourmesh/tourmesh/config"
	"github.com/tourmesh/tourmesh/core"
	"github.com/tourmesh/tourmesh/enhance"
	"github.com/tourmesh/tourmesh/geo"
	"github.com/tourmesh/tourmesh/logging"
	"github.com/tourmesh/tourmesh/model"
	anthropicmodel "github.com/tourmesh/tourmesh/model/anthropic"
	openaimodel "github.com/tourmesh/tourmesh/model/openai"
	"github.com/tourmesh/tourmesh/places"
	"github.com/tourmesh/tourmesh/server"
	sessionredis "github.com/tourmesh/tourmesh/session/redis"
	"github.com/tourmesh/tourmesh/weather"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, false)

	geocoder := geo.NewClient(func(o *geo.Options) {
		o.BaseURL = cfg.Geocoding.BaseURL
		o.UserAgent = cfg.Geocoding.UserAgent
		o.Timeout = time.Duration(cfg.Geocoding.TimeoutSeconds) * time.Second
	})
	weatherClient := weather.NewClient(geocoder, func(o *weather.Options) {
		o.BaseURL = cfg.Weather.BaseURL
		o.Timeout = time.Duration(cfg.Weather.TimeoutSeconds) * time.Second
	})
	placesClient := places.NewClient(geocoder, func(o *places.Options) {
		o.BaseURL = cfg.Places.BaseURL
		o.RadiusMeters = cfg.Places.RadiusMeters
		o.Timeout = time.Duration(cfg.Places.TimeoutSeconds) * time.Second
	})

	orchestrator := agent.NewOrchestrator(geocoder, weatherClient, placesClient, func(o *agent.Options) {
		o.PlacesLimit = cfg.Places.Limit
		o.Logger = logger
		if m := buildModel(cfg); m != nil {
			logger.Info("enhanced intent path enabled", "provider", m.Info().Provider, "model", m.Info().Name)
			o.Enhanced = enhance.NewModelExtractor(m)
			o.Clarifier = enhance.NewModelClarifier(m)
		}
	})

	engine := tourmesh.New(orchestrator, func(o *tourmesh.Options) {
		o.Logger = logger
		if store := buildHistoryStore(cfg, logger); store != nil {
			o.HistoryStore = store
		}
	})

	srv := server.New(engine, func(o *server.Options) {
		o.Logger = logger
	})
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildModel returns the configured provider model, or nil for heuristic-only mode.
func buildModel(cfg *config.Config) model.Model {
	switch cfg.Model.Provider {
	case "openai":
		return openaimodel.NewModel(func(o *openaimodel.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
		})
	case "anthropic":
		return anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
			o.APIKey = cfg.Model.APIKey
		})
	default:
		return nil
	}
}

// buildHistoryStore returns the Redis store when configured, nil to keep the
// in-memory default.
func buildHistoryStore(cfg *config.Config, logger logging.Logger) core.HistoryStore {
	if cfg.Session.Backend != "redis" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := sessionredis.NewStore(ctx, cfg.Session.RedisURL, func(o *sessionredis.Options) {
		o.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute
	})
	if err != nil {
		log.Fatalf("redis session store: %v", err)
	}
	logger.Info("redis session store enabled")
	return store
}
