// Package redis provides a HistoryStore backed by Redis, for deployments
// where conversation histories must survive process restarts. Histories are
// stored as JSON values with a sliding TTL.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tourmesh/tourmesh/core"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 40 * time.Minute

// Options configure the Redis history store.
type Options struct {
	// TTL is refreshed on every Save.
	TTL time.Duration
	// KeyPrefix namespaces session keys.
	KeyPrefix string
}

// Store is a Redis-backed core.HistoryStore.
type Store struct {
	client *redis.Client
	opts   Options
}

// NewStore connects to Redis using a URL (redis://...) and verifies the
// connection with a ping.
func NewStore(ctx context.Context, url string, optFns ...func(o *Options)) (*Store, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewStoreFromClient(client, optFns...), nil
}

// NewStoreFromClient wraps an existing client.
func NewStoreFromClient(client *redis.Client, optFns ...func(o *Options)) *Store {
	opts := Options{TTL: DefaultTTL, KeyPrefix: "session:"}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{client: client, opts: opts}
}

// Get returns the stored history, or an empty one for unknown sessions.
func (s *Store) Get(ctx context.Context, sessionID string) ([]core.Turn, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	var history []core.Turn
	if err := json.Unmarshal([]byte(payload), &history); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return history, nil
}

// Save stores the history and refreshes the TTL.
func (s *Store) Save(ctx context.Context, sessionID string, history []core.Turn) error {
	payload, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("set session %s: %w", sessionID, err)
	}
	return nil
}

func (s *Store) key(sessionID string) string { return s.opts.KeyPrefix + sessionID }
