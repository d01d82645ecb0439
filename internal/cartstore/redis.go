package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dukerupert/skadi/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis-backed store.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string // Scopes keys per device/session, e.g. "pos-terminal-1"
}

// RedisStore implements Store using Redis. Used when cart state should
// survive the device, e.g. shared point-of-sale terminals.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "cart"
	}

	return &RedisStore{client: client, keyPrefix: prefix}, nil
}

// Load reads all three keys. Missing keys yield empty slices.
func (s *RedisStore) Load(ctx context.Context) (*State, error) {
	state := &State{}

	if err := s.read(ctx, itemsKey, &state.Items); err != nil {
		return nil, err
	}
	if err := s.read(ctx, savedItemsKey, &state.SavedItems); err != nil {
		return nil, err
	}
	if err := s.read(ctx, recentlyViewedKey, &state.RecentlyViewed); err != nil {
		return nil, err
	}

	return state, nil
}

// SaveItems rewrites the active cart line items.
func (s *RedisStore) SaveItems(ctx context.Context, items []domain.LineItem) error {
	return s.write(ctx, itemsKey, items)
}

// SaveSavedItems rewrites the saved-for-later list.
func (s *RedisStore) SaveSavedItems(ctx context.Context, items []domain.LineItem) error {
	return s.write(ctx, savedItemsKey, items)
}

// SaveRecentlyViewed rewrites the recently-viewed history.
func (s *RedisStore) SaveRecentlyViewed(ctx context.Context, products []domain.ProductRef) error {
	return s.write(ctx, recentlyViewedKey, products)
}

func (s *RedisStore) key(name string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, name)
}

func (s *RedisStore) read(ctx context.Context, name string, v interface{}) error {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %s failed: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return nil
}

func (s *RedisStore) write(ctx context.Context, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", name, err)
	}

	return nil
}
