package cartstore

import (
	"context"

	"github.com/dukerupert/skadi/internal"
	"github.com/dukerupert/skadi/internal/domain"
)

// State is the persisted mirror of the cart engine's state: three independent
// keys, each a serialized array. It carries no derived values; those are
// recomputed from the line items on every read.
type State struct {
	Items          []domain.LineItem
	SavedItems     []domain.LineItem
	RecentlyViewed []domain.ProductRef
}

// Store defines the interface for the durable local cart mirror.
// Implementations can use the filesystem, Redis, or any other key-value
// backend. Load is called once at engine initialization; the Save methods are
// called after each relevant mutation and must be safe to drop on failure —
// the engine logs and ignores persistence errors.
type Store interface {
	// Load reads all three keys. Missing keys yield empty slices, not errors.
	Load(ctx context.Context) (*State, error)

	// SaveItems rewrites the active cart line items.
	SaveItems(ctx context.Context, items []domain.LineItem) error

	// SaveSavedItems rewrites the saved-for-later list.
	SaveSavedItems(ctx context.Context, items []domain.LineItem) error

	// SaveRecentlyViewed rewrites the recently-viewed history.
	SaveRecentlyViewed(ctx context.Context, products []domain.ProductRef) error
}

// NewStore creates a Store implementation based on configuration.
// Returns a LocalStore for the "local" provider, a RedisStore for "redis".
func NewStore(cfg internal.CartStoreConfig) (Store, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStore(cfg.DataDir)
	case "redis":
		return NewRedisStore(RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
