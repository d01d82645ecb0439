package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dukerupert/skadi/internal/domain"
)

// Names of the three persisted keys.
const (
	itemsKey          = "cart_items"
	savedItemsKey     = "saved_items"
	recentlyViewedKey = "recently_viewed"
)

// LocalStore implements Store using JSON files on the local filesystem.
// This is the default implementation for single-device deployments.
type LocalStore struct {
	basePath string // Root directory for cart state (e.g., "./data")
}

// NewLocalStore creates a new local filesystem store.
// basePath is created if it doesn't exist.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cart store directory: %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

// Load reads all three keys from disk. Missing files yield empty slices.
func (s *LocalStore) Load(ctx context.Context) (*State, error) {
	state := &State{}

	if err := s.read(itemsKey, &state.Items); err != nil {
		return nil, err
	}
	if err := s.read(savedItemsKey, &state.SavedItems); err != nil {
		return nil, err
	}
	if err := s.read(recentlyViewedKey, &state.RecentlyViewed); err != nil {
		return nil, err
	}

	return state, nil
}

// SaveItems rewrites the active cart line items.
func (s *LocalStore) SaveItems(ctx context.Context, items []domain.LineItem) error {
	return s.write(itemsKey, items)
}

// SaveSavedItems rewrites the saved-for-later list.
func (s *LocalStore) SaveSavedItems(ctx context.Context, items []domain.LineItem) error {
	return s.write(savedItemsKey, items)
}

// SaveRecentlyViewed rewrites the recently-viewed history.
func (s *LocalStore) SaveRecentlyViewed(ctx context.Context, products []domain.ProductRef) error {
	return s.write(recentlyViewedKey, products)
}

func (s *LocalStore) read(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.basePath, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return nil
}

func (s *LocalStore) write(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	fullPath := filepath.Join(s.basePath, name+".json")
	tmpPath := fullPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}
