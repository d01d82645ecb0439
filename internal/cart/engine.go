// Package cart implements the in-memory cart state machine. The engine owns
// all cart state (active items, saved-for-later items, recently-viewed
// history, applied discount) and is the only writer; every mutation runs
// under one mutex so callers never observe a half-applied change.
package cart

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/dukerupert/skadi/internal/catalog"
	"github.com/dukerupert/skadi/internal/cartstore"
	"github.com/dukerupert/skadi/internal/discount"
	"github.com/dukerupert/skadi/internal/domain"
	"github.com/dukerupert/skadi/internal/events"
	"github.com/dukerupert/skadi/internal/recommend"
	"github.com/dukerupert/skadi/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Mutation actions reported in events and metrics.
const (
	ActionAdd            = "add"
	ActionRemove         = "remove"
	ActionUpdateQuantity = "update_quantity"
	ActionClear          = "clear"
	ActionSaveForLater   = "save_for_later"
	ActionMoveToCart     = "move_to_cart"
	ActionRemoveSaved    = "remove_saved"
	ActionAddNote        = "add_note"
	ActionApplyDiscount  = "apply_discount"
	ActionClearDiscount  = "clear_discount"
	ActionRecentlyViewed = "recently_viewed"
)

const persistTimeout = 5 * time.Second

// Config carries the engine's collaborators. Store may be nil to disable
// persistence; Publisher, Discounts, Recommender and Metrics fall back to
// working defaults when nil.
type Config struct {
	Store       cartstore.Store
	Discounts   *discount.Engine
	Recommender *recommend.Engine
	Catalog     catalog.Provider
	Publisher   events.Publisher
	Metrics     *telemetry.BusinessMetrics
	Logger      zerolog.Logger
}

// Engine is the cart state machine.
type Engine struct {
	mu             sync.Mutex
	items          []domain.LineItem
	savedItems     []domain.LineItem
	recentlyViewed []domain.ProductRef
	discountCents  int64

	store       cartstore.Store
	discounts   *discount.Engine
	recommender *recommend.Engine
	catalog     catalog.Provider
	publisher   events.Publisher
	metrics     *telemetry.BusinessMetrics
	logger      zerolog.Logger

	saveMu    sync.Mutex
	persistWG sync.WaitGroup
}

// NewEngine creates the engine and restores persisted state from the store.
// A failed restore is logged and the engine starts empty; it never blocks
// startup.
func NewEngine(ctx context.Context, cfg Config) *Engine {
	if cfg.Discounts == nil {
		cfg.Discounts = discount.NewEngine()
	}
	if cfg.Recommender == nil {
		cfg.Recommender = recommend.NewEngine()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NewNoopPublisher()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = telemetry.NewBusinessMetrics(prometheus.NewRegistry(), "")
	}

	e := &Engine{
		store:       cfg.Store,
		discounts:   cfg.Discounts,
		recommender: cfg.Recommender,
		catalog:     cfg.Catalog,
		publisher:   cfg.Publisher,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}

	if e.store != nil {
		state, err := e.store.Load(ctx)
		if err != nil {
			e.logger.Warn().Err(err).Msg("failed to restore cart state, starting empty")
		} else {
			e.items = state.Items
			e.savedItems = state.SavedItems
			e.recentlyViewed = state.RecentlyViewed
			if len(e.recentlyViewed) > domain.RecentlyViewedMax {
				e.recentlyViewed = e.recentlyViewed[:domain.RecentlyViewedMax]
			}
		}
	}

	return e
}

// AddItem merges the item into the cart. An existing line with the same ID
// absorbs the quantity; otherwise the item is appended. Quantities below 1
// are treated as 1.
func (e *Engine) AddItem(ctx context.Context, item domain.LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	e.mu.Lock()
	if i := indexOf(e.items, item.ID); i >= 0 {
		e.items[i].Quantity += item.Quantity
	} else {
		e.items = append(e.items, item)
	}
	e.afterItemsMutation(ctx, ActionAdd)
	e.mu.Unlock()
}

// RemoveItem deletes the line with the given ID. Unknown IDs are a no-op.
func (e *Engine) RemoveItem(ctx context.Context, id string) {
	e.mu.Lock()
	if i := indexOf(e.items, id); i >= 0 {
		e.items = append(e.items[:i], e.items[i+1:]...)
		e.afterItemsMutation(ctx, ActionRemove)
	}
	e.mu.Unlock()
}

// UpdateQuantity sets the quantity of the line with the given ID. A quantity
// of zero or less removes the line. Unknown IDs are a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, id string, quantity int) {
	e.mu.Lock()
	if i := indexOf(e.items, id); i >= 0 {
		if quantity <= 0 {
			e.items = append(e.items[:i], e.items[i+1:]...)
		} else {
			e.items[i].Quantity = quantity
		}
		e.afterItemsMutation(ctx, ActionUpdateQuantity)
	}
	e.mu.Unlock()
}

// AddNote attaches a free-text note to the line with the given ID. Unknown
// IDs are a no-op.
func (e *Engine) AddNote(ctx context.Context, id, note string) {
	e.mu.Lock()
	if i := indexOf(e.items, id); i >= 0 {
		e.items[i].Note = note
		e.afterItemsMutation(ctx, ActionAddNote)
	}
	e.mu.Unlock()
}

// ClearCart empties the active items and drops any applied discount. Saved
// items and the recently-viewed history survive.
func (e *Engine) ClearCart(ctx context.Context) {
	e.mu.Lock()
	e.items = nil
	e.discountCents = 0
	e.afterItemsMutation(ctx, ActionClear)
	e.mu.Unlock()
}

// SaveForLater moves the line with the given ID from the cart to the saved
// list. If the ID already exists in the saved list the entry is replaced, so
// the two lists never share an ID. Unknown IDs are a no-op.
func (e *Engine) SaveForLater(ctx context.Context, id string) {
	e.mu.Lock()
	if i := indexOf(e.items, id); i >= 0 {
		item := e.items[i]
		e.items = append(e.items[:i], e.items[i+1:]...)
		if j := indexOf(e.savedItems, id); j >= 0 {
			e.savedItems[j] = item
		} else {
			e.savedItems = append(e.savedItems, item)
		}
		e.metrics.SavedForLater.Inc()
		e.persistSavedItems()
		e.afterItemsMutation(ctx, ActionSaveForLater)
	}
	e.mu.Unlock()
}

// MoveToCart moves the line with the given ID from the saved list back into
// the cart, merging quantities if the cart already holds that ID. Unknown IDs
// are a no-op.
func (e *Engine) MoveToCart(ctx context.Context, id string) {
	e.mu.Lock()
	if i := indexOf(e.savedItems, id); i >= 0 {
		item := e.savedItems[i]
		e.savedItems = append(e.savedItems[:i], e.savedItems[i+1:]...)
		if j := indexOf(e.items, id); j >= 0 {
			e.items[j].Quantity += item.Quantity
		} else {
			e.items = append(e.items, item)
		}
		e.persistSavedItems()
		e.afterItemsMutation(ctx, ActionMoveToCart)
	}
	e.mu.Unlock()
}

// RemoveSavedItem deletes the entry with the given ID from the saved list.
// Unknown IDs are a no-op.
func (e *Engine) RemoveSavedItem(ctx context.Context, id string) {
	e.mu.Lock()
	if i := indexOf(e.savedItems, id); i >= 0 {
		e.savedItems = append(e.savedItems[:i], e.savedItems[i+1:]...)
		e.metrics.CartUpdates.WithLabelValues(ActionRemoveSaved).Inc()
		e.persistSavedItems()
		e.publishCartUpdated(ctx, ActionRemoveSaved)
	}
	e.mu.Unlock()
}

// AddToRecentlyViewed records a product view. The product moves (or is
// inserted) to the front of the history; the history holds no duplicates and
// at most RecentlyViewedMax entries.
func (e *Engine) AddToRecentlyViewed(ctx context.Context, product domain.ProductRef) {
	e.mu.Lock()
	filtered := make([]domain.ProductRef, 0, len(e.recentlyViewed)+1)
	filtered = append(filtered, product)
	for _, p := range e.recentlyViewed {
		if p.ID != product.ID {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > domain.RecentlyViewedMax {
		filtered = filtered[:domain.RecentlyViewedMax]
	}
	e.recentlyViewed = filtered

	e.metrics.RecentlyViewedAdd.Inc()
	e.persistRecentlyViewed()
	e.publishCartUpdated(ctx, ActionRecentlyViewed)
	e.mu.Unlock()
}

// ApplyDiscount validates the code and, when accepted, fixes the discount at
// the current subtotal times the code's rate. The amount is a snapshot: later
// cart changes do not recompute it. Applying a new code replaces the previous
// one. Returns whether the code was accepted.
func (e *Engine) ApplyDiscount(ctx context.Context, code string) bool {
	rate, ok := e.discounts.Validate(code)
	if !ok {
		e.metrics.DiscountRejected.Inc()
		return false
	}

	e.mu.Lock()
	subtotal := e.subtotalLocked()
	e.discountCents = int64(math.Round(float64(subtotal) * rate))
	e.metrics.DiscountApplied.WithLabelValues(discount.Normalize(code)).Inc()
	e.publishCartUpdated(ctx, ActionApplyDiscount)
	e.mu.Unlock()

	return true
}

// ClearDiscount removes any applied discount.
func (e *Engine) ClearDiscount(ctx context.Context) {
	e.mu.Lock()
	e.discountCents = 0
	e.publishCartUpdated(ctx, ActionClearDiscount)
	e.mu.Unlock()
}

// ItemCount returns the sum of quantities across active line items.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, li := range e.items {
		count += li.Quantity
	}
	return count
}

// Subtotal returns the sum of line subtotals across active line items.
func (e *Engine) Subtotal() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subtotalLocked()
}

// Snapshot returns a deep copy of the engine's state. Mutating the returned
// value has no effect on the engine.
func (e *Engine) Snapshot() domain.CartSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.CartSnapshot{
		Items:          copyItems(e.items),
		SavedItems:     copyItems(e.savedItems),
		RecentlyViewed: copyProducts(e.recentlyViewed),
		DiscountCents:  e.discountCents,
	}
}

// Recommendations computes product suggestions for the current cart against
// the catalog pool.
func (e *Engine) Recommendations(ctx context.Context) ([]domain.ProductRef, error) {
	if e.catalog == nil {
		return nil, nil
	}
	pool, err := e.catalog.Products(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "cart.recommendations", "failed to load product pool")
	}

	e.mu.Lock()
	items := copyItems(e.items)
	e.mu.Unlock()

	e.metrics.RecommendationsServed.Inc()
	return e.recommender.Recommend(items, pool), nil
}

// Flush blocks until all in-flight background persistence has finished. Used
// on shutdown and in tests.
func (e *Engine) Flush() {
	e.persistWG.Wait()
}

// afterItemsMutation runs the shared tail of every active-items mutation:
// metrics, persistence, event. Callers hold the mutex.
func (e *Engine) afterItemsMutation(ctx context.Context, action string) {
	e.metrics.CartUpdates.WithLabelValues(action).Inc()
	e.metrics.CartValue.Observe(float64(e.subtotalLocked()))
	e.persistItems()
	e.publishCartUpdated(ctx, action)
}

func (e *Engine) subtotalLocked() int64 {
	var subtotal int64
	for _, li := range e.items {
		subtotal += li.LineSubtotal()
	}
	return subtotal
}

// publishCartUpdated emits a cart.updated event in the background. Callers
// hold the mutex; the counters are computed before the goroutine starts.
func (e *Engine) publishCartUpdated(ctx context.Context, action string) {
	event := events.CartUpdated{
		Action:        action,
		SubtotalCents: e.subtotalLocked(),
		OccurredAt:    time.Now().UTC(),
	}
	for _, li := range e.items {
		event.ItemCount += li.Quantity
	}

	e.persistWG.Add(1)
	go func() {
		defer e.persistWG.Done()
		if err := e.publisher.PublishCartUpdated(context.WithoutCancel(ctx), event); err != nil {
			e.logger.Warn().Err(err).Str("action", action).Msg("failed to publish cart event")
		}
	}()
}

// persistItems schedules a background write of the active items. Failures
// are logged and counted, never surfaced.
func (e *Engine) persistItems() {
	e.persistAsync("items", func(ctx context.Context, s *cartstore.State) error {
		return e.store.SaveItems(ctx, s.Items)
	})
}

func (e *Engine) persistSavedItems() {
	e.persistAsync("saved_items", func(ctx context.Context, s *cartstore.State) error {
		return e.store.SaveSavedItems(ctx, s.SavedItems)
	})
}

func (e *Engine) persistRecentlyViewed() {
	e.persistAsync("recently_viewed", func(ctx context.Context, s *cartstore.State) error {
		return e.store.SaveRecentlyViewed(ctx, s.RecentlyViewed)
	})
}

// persistAsync writes one key in the background. The goroutine re-reads the
// engine state at save time under saveMu, so overlapping writes to the same
// key cannot regress to an older value: the last writer to run always saves
// the newest state.
func (e *Engine) persistAsync(key string, save func(ctx context.Context, s *cartstore.State) error) {
	if e.store == nil {
		return
	}
	e.persistWG.Add(1)
	go func() {
		defer e.persistWG.Done()

		e.saveMu.Lock()
		defer e.saveMu.Unlock()

		e.mu.Lock()
		state := &cartstore.State{
			Items:          copyItems(e.items),
			SavedItems:     copyItems(e.savedItems),
			RecentlyViewed: copyProducts(e.recentlyViewed),
		}
		e.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := save(ctx, state); err != nil {
			e.metrics.PersistenceFailures.WithLabelValues(key).Inc()
			e.logger.Warn().Err(err).Str("key", key).Msg("failed to persist cart state")
		}
	}()
}

func indexOf(items []domain.LineItem, id string) int {
	for i, li := range items {
		if li.ID == id {
			return i
		}
	}
	return -1
}

func copyItems(items []domain.LineItem) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}

func copyProducts(products []domain.ProductRef) []domain.ProductRef {
	if len(products) == 0 {
		return nil
	}
	out := make([]domain.ProductRef, len(products))
	copy(out, products)
	return out
}
