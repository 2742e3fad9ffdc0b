package cache

import (
	"context"
	"time"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// TaxonomyCache decorates a TaxonomyStore with caching for the static
// taxonomy lookups (skin type ids, concern ids, the concern name list).
// Ingredient mappings and the product catalog pass straight through: the
// catalog must be a fresh snapshot on every recommendation request.
type TaxonomyCache struct {
	store domain.TaxonomyStore
	cache *MemoryCache
	ttl   time.Duration
}

// NewTaxonomyCache wraps a store with a lookup cache.
func NewTaxonomyCache(store domain.TaxonomyStore, ttl time.Duration) *TaxonomyCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TaxonomyCache{
		store: store,
		cache: NewMemoryCache(),
		ttl:   ttl,
	}
}

// GetSkinTypeID returns the cached id for a skin type name, hitting the
// store on a miss. Lookup misses are not cached.
func (t *TaxonomyCache) GetSkinTypeID(ctx context.Context, name string) (int64, error) {
	key := "skintype:" + name
	if value, err := t.cache.Get(key); err == nil {
		if id, ok := value.(int64); ok {
			return id, nil
		}
	}

	id, err := t.store.GetSkinTypeID(ctx, name)
	if err != nil {
		return 0, err
	}
	t.cache.Set(key, id, t.ttl)
	return id, nil
}

// GetConcernID returns the cached id for a concern name, hitting the store
// on a miss.
func (t *TaxonomyCache) GetConcernID(ctx context.Context, name string) (int64, error) {
	key := "concern:" + name
	if value, err := t.cache.Get(key); err == nil {
		if id, ok := value.(int64); ok {
			return id, nil
		}
	}

	id, err := t.store.GetConcernID(ctx, name)
	if err != nil {
		return 0, err
	}
	t.cache.Set(key, id, t.ttl)
	return id, nil
}

// ListConcernNames returns the cached concern name list.
func (t *TaxonomyCache) ListConcernNames(ctx context.Context) ([]string, error) {
	const key = "concerns:all"
	if value, err := t.cache.Get(key); err == nil {
		if names, ok := value.([]string); ok {
			return names, nil
		}
	}

	names, err := t.store.ListConcernNames(ctx)
	if err != nil {
		return nil, err
	}
	t.cache.Set(key, names, t.ttl)
	return names, nil
}

// GetIngredientsForType passes through to the store.
func (t *TaxonomyCache) GetIngredientsForType(ctx context.Context, skinTypeID int64, isSensitive bool) ([]domain.IngredientRef, error) {
	return t.store.GetIngredientsForType(ctx, skinTypeID, isSensitive)
}

// GetIngredientsForConcern passes through to the store.
func (t *TaxonomyCache) GetIngredientsForConcern(ctx context.Context, concernID int64, subtype string) ([]domain.IngredientRef, error) {
	return t.store.GetIngredientsForConcern(ctx, concernID, subtype)
}

// GetAllProducts passes through to the store; the catalog is never cached.
func (t *TaxonomyCache) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return t.store.GetAllProducts(ctx)
}
