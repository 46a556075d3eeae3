// Package storage holds in-memory repositories for the catalog and reviews.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/raisket/marketplace/internal/domain"
)

// MemoryProductRepository serves a read-only catalog loaded at startup.
// Catalog order is preserved for listings.
type MemoryProductRepository struct {
	products []domain.Product
	byID     map[string]int
}

// NewMemoryProductRepository indexes products by ID. Callers validate
// uniqueness beforehand; on duplicates the last entry wins the index.
func NewMemoryProductRepository(products []domain.Product) *MemoryProductRepository {
	r := &MemoryProductRepository{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(r.products, products)
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

// List returns a copy of the catalog in load order
func (r *MemoryProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns the product with the given ID
func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p := r.products[i]
	return &p, nil
}

// MemoryReviewRepository keeps reviews grouped by product
type MemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string][]domain.Review
}

// NewMemoryReviewRepository creates a repository seeded with reviews
func NewMemoryReviewRepository(seed []domain.Review) *MemoryReviewRepository {
	r := &MemoryReviewRepository{reviews: make(map[string][]domain.Review)}
	for _, review := range seed {
		r.reviews[review.ProductID] = append(r.reviews[review.ProductID], review)
	}
	return r
}

// ListByProduct returns the reviews of a product, newest first
func (r *MemoryReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	r.mu.RLock()
	list := r.reviews[productID]
	out := make([]domain.Review, len(list))
	copy(out, list)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// Add stores a review
func (r *MemoryReviewRepository) Add(ctx context.Context, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews[review.ProductID] = append(r.reviews[review.ProductID], review)
	return nil
}
