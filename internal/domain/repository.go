package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductRepository provides read access to the catalog
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

// ReviewRepository stores product reviews
type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	Add(ctx context.Context, review Review) error
}

// SessionStore is a string key/value store namespaced by session,
// the server-side counterpart of browser local storage.
// GetItem returns ErrKeyNotFound for absent keys.
type SessionStore interface {
	GetItem(ctx context.Context, session, key string) (string, error)
	SetItem(ctx context.Context, session, key, value string) error
	RemoveItem(ctx context.Context, session, key string) error
}

// CompletionClient sends a prompt to a hosted language model and returns
// the raw text of its reply
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Notifier delivers transient notices to a session. Delivery is
// fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, session string, notice Notice)
}
