package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/raisket/marketplace/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	products []domain.Product
	listErr  error
}

func NewMockProductRepository(products ...domain.Product) *MockProductRepository {
	return &MockProductRepository{products: products}
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

// MockReviewRepository is a mock implementation of domain.ReviewRepository
type MockReviewRepository struct {
	reviews []domain.Review
	addErr  error
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockReviewRepository) Add(ctx context.Context, review domain.Review) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.reviews = append(m.reviews, review)
	return nil
}

// MockSessionStore is a mock implementation of domain.SessionStore
type MockSessionStore struct {
	mu       sync.Mutex
	items    map[string]string
	getErr   error
	setErr   error
	setCalls int
	removed  []string
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{items: make(map[string]string)}
}

func (m *MockSessionStore) GetItem(ctx context.Context, session, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.items[session+"/"+key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (m *MockSessionStore) SetItem(ctx context.Context, session, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.items[session+"/"+key] = value
	return nil
}

func (m *MockSessionStore) RemoveItem(ctx context.Context, session, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, session+"/"+key)
	delete(m.items, session+"/"+key)
	return nil
}

func (m *MockSessionStore) raw(session, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[session+"/"+key]
	return v, ok
}

func (m *MockSessionStore) put(session, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[session+"/"+key] = value
}

// MockNotifier records notices
type MockNotifier struct {
	mu      sync.Mutex
	notices map[string][]domain.Notice
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{notices: make(map[string][]domain.Notice)}
}

func (m *MockNotifier) Notify(ctx context.Context, session string, notice domain.Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices[session] = append(m.notices[session], notice)
}

func (m *MockNotifier) For(session string) []domain.Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notice(nil), m.notices[session]...)
}

// MockCompletionClient is a mock implementation of domain.CompletionClient
type MockCompletionClient struct {
	response string
	err      error
	calls    int
	last     domain.CompletionRequest
}

func (m *MockCompletionClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testProduct(id, name string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Category: domain.CategoryCredit,
		Segment:  domain.SegmentIndividual,
		Provider: "Test Bank",
		Features: []string{"feature"},
	}
}
