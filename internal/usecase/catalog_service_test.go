package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() *MockProductRepository {
	return NewMockProductRepository(
		domain.Product{ID: "i-credit", Name: "Everyday Card", Category: domain.CategoryCredit, Segment: domain.SegmentIndividual},
		domain.Product{ID: "i-invest", Name: "Index Fund", Category: domain.CategoryInvestment, Segment: domain.SegmentIndividual},
		domain.Product{
			ID: "b-credit", Name: "Business Line", Category: domain.CategoryCredit, Segment: domain.SegmentBusiness,
			Description: "Short", LongDescription: "Revolving credit for small businesses.",
			Features: []string{"Draw anytime", "Interest only on what you use"},
		},
	)
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(catalogFixture(), &MockReviewRepository{}, NewMockCacheRepository(), nil, nil, CatalogServiceConfig{})

	tests := []struct {
		name     string
		segment  string
		category string
		wantIDs  []string
		wantErr  error
	}{
		{name: "no filters", wantIDs: []string{"i-credit", "i-invest", "b-credit"}},
		{name: "all category", category: "all", wantIDs: []string{"i-credit", "i-invest", "b-credit"}},
		{name: "category only", category: "credit", wantIDs: []string{"i-credit", "b-credit"}},
		{name: "plural segment", segment: "businesses", wantIDs: []string{"b-credit"}},
		{name: "segment and category", segment: "Individual", category: "Investment", wantIDs: []string{"i-invest"}},
		{name: "no match", segment: "business", category: "insurance", wantIDs: []string{}},
		{name: "unknown segment", segment: "startups", wantErr: domain.ErrInvalidRequest},
		{name: "unknown category", category: "crypto", wantErr: domain.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := svc.List(ctx, tt.segment, tt.category)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestCatalogService_Categories(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), &MockReviewRepository{}, NewMockCacheRepository(), nil, nil, CatalogServiceConfig{})

	cats := svc.Categories()
	assert.Equal(t, []domain.Category{"All", "Credit", "Financing", "Investment", "Insurance"}, cats)

	cats[0] = "mutated"
	assert.Equal(t, domain.CategoryAll, svc.Categories()[0])
}

func TestCatalogService_Detail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	reviews := &MockReviewRepository{reviews: []domain.Review{
		{ID: "r1", ProductID: "i-credit", Date: now.Add(-48 * time.Hour)},
		{ID: "r2", ProductID: "i-credit", Date: now},
		{ID: "r3", ProductID: "b-credit", Date: now},
	}}
	svc := NewCatalogService(catalogFixture(), reviews, NewMockCacheRepository(), nil, nil, CatalogServiceConfig{})

	detail, err := svc.Detail(ctx, "i-credit")
	require.NoError(t, err)
	assert.Equal(t, "Everyday Card", detail.Product.Name)
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, "r2", detail.Reviews[0].ID, "newest review first")

	detail, err = svc.Detail(ctx, "i-invest")
	require.NoError(t, err)
	assert.NotNil(t, detail.Reviews)
	assert.Empty(t, detail.Reviews)

	_, err = svc.Detail(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalogService_ProductSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss then hit", func(t *testing.T) {
		client := &MockCompletionClient{response: `{"summary":"Flexible credit for businesses."}`}
		cache := NewMockCacheRepository()
		advisor := NewAdvisorService(client, nil, AdvisorServiceConfig{})
		svc := NewCatalogService(catalogFixture(), &MockReviewRepository{}, cache, advisor, nil, CatalogServiceConfig{})

		summary, err := svc.ProductSummary(ctx, "b-credit")
		require.NoError(t, err)
		assert.Equal(t, "Flexible credit for businesses.", summary.Summary)
		assert.True(t, cache.setCalled)
		assert.Contains(t, client.last.Prompt, "Target Audience: Businesses")
		assert.Contains(t, client.last.Prompt, "Product Description: Revolving credit for small businesses.")
		assert.Contains(t, client.last.Prompt, "Key Features: Draw anytime, Interest only on what you use")

		again, err := svc.ProductSummary(ctx, "b-credit")
		require.NoError(t, err)
		assert.Equal(t, summary, again)
		assert.Equal(t, 1, client.calls, "second call should be served from cache")
	})

	t.Run("ids differing in case are cached apart", func(t *testing.T) {
		client := &MockCompletionClient{response: `{"summary":"upper"}`}
		products := NewMockProductRepository(testProduct("A", "Upper Card"), testProduct("a", "Lower Card"))
		svc := NewCatalogService(products, &MockReviewRepository{}, NewMockCacheRepository(),
			NewAdvisorService(client, nil, AdvisorServiceConfig{}), nil, CatalogServiceConfig{})

		upper, err := svc.ProductSummary(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, "upper", upper.Summary)

		client.response = `{"summary":"lower"}`
		lower, err := svc.ProductSummary(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "lower", lower.Summary)
		assert.Equal(t, 2, client.calls)
	})

	t.Run("unknown product", func(t *testing.T) {
		client := &MockCompletionClient{}
		svc := NewCatalogService(catalogFixture(), &MockReviewRepository{}, NewMockCacheRepository(),
			NewAdvisorService(client, nil, AdvisorServiceConfig{}), nil, CatalogServiceConfig{})

		_, err := svc.ProductSummary(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Zero(t, client.calls)
	})

	t.Run("flow failure is not cached", func(t *testing.T) {
		client := &MockCompletionClient{err: errors.New("unavailable")}
		cache := NewMockCacheRepository()
		svc := NewCatalogService(catalogFixture(), &MockReviewRepository{}, cache,
			NewAdvisorService(client, nil, AdvisorServiceConfig{}), nil, CatalogServiceConfig{})

		_, err := svc.ProductSummary(ctx, "b-credit")
		assert.ErrorIs(t, err, domain.ErrCompletionFailed)
		assert.False(t, cache.setCalled)
	})

	t.Run("cache write failure still returns summary", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("cache down")
		svc := NewCatalogService(catalogFixture(), &MockReviewRepository{}, cache,
			NewAdvisorService(&MockCompletionClient{response: `{"summary":"ok"}`}, nil, AdvisorServiceConfig{}), nil, CatalogServiceConfig{})

		summary, err := svc.ProductSummary(ctx, "b-credit")
		require.NoError(t, err)
		assert.Equal(t, "ok", summary.Summary)
	})
}
