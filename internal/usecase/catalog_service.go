package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	SummaryCacheTTL time.Duration
}

// CatalogService serves product listings, product details and cached
// product summaries
type CatalogService struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
	cache    domain.CacheRepository
	advisor  *AdvisorService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	products domain.ProductRepository,
	reviews domain.ReviewRepository,
	cache domain.CacheRepository,
	advisor *AdvisorService,
	logger *zap.Logger,
	config CatalogServiceConfig,
) *CatalogService {
	cacheTTL := config.SummaryCacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	logger = logging.OrNop(logger)

	return &CatalogService{
		products: products,
		reviews:  reviews,
		cache:    cache,
		advisor:  advisor,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Categories returns the browsable categories, "All" first
func (s *CatalogService) Categories() []domain.Category {
	out := make([]domain.Category, len(domain.Categories))
	copy(out, domain.Categories)
	return out
}

// List returns products matching segment and category. Both filters are
// case-insensitive and optional; an empty category or "all" matches every
// category. Unknown filter values return domain.ErrInvalidRequest.
func (s *CatalogService) List(ctx context.Context, segment, category string) ([]domain.Product, error) {
	var seg domain.Segment
	if strings.TrimSpace(segment) != "" {
		parsed, ok := domain.ParseSegment(segment)
		if !ok {
			return nil, fmt.Errorf("%w: unknown segment %q", domain.ErrInvalidRequest, segment)
		}
		seg = parsed
	}

	cat, ok := domain.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidRequest, category)
	}

	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(seg, cat) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get returns a single product or domain.ErrProductNotFound
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Detail returns a product with its reviews, newest first
func (s *CatalogService) Detail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return &domain.ProductDetail{Product: *product, Reviews: reviews}, nil
}

// ProductSummary generates a summary for a catalog product.
// Flow: check cache -> run summary flow -> cache -> return
func (s *CatalogService) ProductSummary(ctx context.Context, id string) (*domain.ProductSummary, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheKey := "summary:" + product.ID
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if summary, ok := cached.(*domain.ProductSummary); ok {
			return summary, nil
		}
	}

	summary, err := s.advisor.Summarize(ctx, summaryInput(product))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache product summary", zap.String("product", product.ID), zap.Error(err))
	}
	return summary, nil
}

// summaryInput derives the summary flow input from a catalog product
func summaryInput(p *domain.Product) *domain.ProductSummaryInput {
	description := p.LongDescription
	if description == "" {
		description = p.Description
	}

	audience := "Individuals"
	if p.Segment == domain.SegmentBusiness {
		audience = "Businesses"
	}

	return &domain.ProductSummaryInput{
		ProductName:        p.Name,
		ProductDescription: description,
		TargetAudience:     audience,
		KeyFeatures:        strings.Join(p.Features, ", "),
	}
}
