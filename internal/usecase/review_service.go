package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
)

// ReviewService lists and accepts product reviews
type ReviewService struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
	notifier domain.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewReviewService creates a new review service with dependencies.
// notifier may be nil.
func NewReviewService(
	products domain.ProductRepository,
	reviews domain.ReviewRepository,
	notifier domain.Notifier,
	logger *zap.Logger,
) *ReviewService {
	logger = logging.OrNop(logger)
	return &ReviewService{
		products: products,
		reviews:  reviews,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns a product's reviews, newest first
func (s *ReviewService) List(ctx context.Context, productID string) ([]domain.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// Submit validates and stores a review for productID. The submitter's email
// is checked but not kept on the stored review.
func (s *ReviewService) Submit(
	ctx context.Context,
	session string,
	productID string,
	submission *domain.ReviewSubmission,
) (*domain.Review, error) {
	if submission == nil {
		return nil, domain.ErrInvalidRequest
	}

	submission.Name = strings.TrimSpace(submission.Name)
	submission.Title = strings.TrimSpace(submission.Title)
	submission.Comment = strings.TrimSpace(submission.Comment)
	if err := validateStruct(submission); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	review := domain.Review{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		UserName:  submission.Name,
		Rating:    submission.Rating,
		Comment:   submission.Comment,
		Title:     submission.Title,
		Date:      s.now().UTC(),
	}
	if err := s.reviews.Add(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	s.logger.Info("review submitted",
		zap.String("product", product.ID),
		zap.String("review", review.ID),
		zap.Int("rating", review.Rating),
	)

	if s.notifier != nil {
		s.notifier.Notify(ctx, session, domain.Notice{
			Title:       "Review Submitted!",
			Description: "Thank you for your feedback. Your review is now visible on the product page.",
			Variant:     domain.NoticeDefault,
		})
	}
	return &review, nil
}
