package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"github.com/raisket/marketplace/internal/usecase"
	"go.uber.org/zap"
)

const generationFailedMessage = "failed to generate response, please try again"

// NoticeSource drains the pending notices of a session
type NoticeSource interface {
	Drain(session string) []domain.Notice
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog    *usecase.CatalogService
	reviews    *usecase.ReviewService
	comparison *usecase.ComparisonService
	advisor    *usecase.AdvisorService
	notices    NoticeSource
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	reviews *usecase.ReviewService,
	comparison *usecase.ComparisonService,
	advisor *usecase.AdvisorService,
	notices NoticeSource,
	logger *zap.Logger,
) *Handler {
	logger = logging.OrNop(logger)
	return &Handler{
		catalog:    catalog,
		reviews:    reviews,
		comparison: comparison,
		advisor:    advisor,
		notices:    notices,
		logger:     logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "raisket-marketplace",
		"version": "1.0.0",
	})
}

// ListCategories returns the browsable product categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// ListProducts returns catalog products filtered by ?segment= and ?category=
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context(), c.Query("segment"), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns a product with its reviews
func (h *Handler) GetProduct(c *gin.Context) {
	detail, err := h.catalog.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetProductSummary returns a generated summary of a catalog product
func (h *Handler) GetProductSummary(c *gin.Context) {
	summary, err := h.catalog.ProductSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListReviews returns a product's reviews, newest first
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// SubmitReview accepts a review for a product
func (h *Handler) SubmitReview(c *gin.Context) {
	var submission domain.ReviewSubmission
	if !h.bindJSON(c, &submission) {
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), sessionID(c), c.Param("id"), &submission)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetComparison returns the session's comparison set
func (h *Handler) GetComparison(c *gin.Context) {
	items, err := h.comparison.List(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"maxItems": h.comparison.MaxItems(),
	})
}

type addToComparisonRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddToComparison adds a catalog product to the session's comparison set
func (h *Handler) AddToComparison(c *gin.Context) {
	var req addToComparisonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.comparison.Add(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveFromComparison removes a product from the session's comparison set
func (h *Handler) RemoveFromComparison(c *gin.Context) {
	result, err := h.comparison.Remove(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClearComparison empties the session's comparison set
func (h *Handler) ClearComparison(c *gin.Context) {
	result, err := h.comparison.Clear(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ComparisonContains reports whether a product is in the session's set
func (h *Handler) ComparisonContains(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.comparison.Contains(c.Request.Context(), sessionID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"productId":    id,
		"inComparison": ok,
	})
}

// GetComparisonTable returns the side-by-side comparison view
func (h *Handler) GetComparisonTable(c *gin.Context) {
	table, err := h.comparison.Table(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// Recommend runs the product recommendations flow
func (h *Handler) Recommend(c *gin.Context) {
	var profile domain.FinancialProfile
	if !h.bindJSON(c, &profile) {
		return
	}
	respondFlow(h, c, func(ctx context.Context) (*domain.FinancialProductRecommendations, error) {
		return h.advisor.Recommend(ctx, &profile)
	})
}

// Summarize runs the product summary flow on caller-supplied details
func (h *Handler) Summarize(c *gin.Context) {
	var input domain.ProductSummaryInput
	if !h.bindJSON(c, &input) {
		return
	}
	respondFlow(h, c, func(ctx context.Context) (*domain.ProductSummary, error) {
		return h.advisor.Summarize(ctx, &input)
	})
}

// LandingOffer runs the personalized offer flow
func (h *Handler) LandingOffer(c *gin.Context) {
	var input domain.LandingOfferInput
	if !h.bindJSON(c, &input) {
		return
	}
	if segment, ok := domain.ParseSegment(string(input.Segment)); ok {
		input.Segment = segment
	}
	respondFlow(h, c, func(ctx context.Context) (*domain.LandingOffer, error) {
		return h.advisor.LandingOffer(ctx, &input)
	})
}

// DrainNotices returns and clears the session's pending notices
func (h *Handler) DrainNotices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": h.notices.Drain(sessionID(c))})
}

func respondFlow[T any](h *Handler, c *gin.Context, run func(ctx context.Context) (*T, error)) {
	out, err := run(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// bindJSON decodes the request body, writing a 400 response on failure
func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP responses
func (h *Handler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrProductNotFound.Error()})
	case errors.Is(err, domain.ErrCompletionFailed), errors.Is(err, domain.ErrMalformedOutput):
		h.logger.Warn("generation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": generationFailedMessage})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  domain.ErrValidation.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrRateLimited.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request canceled"})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
