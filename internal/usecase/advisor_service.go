package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
)

// AdvisorServiceConfig holds configuration for the advisor service
type AdvisorServiceConfig struct {
	// Referrer is added as the ref query parameter of offer links that lack one
	Referrer string
}

// AdvisorService runs the model-backed flows: recommendations, product
// summaries and personalized landing offers. Inputs and outputs are checked
// against their validate tags on both sides of the model call.
type AdvisorService struct {
	client   domain.CompletionClient
	logger   *zap.Logger
	referrer string
}

// NewAdvisorService creates a new advisor service with dependencies
func NewAdvisorService(client domain.CompletionClient, logger *zap.Logger, config AdvisorServiceConfig) *AdvisorService {
	logger = logging.OrNop(logger)
	referrer := config.Referrer
	if referrer == "" {
		referrer = "raisket"
	}

	return &AdvisorService{
		client:   client,
		logger:   logger,
		referrer: referrer,
	}
}

// Recommend suggests products in each category for a financial profile
func (s *AdvisorService) Recommend(
	ctx context.Context,
	profile *domain.FinancialProfile,
) (*domain.FinancialProductRecommendations, error) {
	if profile == nil {
		return nil, domain.ErrInvalidRequest
	}
	return runFlow[domain.FinancialProductRecommendations](ctx, s, domain.FlowRecommendations, recommendationsPrompt, profile, *profile)
}

// Summarize writes a short summary of a product for its target audience
func (s *AdvisorService) Summarize(
	ctx context.Context,
	input *domain.ProductSummaryInput,
) (*domain.ProductSummary, error) {
	if input == nil {
		return nil, domain.ErrInvalidRequest
	}
	return runFlow[domain.ProductSummary](ctx, s, domain.FlowProductSummary, summaryPrompt, input, *input)
}

// LandingOffer generates a personalized offer with a tracked referral link
func (s *AdvisorService) LandingOffer(
	ctx context.Context,
	input *domain.LandingOfferInput,
) (*domain.LandingOffer, error) {
	if input == nil {
		return nil, domain.ErrInvalidRequest
	}

	data := landingOfferPromptData{
		Segment:     string(input.Segment),
		ProductType: input.ProductType,
		Needs:       input.Needs,
		Referrer:    s.referrer,
	}
	offer, err := runFlow[domain.LandingOffer](ctx, s, domain.FlowLandingOffer, landingOfferPrompt, input, data)
	if err != nil {
		return nil, err
	}

	offer.ReferralLink = withReferrer(offer.ReferralLink, s.referrer)
	return offer, nil
}

// runFlow validates input, renders the prompt, calls the model, then parses
// and validates its JSON reply into Out
func runFlow[Out any](
	ctx context.Context,
	s *AdvisorService,
	name string,
	tmpl *template.Template,
	input interface{},
	data interface{},
) (*Out, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	prompt, err := renderPrompt(tmpl, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s prompt: %w", name, err)
	}

	start := time.Now()
	raw, err := s.client.Complete(ctx, domain.CompletionRequest{
		Name:              name,
		SystemInstruction: advisorSystemInstruction,
		Prompt:            prompt,
		JSON:              true,
	})
	if err != nil {
		s.logger.Error("flow failed", zap.String("flow", name), zap.Error(err))
		if errors.Is(err, domain.ErrCompletionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}

	var out Out
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		s.logger.Warn("unparseable model output", zap.String("flow", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}

	// output schema failures are the model's fault, not the caller's
	if err := validateStruct(&out); err != nil {
		s.logger.Warn("model output failed validation", zap.String("flow", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedOutput, err)
	}

	s.logger.Info("flow completed",
		zap.String("flow", name),
		zap.Duration("latency", time.Since(start)),
	)
	return &out, nil
}

// extractJSON strips a markdown code fence around a JSON reply
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// withReferrer adds ref=referrer to link unless a ref is already present
func withReferrer(link, referrer string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := u.Query()
	if q.Get("ref") != "" {
		return link
	}
	q.Set("ref", referrer)
	u.RawQuery = q.Encode()
	return u.String()
}
