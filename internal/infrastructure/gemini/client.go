// Package gemini implements domain.CompletionClient on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Config holds Gemini client settings
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // empty uses the public endpoint
	Temperature float32
	// RequestsPerMinute paces outbound calls across all flows
	RequestsPerMinute int
}

// Client sends single-shot prompts to Gemini. It does not retry.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a Gemini completion client
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	burst := cfg.RequestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Client{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), burst),
		logger:      logging.OrNop(logger).Named("gemini"),
	}, nil
}

// Complete sends the prompt and returns the reply text
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %w", domain.ErrCompletionFailed, err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		c.logger.Warn("generate content failed",
			zap.String("flow", req.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("empty completion", zap.String("flow", req.Name))
		return "", fmt.Errorf("%w: no response candidates", domain.ErrCompletionFailed)
	}

	c.logger.Debug("completion received",
		zap.String("flow", req.Name),
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)))
	return text, nil
}
