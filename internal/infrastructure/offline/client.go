// Package offline provides a canned CompletionClient for local development
// and demos without model access.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/raisket/marketplace/internal/domain"
)

// Client answers each flow with a fixed, schema-valid JSON document
type Client struct {
	referralBase string
}

// NewClient creates an offline client. Referral links point at referralBase.
func NewClient(referralBase string) *Client {
	if referralBase == "" {
		referralBase = "https://raisket.example.com/offers"
	}
	return &Client{referralBase: referralBase}
}

// Complete returns a canned response for the flow named in req
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}

	var out interface{}
	switch req.Name {
	case domain.FlowRecommendations:
		out = domain.FinancialProductRecommendations{
			CreditProducts:     []string{"No-annual-fee rewards card"},
			FinancingProducts:  []string{"Fixed-rate personal loan"},
			InvestmentProducts: []string{"Diversified index ETF portfolio"},
			InsuranceProducts:  []string{"Term life insurance"},
			Reasoning:          "Offline mode: these are general-purpose suggestions, not tailored advice.",
		}
	case domain.FlowProductSummary:
		out = domain.ProductSummary{
			Summary: "Offline mode: " + firstLine(req.Prompt, "Product Name:"),
		}
	case domain.FlowLandingOffer:
		link := c.referralBase + "?" + url.Values{"src": {"offline"}}.Encode()
		out = domain.LandingOffer{
			OfferDetails: "Offline mode: a personalized offer will appear here once the model is configured.",
			ReferralLink: link,
		}
	default:
		return "", fmt.Errorf("%w: unknown flow %q", domain.ErrCompletionFailed, req.Name)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}
	return string(raw), nil
}

// firstLine returns the trimmed text after prefix on the first line that has it
func firstLine(text, prefix string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return "summary unavailable"
}
