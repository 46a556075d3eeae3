package usecase

import (
	"strings"
	"text/template"
)

const advisorSystemInstruction = "You are a careful financial product assistant for the Raisket marketplace. " +
	"Answer with a single JSON object and nothing else."

var recommendationsPrompt = template.Must(template.New("recommendations").Parse(
	`You are an expert financial advisor providing personalized financial product recommendations.

Based on the user's financial profile and needs, provide recommendations across four categories: credit products, financing products, investment products, and insurance products.

Financial Profile:
Income: {{.Income}}
Credit Score: {{.CreditScore}}
Financial Goals: {{.FinancialGoals}}
Risk Tolerance: {{.RiskTolerance}}
Age: {{.Age}}
Is Business: {{.IsBusiness}}

Consider all factors when making your recommendations. For example, if the user has low risk tolerance, recommend low-risk investment products. If the user is a business, recommend financing products suitable for businesses.

Provide detailed reasoning for each recommendation.

Respond with a JSON object with the keys "creditProducts", "financingProducts", "investmentProducts" and "insuranceProducts" (arrays of strings) and "reasoning" (string).
`))

var summaryPrompt = template.Must(template.New("summary").Parse(
	`You are an expert financial product summarizer. Your goal is to provide a concise and informative summary of a given financial product.

Product Name: {{.ProductName}}
Product Description: {{.ProductDescription}}
Target Audience: {{.TargetAudience}}
Key Features: {{.KeyFeatures}}

Generate a summary that highlights the key benefits and features for the specified target audience. Keep the summary concise and easy to understand.

Respond with a JSON object with the key "summary" (string).
`))

type landingOfferPromptData struct {
	Segment     string
	ProductType string
	Needs       string
	Referrer    string
}

var landingOfferPrompt = template.Must(template.New("landing_offer").Parse(
	`You are a financial product expert who specializes in creating personalized offers for users.

Based on the user's segment, product type, and needs, generate a personalized offer and a referral link to the offer with proper referrer information for tracking.

Segment: {{.Segment}}
Product Type: {{.ProductType}}
Needs: {{.Needs}}

The referral link must be an absolute https URL whose query string includes ref={{.Referrer}}.

Respond with a JSON object with the keys "offerDetails" (string) and "referralLink" (string).
`))

func renderPrompt(tmpl *template.Template, data interface{}) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
