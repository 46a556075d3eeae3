package domain

// Flow names, carried on CompletionRequest.Name
const (
	FlowRecommendations = "financial_product_recommendations"
	FlowProductSummary  = "financial_product_summary"
	FlowLandingOffer    = "landing_page_offer"
)

// FinancialProfile is the input of the recommendations flow
type FinancialProfile struct {
	Income         float64 `json:"income" validate:"gt=0"`
	CreditScore    int     `json:"creditScore" validate:"min=300,max=850"`
	FinancialGoals string  `json:"financialGoals" validate:"required,min=10,max=500"`
	RiskTolerance  string  `json:"riskTolerance" validate:"required,oneof=low medium high"`
	Age            int     `json:"age" validate:"min=18,max=100"`
	IsBusiness     bool    `json:"isBusiness"`
}

// FinancialProductRecommendations is the output of the recommendations flow
type FinancialProductRecommendations struct {
	CreditProducts     []string `json:"creditProducts" validate:"required"`
	FinancingProducts  []string `json:"financingProducts" validate:"required"`
	InvestmentProducts []string `json:"investmentProducts" validate:"required"`
	InsuranceProducts  []string `json:"insuranceProducts" validate:"required"`
	Reasoning          string   `json:"reasoning" validate:"required"`
}

// ProductSummaryInput is the input of the summary flow
type ProductSummaryInput struct {
	ProductName        string `json:"productName" validate:"required,max=200"`
	ProductDescription string `json:"productDescription" validate:"required,max=4000"`
	TargetAudience     string `json:"targetAudience" validate:"required,max=200"`
	KeyFeatures        string `json:"keyFeatures" validate:"required,max=4000"`
}

// ProductSummary is the output of the summary flow
type ProductSummary struct {
	Summary string `json:"summary" validate:"required"`
}

// LandingOfferInput is the input of the personalized offer flow
type LandingOfferInput struct {
	Segment     Segment `json:"segment" validate:"required,oneof=Individual Business"`
	ProductType string  `json:"productType" validate:"required,min=3,max=100"`
	Needs       string  `json:"needs" validate:"required,min=10,max=500"`
}

// LandingOffer is the output of the personalized offer flow
type LandingOffer struct {
	OfferDetails string `json:"offerDetails" validate:"required"`
	ReferralLink string `json:"referralLink" validate:"required,url"`
}

// CompletionRequest is a single prompt sent to a hosted model
type CompletionRequest struct {
	// Name identifies the flow for logging and metrics
	Name              string
	SystemInstruction string
	Prompt            string
	// JSON requests a JSON-only response
	JSON bool
}
