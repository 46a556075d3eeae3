package domain

import (
	"strings"
	"time"
)

// Category is the product family a financial product belongs to
type Category string

const (
	CategoryAll        Category = "All"
	CategoryCredit     Category = "Credit"
	CategoryFinancing  Category = "Financing"
	CategoryInvestment Category = "Investment"
	CategoryInsurance  Category = "Insurance"
)

// Categories lists the browsable categories in display order, "All" first
var Categories = []Category{
	CategoryAll,
	CategoryCredit,
	CategoryFinancing,
	CategoryInvestment,
	CategoryInsurance,
}

// ParseCategory resolves a category case-insensitively.
// An empty string resolves to CategoryAll.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryAll, true
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Segment classifies a product or user as Individual or Business
type Segment string

const (
	SegmentIndividual Segment = "Individual"
	SegmentBusiness   Segment = "Business"
)

// ParseSegment resolves a segment case-insensitively. Plural URL forms
// ("individuals", "businesses") are accepted.
func ParseSegment(s string) (Segment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual", "individuals":
		return SegmentIndividual, true
	case "business", "businesses":
		return SegmentBusiness, true
	}
	return "", false
}

// Product is a financial product listed in the marketplace catalog.
// Products are immutable once the catalog is loaded.
type Product struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Tagline         string   `json:"tagline" yaml:"tagline"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"longDescription,omitempty" yaml:"longDescription,omitempty"`
	Category        Category `json:"category" yaml:"category"`
	Segment         Segment  `json:"segment" yaml:"segment"`
	ImageURL        string   `json:"imageUrl" yaml:"imageUrl"`
	Provider        string   `json:"provider" yaml:"provider"`
	Features        []string `json:"features" yaml:"features"`
	Benefits        []string `json:"benefits,omitempty" yaml:"benefits,omitempty"`
	AverageRating   float64  `json:"averageRating" yaml:"averageRating"`
	ReviewCount     int      `json:"reviewCount" yaml:"reviewCount"`

	// Comparison attributes, present depending on category
	InterestRate   string   `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	LoanTerm       string   `json:"loanTerm,omitempty" yaml:"loanTerm,omitempty"`
	MaxLoanAmount  string   `json:"maxLoanAmount,omitempty" yaml:"maxLoanAmount,omitempty"`
	CoverageAmount string   `json:"coverageAmount,omitempty" yaml:"coverageAmount,omitempty"`
	InvestmentType string   `json:"investmentType,omitempty" yaml:"investmentType,omitempty"`
	MinInvestment  string   `json:"minInvestment,omitempty" yaml:"minInvestment,omitempty"`
	Fees           string   `json:"fees,omitempty" yaml:"fees,omitempty"`
	Eligibility    []string `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`

	AIHint     string `json:"aiHint,omitempty" yaml:"aiHint,omitempty"`
	DetailsURL string `json:"detailsUrl,omitempty" yaml:"detailsUrl,omitempty"`
}

// Matches reports whether the product belongs to the given segment and category.
// CategoryAll matches every category.
func (p Product) Matches(segment Segment, category Category) bool {
	if segment != "" && p.Segment != segment {
		return false
	}
	return category == "" || category == CategoryAll || p.Category == category
}

// Review is a user review attached to a product
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserName  string    `json:"userName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title,omitempty"`
}

// ReviewSubmission is the review form payload. Email is collected for
// internal use and never exposed on the Review.
type ReviewSubmission struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
}

// ProductDetail bundles a product with its reviews for the detail page
type ProductDetail struct {
	Product Product  `json:"product"`
	Reviews []Review `json:"reviews"`
}
