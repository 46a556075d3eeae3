package usecase

import (
	"github.com/raisket/marketplace/internal/domain"
)

const (
	missingValue      = "-"
	maxTableFeatures  = 5
	moreFeaturesLabel = "...and more"
)

type scalarField struct {
	label string
	value func(domain.Product) string
}

type listField struct {
	label string
	value func(domain.Product) []string
}

var scalarFields = []scalarField{
	{"Provider", func(p domain.Product) string { return p.Provider }},
	{"Category", func(p domain.Product) string { return string(p.Category) }},
	{"Segment", func(p domain.Product) string { return string(p.Segment) }},
	{"Interest Rate", func(p domain.Product) string { return p.InterestRate }},
	{"Fees", func(p domain.Product) string { return p.Fees }},
	{"Loan Term", func(p domain.Product) string { return p.LoanTerm }},
	{"Max Loan Amount", func(p domain.Product) string { return p.MaxLoanAmount }},
	{"Min. Investment", func(p domain.Product) string { return p.MinInvestment }},
	{"Coverage Amount", func(p domain.Product) string { return p.CoverageAmount }},
}

var listFields = []listField{
	{"Eligibility", func(p domain.Product) []string { return p.Eligibility }},
	{"Features", func(p domain.Product) []string { return truncateFeatures(p.Features) }},
}

// BuildComparisonTable lays out set as attribute rows with one column per
// product. Rows no product has a value for are omitted.
func BuildComparisonTable(set domain.ComparisonSet) *domain.ComparisonTable {
	products := make([]domain.Product, len(set))
	copy(products, set)

	table := &domain.ComparisonTable{
		Products:  products,
		Rows:      []domain.ComparisonRow{},
		NeedsMore: len(set) < 2,
	}

	for _, f := range scalarFields {
		values := make([]string, len(set))
		hasData := false
		for i, p := range set {
			v := f.value(p)
			if v == "" {
				v = missingValue
			} else {
				hasData = true
			}
			values[i] = v
		}
		if hasData {
			table.Rows = append(table.Rows, domain.ComparisonRow{Label: f.label, Values: values})
		}
	}

	for _, f := range listFields {
		lists := make([][]string, len(set))
		hasData := false
		for i, p := range set {
			v := f.value(p)
			if len(v) == 0 {
				v = []string{missingValue}
			} else {
				hasData = true
			}
			lists[i] = v
		}
		if hasData {
			table.Rows = append(table.Rows, domain.ComparisonRow{Label: f.label, Lists: lists})
		}
	}

	return table
}

func truncateFeatures(features []string) []string {
	if len(features) <= maxTableFeatures {
		return features
	}
	out := make([]string, 0, maxTableFeatures+1)
	out = append(out, features[:maxTableFeatures]...)
	return append(out, moreFeaturesLabel)
}
