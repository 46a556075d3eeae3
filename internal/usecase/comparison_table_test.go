package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/raisket/marketplace/internal/domain"
)

func TestBuildComparisonTable(t *testing.T) {
	card := domain.Product{
		ID:           "card",
		Name:         "Card",
		Provider:     "Bank One",
		Category:     domain.CategoryCredit,
		Segment:      domain.SegmentIndividual,
		InterestRate: "18.9% APR",
		Features:     []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7"},
		Eligibility:  []string{"Credit score 680+"},
	}
	cover := domain.Product{
		ID:             "cover",
		Name:           "Cover",
		Provider:       "Insure Co",
		Category:       domain.CategoryInsurance,
		Segment:        domain.SegmentBusiness,
		CoverageAmount: "$1,000,000",
		Features:       []string{"g1"},
	}

	table := BuildComparisonTable(domain.ComparisonSet{card, cover})

	want := []domain.ComparisonRow{
		{Label: "Provider", Values: []string{"Bank One", "Insure Co"}},
		{Label: "Category", Values: []string{"Credit", "Insurance"}},
		{Label: "Segment", Values: []string{"Individual", "Business"}},
		{Label: "Interest Rate", Values: []string{"18.9% APR", "-"}},
		{Label: "Coverage Amount", Values: []string{"-", "$1,000,000"}},
		{Label: "Eligibility", Lists: [][]string{{"Credit score 680+"}, {"-"}}},
		{Label: "Features", Lists: [][]string{
			{"f1", "f2", "f3", "f4", "f5", "...and more"},
			{"g1"},
		}},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if table.NeedsMore {
		t.Error("NeedsMore = true for two products")
	}
	if len(card.Features) != 7 {
		t.Error("BuildComparisonTable modified product features")
	}
}

func TestBuildComparisonTable_Sparse(t *testing.T) {
	tests := []struct {
		name      string
		set       domain.ComparisonSet
		wantRows  int
		needsMore bool
	}{
		{name: "empty", set: nil, wantRows: 0, needsMore: true},
		{name: "single bare product", set: domain.ComparisonSet{{ID: "x"}}, wantRows: 0, needsMore: true},
		{
			name:      "exactly five features",
			set:       domain.ComparisonSet{{ID: "x", Features: []string{"1", "2", "3", "4", "5"}}},
			wantRows:  1,
			needsMore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildComparisonTable(tt.set)
			if len(table.Rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(table.Rows), tt.wantRows)
			}
			if table.NeedsMore != tt.needsMore {
				t.Errorf("NeedsMore = %v, want %v", table.NeedsMore, tt.needsMore)
			}
			if tt.wantRows == 1 && len(table.Rows[0].Lists[0]) != 5 {
				t.Errorf("features = %v, want 5 entries", table.Rows[0].Lists[0])
			}
		})
	}
}
