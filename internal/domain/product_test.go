package domain

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"", CategoryAll, true},
		{"all", CategoryAll, true},
		{"credit", CategoryCredit, true},
		{"INSURANCE", CategoryInsurance, true},
		{" Financing ", CategoryFinancing, true},
		{"crypto", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseSegment(t *testing.T) {
	tests := []struct {
		in     string
		want   Segment
		wantOK bool
	}{
		{"individual", SegmentIndividual, true},
		{"Individuals", SegmentIndividual, true},
		{"business", SegmentBusiness, true},
		{"businesses", SegmentBusiness, true},
		{"", "", false},
		{"government", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSegment(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSegment(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestProductMatches(t *testing.T) {
	p := Product{ID: "1", Category: CategoryInvestment, Segment: SegmentBusiness}

	tests := []struct {
		name     string
		segment  Segment
		category Category
		want     bool
	}{
		{"any segment any category", "", "", true},
		{"all category", SegmentBusiness, CategoryAll, true},
		{"exact", SegmentBusiness, CategoryInvestment, true},
		{"wrong segment", SegmentIndividual, CategoryAll, false},
		{"wrong category", SegmentBusiness, CategoryCredit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Matches(tt.segment, tt.category); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
