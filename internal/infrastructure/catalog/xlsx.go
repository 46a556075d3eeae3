package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/xuri/excelize/v2"
)

// listSeparator splits multi-value cells (features, benefits, eligibility)
const listSeparator = ";"

// loadXLSX reads products from the first sheet. The first row is a header
// naming product fields as in the JSON form (id, name, category, ...).
// Unknown columns are ignored.
func loadXLSX(path string) ([]domain.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidCatalog)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q has no product rows", domain.ErrInvalidCatalog, sheets[0])
	}

	columns := mapColumns(rows[0])
	if _, ok := columns["id"]; !ok {
		return nil, fmt.Errorf("%w: header has no id column", domain.ErrInvalidCatalog)
	}

	var products []domain.Product
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		p, err := rowToProduct(row, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrInvalidCatalog, i+2, err)
		}
		products = append(products, p)
	}

	return products, Validate(products)
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" {
			columns[key] = i
		}
	}
	return columns
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowToProduct(row []string, columns map[string]int) (domain.Product, error) {
	cell := func(name string) string {
		i, ok := columns[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	list := func(name string) []string {
		raw := cell(name)
		if raw == "" {
			return nil
		}
		var out []string
		for _, part := range strings.Split(raw, listSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	p := domain.Product{
		ID:              cell("id"),
		Name:            cell("name"),
		Tagline:         cell("tagline"),
		Description:     cell("description"),
		LongDescription: cell("longDescription"),
		ImageURL:        cell("imageUrl"),
		Provider:        cell("provider"),
		Features:        list("features"),
		Benefits:        list("benefits"),
		InterestRate:    cell("interestRate"),
		LoanTerm:        cell("loanTerm"),
		MaxLoanAmount:   cell("maxLoanAmount"),
		CoverageAmount:  cell("coverageAmount"),
		InvestmentType:  cell("investmentType"),
		MinInvestment:   cell("minInvestment"),
		Fees:            cell("fees"),
		Eligibility:     list("eligibility"),
		AIHint:          cell("aiHint"),
		DetailsURL:      cell("detailsUrl"),
	}

	if c, ok := domain.ParseCategory(cell("category")); ok {
		p.Category = c
	} else {
		p.Category = domain.Category(cell("category"))
	}
	if s, ok := domain.ParseSegment(cell("segment")); ok {
		p.Segment = s
	} else {
		p.Segment = domain.Segment(cell("segment"))
	}

	if raw := cell("averageRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("averageRating %q: %v", raw, err)
		}
		p.AverageRating = v
	}
	if raw := cell("reviewCount"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("reviewCount %q: %v", raw, err)
		}
		p.ReviewCount = v
	}

	return p, nil
}
