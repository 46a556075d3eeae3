// Package catalog loads the read-only product catalog and its seed reviews.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raisket/marketplace/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed/products.json seed/reviews.json
var seedFS embed.FS

// Seed returns the built-in demo catalog and reviews
func Seed() ([]domain.Product, []domain.Review, error) {
	rawProducts, err := seedFS.ReadFile("seed/products.json")
	if err != nil {
		return nil, nil, fmt.Errorf("read seed products: %w", err)
	}
	products, err := decodeJSON(rawProducts)
	if err != nil {
		return nil, nil, err
	}

	rawReviews, err := seedFS.ReadFile("seed/reviews.json")
	if err != nil {
		return nil, nil, fmt.Errorf("read seed reviews: %w", err)
	}
	var reviews []domain.Review
	if err := json.Unmarshal(rawReviews, &reviews); err != nil {
		return nil, nil, fmt.Errorf("%w: decode seed reviews: %v", domain.ErrInvalidCatalog, err)
	}

	return products, reviews, nil
}

// LoadFile reads a catalog file, choosing the decoder by extension:
// .json, .yaml/.yml or .xlsx
func LoadFile(path string) ([]domain.Product, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return decodeJSON(raw)
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return decodeYAML(raw)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q", domain.ErrInvalidCatalog, ext)
	}
}

func decodeJSON(raw []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return products, Validate(products)
}

func decodeYAML(raw []byte) ([]domain.Product, error) {
	var doc struct {
		Products []domain.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return doc.Products, Validate(doc.Products)
}

// Validate checks ids are present and unique and that category and segment
// are known values
func Validate(products []domain.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("%w: no products", domain.ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: product %d has no id", domain.ErrInvalidCatalog, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate product id %q", domain.ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true

		if p.Name == "" {
			return fmt.Errorf("%w: product %q has no name", domain.ErrInvalidCatalog, p.ID)
		}
		if c, ok := domain.ParseCategory(string(p.Category)); !ok || c == domain.CategoryAll || c != p.Category {
			return fmt.Errorf("%w: product %q has invalid category %q", domain.ErrInvalidCatalog, p.ID, p.Category)
		}
		if p.Segment != domain.SegmentIndividual && p.Segment != domain.SegmentBusiness {
			return fmt.Errorf("%w: product %q has invalid segment %q", domain.ErrInvalidCatalog, p.ID, p.Segment)
		}
	}
	return nil
}
