package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrProductNotFound is returned when a product ID is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are malformed
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrValidation is returned when a flow input or output fails its schema
	ErrValidation = errors.New("validation failed")

	// ErrCompletionFailed is returned when the hosted model call fails
	ErrCompletionFailed = errors.New("completion request failed")

	// ErrMalformedOutput is returned when model output is not the expected JSON
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrKeyNotFound is returned by session stores for absent keys
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidCatalog is returned when catalog data fails to load
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// ValidationError lists per-field problems with a request or model output.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + joinFields(e.Fields)
}

// Is reports whether target is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func joinFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + fields[name]
	}
	return strings.Join(parts, "; ")
}
