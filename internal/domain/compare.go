package domain

import "fmt"

// MaxCompareItems is the default capacity of a comparison set
const MaxCompareItems = 4

// CompareStorageKey is the session store key holding the serialized comparison set
const CompareStorageKey = "compareItems"

// ComparisonSet is an ordered list of products, unique by ID.
// Insertion order is preserved so comparison table columns stay stable.
type ComparisonSet []Product

// Outcome tags the result of a comparison set transition
type Outcome string

const (
	OutcomeAdded          Outcome = "added"
	OutcomeAlreadyPresent Outcome = "already_present"
	OutcomeLimitReached   Outcome = "limit_reached"
	OutcomeRemoved        Outcome = "removed"
	OutcomeNotPresent     Outcome = "not_present"
	OutcomeCleared        Outcome = "cleared"
)

// Changed reports whether the outcome altered the set
func (o Outcome) Changed() bool {
	return o == OutcomeAdded || o == OutcomeRemoved || o == OutcomeCleared
}

// Contains reports whether a product with the given ID is in the set
func (s ComparisonSet) Contains(id string) bool {
	return s.index(id) >= 0
}

// IDs returns product IDs in set order
func (s ComparisonSet) IDs() []string {
	ids := make([]string, len(s))
	for i, p := range s {
		ids[i] = p.ID
	}
	return ids
}

func (s ComparisonSet) index(id string) int {
	for i, p := range s {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// AddToComparison appends product unless it is already present or the set
// holds max entries. The input set is never modified.
func AddToComparison(set ComparisonSet, product Product, max int) (ComparisonSet, Outcome) {
	if set.Contains(product.ID) {
		return set, OutcomeAlreadyPresent
	}
	if len(set) >= max {
		return set, OutcomeLimitReached
	}
	next := make(ComparisonSet, len(set), len(set)+1)
	copy(next, set)
	return append(next, product), OutcomeAdded
}

// RemoveFromComparison drops the product with the given ID. The removed
// product is returned so callers can name it in a notice.
func RemoveFromComparison(set ComparisonSet, id string) (ComparisonSet, Outcome, *Product) {
	i := set.index(id)
	if i < 0 {
		return set, OutcomeNotPresent, nil
	}
	removed := set[i]
	next := make(ComparisonSet, 0, len(set)-1)
	next = append(next, set[:i]...)
	next = append(next, set[i+1:]...)
	return next, OutcomeRemoved, &removed
}

// ClearComparison empties the set unconditionally
func ClearComparison(ComparisonSet) (ComparisonSet, Outcome) {
	return ComparisonSet{}, OutcomeCleared
}

// NormalizeComparison drops entries without an ID or with a repeated ID and
// truncates to max. Used on data read back from storage.
func NormalizeComparison(set ComparisonSet, max int) ComparisonSet {
	out := make(ComparisonSet, 0, len(set))
	for _, p := range set {
		if p.ID == "" || out.Contains(p.ID) {
			continue
		}
		if len(out) == max {
			break
		}
		out = append(out, p)
	}
	return out
}

// NoticeVariant selects how a notice is presented
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a transient user-facing message describing an operation outcome
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

// ComparisonNotice builds the notice for a transition outcome. The second
// return value is false for outcomes that stay silent.
func ComparisonNotice(outcome Outcome, product *Product, max int) (Notice, bool) {
	name := ""
	if product != nil {
		name = product.Name
	}

	switch outcome {
	case OutcomeAdded:
		return Notice{
			Title:       "Product Added",
			Description: fmt.Sprintf("%s has been added to comparison.", name),
			Variant:     NoticeDefault,
		}, true
	case OutcomeAlreadyPresent:
		return Notice{
			Title:       "Already Added",
			Description: fmt.Sprintf("%s is already in your comparison list.", name),
			Variant:     NoticeDefault,
		}, true
	case OutcomeLimitReached:
		return Notice{
			Title:       "Comparison Limit Reached",
			Description: fmt.Sprintf("You can compare a maximum of %d products. Please remove an item to add a new one.", max),
			Variant:     NoticeDestructive,
		}, true
	case OutcomeRemoved:
		return Notice{
			Title:       "Product Removed",
			Description: fmt.Sprintf("%s has been removed from comparison.", name),
			Variant:     NoticeDefault,
		}, true
	case OutcomeCleared:
		return Notice{
			Title:       "Comparison Cleared",
			Description: "All products have been removed from comparison.",
			Variant:     NoticeDefault,
		}, true
	}
	return Notice{}, false
}

// ComparisonResult is returned by comparison operations
type ComparisonResult struct {
	Items   ComparisonSet `json:"items"`
	Outcome Outcome       `json:"outcome"`
	Notice  *Notice       `json:"notice,omitempty"`
}

// ComparisonRow is one attribute row of the comparison table.
// Values are aligned with the set order.
type ComparisonRow struct {
	Label  string     `json:"label"`
	Values []string   `json:"values,omitempty"`
	Lists  [][]string `json:"lists,omitempty"`
}

// ComparisonTable is the side-by-side view of a comparison set
type ComparisonTable struct {
	Products  []Product       `json:"products"`
	Rows      []ComparisonRow `json:"rows"`
	NeedsMore bool            `json:"needsMore"`
}
