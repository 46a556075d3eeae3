package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func product(id string) Product {
	return Product{ID: id, Name: "Product " + id, Category: CategoryCredit, Segment: SegmentIndividual}
}

func TestAddToComparison_DistinctIDs(t *testing.T) {
	for n := 0; n <= 7; n++ {
		t.Run(fmt.Sprintf("%d adds", n), func(t *testing.T) {
			set := ComparisonSet{}
			for i := 0; i < n; i++ {
				set, _ = AddToComparison(set, product(fmt.Sprintf("p%d", i)), MaxCompareItems)
			}
			want := n
			if want > MaxCompareItems {
				want = MaxCompareItems
			}
			if len(set) != want {
				t.Errorf("len(set) = %d, want %d", len(set), want)
			}
		})
	}
}

func TestAddToComparison_Duplicate(t *testing.T) {
	set := ComparisonSet{product("a"), product("b")}

	got, outcome := AddToComparison(set, product("a"), MaxCompareItems)

	if outcome != OutcomeAlreadyPresent {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeAlreadyPresent)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got.IDs()); diff != "" {
		t.Errorf("set changed (-want +got):\n%s", diff)
	}
}

func TestAddToComparison_Full(t *testing.T) {
	set := ComparisonSet{product("a"), product("b"), product("c"), product("d")}

	got, outcome := AddToComparison(set, product("e"), MaxCompareItems)

	if outcome != OutcomeLimitReached {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeLimitReached)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got.IDs()); diff != "" {
		t.Errorf("set changed (-want +got):\n%s", diff)
	}
}

func TestAddToComparison_DoesNotAliasInput(t *testing.T) {
	set := make(ComparisonSet, 1, 4)
	set[0] = product("a")

	next, _ := AddToComparison(set, product("b"), MaxCompareItems)
	next[0].Name = "mutated"

	if set[0].Name == "mutated" {
		t.Error("AddToComparison shares backing array with input")
	}
}

func TestRemoveFromComparison(t *testing.T) {
	tests := []struct {
		name        string
		set         ComparisonSet
		id          string
		wantIDs     []string
		wantOutcome Outcome
	}{
		{"removes middle", ComparisonSet{product("a"), product("b"), product("c")}, "b", []string{"a", "c"}, OutcomeRemoved},
		{"removes last", ComparisonSet{product("a"), product("b")}, "b", []string{"a"}, OutcomeRemoved},
		{"absent id", ComparisonSet{product("a")}, "z", []string{"a"}, OutcomeNotPresent},
		{"empty set", ComparisonSet{}, "a", []string{}, OutcomeNotPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome, removed := RemoveFromComparison(tt.set, tt.id)
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %s, want %s", outcome, tt.wantOutcome)
			}
			if diff := cmp.Diff(tt.wantIDs, got.IDs()); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if got.Contains(tt.id) {
				t.Errorf("Contains(%q) = true after remove", tt.id)
			}
			if (removed != nil) != (outcome == OutcomeRemoved) {
				t.Errorf("removed = %v with outcome %s", removed, outcome)
			}
		})
	}
}

func TestClearComparison(t *testing.T) {
	got, outcome := ClearComparison(ComparisonSet{product("a"), product("b")})
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if outcome != OutcomeCleared {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeCleared)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("serialized = %s, want []", raw)
	}
}

func TestComparisonSet_RoundTrip(t *testing.T) {
	set := ComparisonSet{product("c"), product("a"), product("b")}

	raw, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back ComparisonSet
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if diff := cmp.Diff(set, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestComparisonScenario(t *testing.T) {
	set := ComparisonSet{}
	for _, id := range []string{"A", "B", "C", "D"} {
		var outcome Outcome
		set, outcome = AddToComparison(set, product(id), MaxCompareItems)
		if outcome != OutcomeAdded {
			t.Fatalf("add %s: outcome = %s", id, outcome)
		}
	}

	set, outcome := AddToComparison(set, product("E"), MaxCompareItems)
	if outcome != OutcomeLimitReached {
		t.Errorf("add E on full set: outcome = %s", outcome)
	}

	set, _, _ = RemoveFromComparison(set, "B")
	if diff := cmp.Diff([]string{"A", "C", "D"}, set.IDs()); diff != "" {
		t.Errorf("after remove (-want +got):\n%s", diff)
	}

	set, outcome = AddToComparison(set, product("E"), MaxCompareItems)
	if outcome != OutcomeAdded {
		t.Errorf("add E after remove: outcome = %s", outcome)
	}
	if diff := cmp.Diff([]string{"A", "C", "D", "E"}, set.IDs()); diff != "" {
		t.Errorf("final set (-want +got):\n%s", diff)
	}
}

func TestNormalizeComparison(t *testing.T) {
	in := ComparisonSet{
		product("a"), {ID: ""}, product("b"), product("a"),
		product("c"), product("d"), product("e"),
	}

	got := NormalizeComparison(in, MaxCompareItems)

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got.IDs()); diff != "" {
		t.Errorf("normalized ids (-want +got):\n%s", diff)
	}
}

func TestComparisonNotice(t *testing.T) {
	p := product("x")

	tests := []struct {
		outcome   Outcome
		wantTitle string
		wantOK    bool
		variant   NoticeVariant
	}{
		{OutcomeAdded, "Product Added", true, NoticeDefault},
		{OutcomeAlreadyPresent, "Already Added", true, NoticeDefault},
		{OutcomeLimitReached, "Comparison Limit Reached", true, NoticeDestructive},
		{OutcomeRemoved, "Product Removed", true, NoticeDefault},
		{OutcomeCleared, "Comparison Cleared", true, NoticeDefault},
		{OutcomeNotPresent, "", false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			notice, ok := ComparisonNotice(tt.outcome, &p, MaxCompareItems)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if notice.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", notice.Title, tt.wantTitle)
			}
			if notice.Variant != tt.variant {
				t.Errorf("Variant = %q, want %q", notice.Variant, tt.variant)
			}
		})
	}

	limit, _ := ComparisonNotice(OutcomeLimitReached, nil, 4)
	if limit.Description != "You can compare a maximum of 4 products. Please remove an item to add a new one." {
		t.Errorf("limit description = %q", limit.Description)
	}
}
