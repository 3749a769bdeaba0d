package token

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]Token{
		"Class":      "class",
		"  href ":    "href",
		"data_id":    "data-id",
		"Data-Track": "data-track",
		"ARIA_LABEL": "aria-label",
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	got := NormalizeAll([]string{"B", "a", "C"})
	want := []Token{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeAll order: got %v, want %v", got, want)
		}
	}
}

func TestPattern(t *testing.T) {
	p := Token("data-*")
	if !p.IsPattern() {
		t.Fatal("data-* should be a pattern")
	}
	if p.Prefix() != "data-" {
		t.Errorf("Prefix = %q, want %q", p.Prefix(), "data-")
	}
	if !p.Matches("data-id") {
		t.Error("data-* should match data-id")
	}
	if p.Matches("class") {
		t.Error("data-* should not match class")
	}
}

func TestConcreteMatchesOnlyItself(t *testing.T) {
	c := Token("class")
	if c.IsPattern() {
		t.Fatal("class should not be a pattern")
	}
	if !c.Matches("class") {
		t.Error("class should match class")
	}
	if c.Matches("classname") {
		t.Error("concrete token must not prefix-match")
	}
}

func TestCandidateNeverTreatedAsPattern(t *testing.T) {
	// A wildcard on the candidate side has no special meaning.
	if Token("data-id").Matches("data-*") {
		t.Error("candidate wildcard must be literal")
	}
}
