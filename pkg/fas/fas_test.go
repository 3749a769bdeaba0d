package fas

import (
	"testing"

	"attrsort/pkg/token"
)

func position(order []token.Token) map[token.Token]int {
	pos := make(map[token.Token]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	return pos
}

func TestAcyclicRespectsEveryEdge(t *testing.T) {
	edges := []Edge{
		{"a", "b", 1},
		{"b", "c", 2},
		{"a", "c", 1},
		{"c", "d", 3},
	}
	got, err := Sort(edges)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Sort returned %d nodes, want 4", len(got))
	}
	pos := position(got)
	for _, e := range edges {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("edge %s -> %s violated in %v", e.From, e.To, got)
		}
	}
}

func TestOutputIsPermutation(t *testing.T) {
	edges := []Edge{
		{"x", "y", 1},
		{"y", "z", 1},
		{"z", "x", 1}, // cycle
		{"w", "x", 1},
	}
	got, err := Sort(edges)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Sort returned %d nodes, want 4", len(got))
	}
	seen := map[token.Token]bool{}
	for _, n := range got {
		if seen[n] {
			t.Fatalf("node %s placed twice in %v", n, got)
		}
		seen[n] = true
	}
	for _, n := range []token.Token{"w", "x", "y", "z"} {
		if !seen[n] {
			t.Errorf("node %s missing from %v", n, got)
		}
	}
}

func TestCycleBrokenByWeight(t *testing.T) {
	// Two-node cycle where a -> b carries far more weight than b -> a.
	// Keeping the heavy edge forward means a must precede b.
	got, err := Sort([]Edge{
		{"a", "b", 10},
		{"b", "a", 1},
	})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	pos := position(got)
	if pos["a"] >= pos["b"] {
		t.Errorf("heavy edge a -> b should be forward, got %v", got)
	}
}

func TestSourcesBeforeCycleBeforeSinks(t *testing.T) {
	// source -> (cycle p <-> q) -> sink
	got, err := Sort([]Edge{
		{"source", "p", 1},
		{"p", "q", 5},
		{"q", "p", 1},
		{"q", "sink", 1},
	})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	pos := position(got)
	if pos["source"] != 0 {
		t.Errorf("source should be first: %v", got)
	}
	if pos["sink"] != len(got)-1 {
		t.Errorf("sink should be last: %v", got)
	}
	if pos["p"] >= pos["q"] {
		t.Errorf("heavy edge p -> q should be forward: %v", got)
	}
}

func TestParallelEdgesAccumulate(t *testing.T) {
	// Three light observations a -> b outweigh one heavier b -> a.
	got, err := Sort([]Edge{
		{"a", "b", 1},
		{"a", "b", 1},
		{"a", "b", 1},
		{"b", "a", 2},
	})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	pos := position(got)
	if pos["a"] >= pos["b"] {
		t.Errorf("accumulated weight should keep a before b: %v", got)
	}
}

func TestEmptyInput(t *testing.T) {
	got, err := Sort(nil)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Sort(nil) = %v, want empty", got)
	}
}

func TestDeterministic(t *testing.T) {
	edges := []Edge{
		{"a", "b", 1},
		{"b", "c", 1},
		{"c", "a", 1},
		{"c", "d", 2},
		{"d", "b", 1},
	}
	first, err := Sort(edges)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Sort(edges)
		if err != nil {
			t.Fatalf("Sort: %v", err)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d differs: %v vs %v", i, first, again)
			}
		}
	}
}
