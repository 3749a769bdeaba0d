package prefdag

import (
	"context"
	"testing"

	"attrsort/pkg/token"
)

// indexTieBreak orders tokens by their position in the given slice.
func indexTieBreak(order []token.Token) func(context.Context, token.Token, token.Token) (int, error) {
	pos := make(map[token.Token]int, len(order))
	for i, t := range order {
		pos[t] = i
	}
	return func(_ context.Context, a, b token.Token) (int, error) {
		return pos[a] - pos[b], nil
	}
}

func toks(ss ...string) []token.Token {
	out := make([]token.Token, len(ss))
	for i, s := range ss {
		out[i] = token.Token(s)
	}
	return out
}

func TestLinearHint(t *testing.T) {
	nodes := toks("A", "B", "C")
	g := New(nodes)
	g.AddEdges(toks("A", "B", "C"))

	got, err := g.TopoSort(context.Background(), indexTieBreak(nodes))
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	want := []string{"A", "B", "C"}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Fatalf("TopoSort = %v, want %v", got, want)
		}
	}
}

func TestMatchNodes(t *testing.T) {
	g := New(toks("data-id", "data-track", "class", "id"))

	if m := g.MatchNodes("data-*"); len(m) != 2 || m[0] != "data-id" || m[1] != "data-track" {
		t.Errorf("pattern match = %v", m)
	}
	if m := g.MatchNodes("class"); len(m) != 1 || m[0] != "class" {
		t.Errorf("concrete match = %v", m)
	}
	if m := g.MatchNodes("missing"); m != nil {
		t.Errorf("missing node matched: %v", m)
	}
}

func TestConflictingHintsStayAcyclic(t *testing.T) {
	nodes := toks("a", "b")
	g := New(nodes)
	g.AddEdges(toks("a", "b"))
	g.AddEdges(toks("b", "a")) // would close a cycle; dropped

	if g.HasEdge("b", "a") {
		t.Error("cycle-closing edge must be dropped")
	}
	if !g.HasEdge("a", "b") {
		t.Error("original edge must survive")
	}
	assertAcyclic(t, g)
}

func TestAddEdgesIdempotent(t *testing.T) {
	nodes := toks("x", "y", "z")
	g := New(nodes)
	hint := toks("x", "y", "z")

	g.AddEdges(hint)
	edges := g.EdgeCount()
	first, err := g.TopoSort(context.Background(), indexTieBreak(nodes))
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}

	g.AddEdges(hint)
	if g.EdgeCount() != edges {
		t.Errorf("re-applying a hint added edges: %d -> %d", edges, g.EdgeCount())
	}
	second, err := g.TopoSort(context.Background(), indexTieBreak(nodes))
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order changed after re-applying hint: %v vs %v", first, second)
		}
	}
}

func TestFrontierSkipsUnknownEntries(t *testing.T) {
	nodes := toks("p", "q")
	g := New(nodes)
	// "ghost" matches nothing; p and q must still be chained.
	g.AddEdges(toks("p", "ghost", "q"))
	if !g.HasEdge("p", "q") {
		t.Error("unknown entry should be transparent to the chain")
	}
}

func TestPatternHint(t *testing.T) {
	nodes := toks("class", "data-a", "data-b", "src")
	g := New(nodes)
	g.AddEdges(toks("class", "data-*", "src"))

	for _, e := range []Edge{
		{"class", "data-a"}, {"class", "data-b"},
		{"data-a", "src"}, {"data-b", "src"},
	} {
		if !g.HasEdge(e.From, e.To) {
			t.Errorf("missing edge %s -> %s", e.From, e.To)
		}
	}
	assertAcyclic(t, g)
}

func TestTopoSortEmitsEveryNodeOnce(t *testing.T) {
	nodes := toks("lone", "a", "b", "other")
	g := New(nodes)
	g.AddEdges(toks("a", "b"))

	got, err := g.TopoSort(context.Background(), indexTieBreak(nodes))
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	if len(got) != len(nodes) {
		t.Fatalf("TopoSort emitted %d nodes, want %d", len(got), len(nodes))
	}
	seen := map[token.Token]bool{}
	for _, n := range got {
		if seen[n] {
			t.Fatalf("node %s emitted twice", n)
		}
		seen[n] = true
	}
}

func TestTopoSortRespectsEdges(t *testing.T) {
	nodes := toks("d", "c", "b", "a")
	g := New(nodes)
	g.AddEdges(toks("a", "b"))
	g.AddEdges(toks("c", "d"))
	g.AddEdges(toks("b", "c"))

	got, err := g.TopoSort(context.Background(), indexTieBreak(nodes))
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	pos := map[token.Token]int{}
	for i, n := range got {
		pos[n] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("edge %s -> %s violated in %v", e.From, e.To, got)
		}
	}
}

func TestHasPath(t *testing.T) {
	g := New(toks("a", "b", "c", "d"))
	g.AddEdges(toks("a", "b", "c"))

	reach := g.HasPath("a", toks("c", "d"))
	if !reach["c"] {
		t.Error("c should be reachable from a")
	}
	if reach["d"] {
		t.Error("d should not be reachable from a")
	}
}

func TestDuplicateNodesFolded(t *testing.T) {
	g := New(toks("a", "b", "a"))
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
}

// assertAcyclic verifies no node can reach itself.
func assertAcyclic(t *testing.T, g *Graph) {
	t.Helper()
	for _, n := range g.Nodes() {
		var via []token.Token
		for _, e := range g.Edges() {
			if e.From == n {
				via = append(via, e.To)
			}
		}
		for _, next := range via {
			if next == n || g.HasPath(next, []token.Token{n})[n] {
				t.Fatalf("cycle through %s", n)
			}
		}
	}
}
