// Package prefdag maintains an acyclic preference graph over a fixed set of
// tokens and produces total orders from it.
//
// The node set is frozen at construction; ordering hints only accumulate
// edges. Hints are best-effort: entries matching no node are ignored, and
// any single edge whose insertion would close a cycle is silently dropped.
// The graph therefore stays acyclic by construction, and TopoSort always
// emits every node exactly once.
package prefdag

import (
	"context"

	"attrsort/pkg/pqueue"
	"attrsort/pkg/token"
)

// Edge is a directed precedence constraint: From must not sort after To.
type Edge struct {
	From token.Token
	To   token.Token
}

// Graph is a preference DAG over a fixed token set.
// The zero value is not usable; create instances with New.
// Graph is not safe for concurrent use.
type Graph struct {
	nodes    []token.Token
	index    map[token.Token]struct{}
	outgoing map[token.Token][]token.Token
	edgeSet  map[Edge]struct{}
}

// New creates a graph over exactly the given nodes. Duplicates are folded,
// keeping the first occurrence; insertion order is preserved for iteration.
func New(nodes []token.Token) *Graph {
	g := &Graph{
		index:    make(map[token.Token]struct{}, len(nodes)),
		outgoing: make(map[token.Token][]token.Token),
		edgeSet:  make(map[Edge]struct{}),
	}
	for _, n := range nodes {
		if _, seen := g.index[n]; seen {
			continue
		}
		g.index[n] = struct{}{}
		g.nodes = append(g.nodes, n)
	}
	return g
}

// Nodes returns the node set in insertion order.
// The returned slice must not be modified.
func (g *Graph) Nodes() []token.Token { return g.nodes }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edgeSet) }

// Edges returns every edge currently in the graph. The order follows node
// insertion order, then per-node edge insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edgeSet))
	for _, u := range g.nodes {
		for _, v := range g.outgoing[u] {
			edges = append(edges, Edge{From: u, To: v})
		}
	}
	return edges
}

// HasEdge reports whether the edge from→to is present.
func (g *Graph) HasEdge(from, to token.Token) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// MatchNodes resolves a hint entry to existing nodes. Pattern entries
// (trailing '*') return every node sharing the prefix in node insertion
// order; concrete entries return a singleton when the node exists, else
// nothing.
func (g *Graph) MatchNodes(entry token.Token) []token.Token {
	if entry.IsPattern() {
		var out []token.Token
		for _, n := range g.nodes {
			if entry.Matches(n) {
				out = append(out, n)
			}
		}
		return out
	}
	if _, ok := g.index[entry]; ok {
		return []token.Token{entry}
	}
	return nil
}

// HasPath reports, for every destination, whether it is reachable from src
// by following edges. Traversal is iterative depth-first and short-circuits
// once all destinations are confirmed.
func (g *Graph) HasPath(src token.Token, dsts []token.Token) map[token.Token]bool {
	reached := make(map[token.Token]bool, len(dsts))
	want := make(map[token.Token]struct{}, len(dsts))
	for _, d := range dsts {
		reached[d] = false
		want[d] = struct{}{}
	}

	visited := map[token.Token]struct{}{src: {}}
	stack := []token.Token{src}
	remaining := len(want)
	for len(stack) > 0 && remaining > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.outgoing[n] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			if _, ok := want[next]; ok && !reached[next] {
				reached[next] = true
				remaining--
			}
			stack = append(stack, next)
		}
	}
	return reached
}

// AddEdges folds one ordering hint into the graph. Each hint entry must not
// sort after later entries. Entries matching no node are skipped. An edge
// is only inserted when the target cannot already reach the source, which
// is exactly the condition under which insertion preserves acyclicity;
// conflicting fragments of the hint are dropped edge by edge.
func (g *Graph) AddEdges(hint []token.Token) {
	// Frontier: most recently seen matched nodes that have not yet gained
	// an outgoing edge into this hint's chain.
	var frontier []token.Token
	for _, entry := range hint {
		vs := g.MatchNodes(entry)
		if len(vs) == 0 {
			continue
		}

		retired := make(map[token.Token]bool, len(frontier))
		for _, v := range vs {
			reach := g.HasPath(v, frontier)
			for _, u := range frontier {
				if u == v || reach[u] {
					continue
				}
				g.addEdge(u, v)
				retired[u] = true
			}
		}

		next := append([]token.Token(nil), vs...)
		for _, u := range frontier {
			if !retired[u] {
				next = append(next, u)
			}
		}
		frontier = next
	}
}

func (g *Graph) addEdge(from, to token.Token) {
	e := Edge{From: from, To: to}
	if _, dup := g.edgeSet[e]; dup {
		return
	}
	g.edgeSet[e] = struct{}{}
	g.outgoing[from] = append(g.outgoing[from], to)
}

// TopoSort returns all nodes in an order respecting every edge, using
// Kahn's algorithm. Nodes that become available together are emitted in
// tieBreak order via a priority queue; the comparator may consult a remote
// model and may fail, in which case no order is returned.
func (g *Graph) TopoSort(ctx context.Context, tieBreak pqueue.CompareFunc[token.Token]) ([]token.Token, error) {
	indeg := make(map[token.Token]int, len(g.nodes))
	for _, u := range g.nodes {
		for _, v := range g.outgoing[u] {
			indeg[v]++
		}
	}

	ready := pqueue.NewQueue(tieBreak)
	for _, n := range g.nodes {
		if indeg[n] == 0 {
			if err := ready.Push(ctx, n); err != nil {
				return nil, err
			}
		}
	}

	out := make([]token.Token, 0, len(g.nodes))
	for {
		n, ok, err := ready.Pop(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, n)
		for _, next := range g.outgoing[n] {
			indeg[next]--
			if indeg[next] == 0 {
				if err := ready.Push(ctx, next); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}
