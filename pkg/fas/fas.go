// Package fas linearizes a weighted directed graph that may contain cycles.
//
// Sort implements a greedy feedback-arc-set heuristic: structural sinks are
// scheduled last and structural sources first, and when only cycles remain
// the node with the largest outgoing-minus-incoming weight is treated as a
// pseudo-source. The total weight of backward edges in the result is kept
// small, not minimal.
//
// The working graph is consumed destructively during the sort; inputs are
// plain edge lists, so callers rebuild cheaply when needed.
package fas

import (
	"context"

	"attrsort/pkg/pqueue"
	"attrsort/pkg/token"
)

// Edge is one weighted precedence observation: From should come before To,
// with Weight expressing how strongly. Repeated From/To pairs accumulate.
type Edge struct {
	From   token.Token
	To     token.Token
	Weight float64
}

// The three orderings the sort consults. Snapshots are immutable once
// pushed; a weight change resubmits the node under a fresh item ID.
const (
	viewOut pqueue.View = iota
	viewIn
	viewScore
)

// snapshot captures a node's weights at push time.
type snapshot struct {
	node token.Token
	in   float64
	out  float64
}

type nodeState struct {
	in      float64
	out     float64
	itemID  uint64
	present bool
}

// Sort returns a linear order over every node appearing in the edge list.
// For an acyclic input the order respects every edge; cycles are broken
// greedily by weight. The error return is reserved for internal queue
// misuse and is nil for well-formed inputs.
func Sort(edges []Edge) ([]token.Token, error) {
	ctx := context.Background()

	var nodes []token.Token
	state := make(map[token.Token]*nodeState)
	outAdj := make(map[token.Token]map[token.Token]float64)
	inAdj := make(map[token.Token]map[token.Token]float64)

	track := func(n token.Token) *nodeState {
		s, ok := state[n]
		if !ok {
			s = &nodeState{present: true}
			state[n] = s
			nodes = append(nodes, n)
			outAdj[n] = make(map[token.Token]float64)
			inAdj[n] = make(map[token.Token]float64)
		}
		return s
	}

	for _, e := range edges {
		from, to := track(e.From), track(e.To)
		from.out += e.Weight
		to.in += e.Weight
		outAdj[e.From][e.To] += e.Weight
		inAdj[e.To][e.From] += e.Weight
	}

	mv := pqueue.NewMultiView([]pqueue.ViewSpec[snapshot]{
		{View: viewOut, Compare: compareOut},
		{View: viewIn, Compare: compareIn},
		{View: viewScore, Compare: compareScore},
	})

	resubmit := func(n token.Token) error {
		s := state[n]
		item, err := mv.Push(ctx, snapshot{node: n, in: s.in, out: s.out})
		if err != nil {
			return err
		}
		s.itemID = item.ID
		return nil
	}

	for _, n := range nodes {
		if err := resubmit(n); err != nil {
			return nil, err
		}
	}

	// remove detaches n from the working graph, adjusting each remaining
	// neighbor's weights and requeueing it under a fresh snapshot.
	remove := func(n token.Token) error {
		state[n].present = false
		for m, w := range outAdj[n] {
			if s := state[m]; s.present {
				s.in -= w
				mv.Delete(s.itemID)
				if err := resubmit(m); err != nil {
					return err
				}
			}
		}
		for m, w := range inAdj[n] {
			if s := state[m]; s.present {
				s.out -= w
				mv.Delete(s.itemID)
				if err := resubmit(m); err != nil {
					return err
				}
			}
		}
		return nil
	}

	result := make([]token.Token, len(nodes))
	left, right := 0, len(nodes)-1

	// takeIf pops the view's minimum when zero reports true for its
	// snapshot, removing the node from the working graph.
	takeIf := func(v pqueue.View, zero func(snapshot) bool) (token.Token, bool, error) {
		snap, ok, err := mv.Peek(ctx, v)
		if err != nil || !ok || !zero(snap) {
			return "", false, err
		}
		if _, _, err := mv.Pop(ctx, v); err != nil {
			return "", false, err
		}
		return snap.node, true, remove(snap.node)
	}

	for mv.Len() > 0 {
		// Drain structural sinks to the right end; they are scheduled last.
		drained := false
		for {
			n, ok, err := takeIf(viewOut, func(s snapshot) bool { return s.out == 0 })
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			result[right] = n
			right--
			drained = true
		}

		// Drain structural sources to the left end; they are scheduled first.
		for {
			n, ok, err := takeIf(viewIn, func(s snapshot) bool { return s.in == 0 })
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			result[left] = n
			left++
			drained = true
		}
		if drained {
			continue
		}

		// Only cycles remain: the best pseudo-source is the node with the
		// largest out-minus-in weight.
		snap, ok, err := mv.Pop(ctx, viewScore)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		result[left] = snap.node
		left++
		if err := remove(snap.node); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func compareOut(_ context.Context, a, b pqueue.Item[snapshot]) (int, error) {
	if c := cmpFloat(a.Payload.out, b.Payload.out); c != 0 {
		return c, nil
	}
	return cmpID(a.ID, b.ID), nil
}

func compareIn(_ context.Context, a, b pqueue.Item[snapshot]) (int, error) {
	if c := cmpFloat(a.Payload.in, b.Payload.in); c != 0 {
		return c, nil
	}
	return cmpID(a.ID, b.ID), nil
}

// compareScore surfaces the node with the largest (out − in) first, breaking
// ties toward the node carrying less total weight.
func compareScore(_ context.Context, a, b pqueue.Item[snapshot]) (int, error) {
	if c := cmpFloat(a.Payload.in-a.Payload.out, b.Payload.in-b.Payload.out); c != 0 {
		return c, nil
	}
	if c := cmpFloat(a.Payload.in+a.Payload.out, b.Payload.in+b.Payload.out); c != 0 {
		return c, nil
	}
	return cmpID(a.ID, b.ID), nil
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpID(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
