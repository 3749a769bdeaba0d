package order

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"attrsort/pkg/compare"
	"attrsort/pkg/errors"
	"attrsort/pkg/observability"
	"attrsort/pkg/pqueue"
	"attrsort/pkg/prefdag"
	"attrsort/pkg/token"
)

// Runner executes sort runs against one comparator.
//
// The Runner is stateless except for the comparator and logger - each run
// owns its own graph and queue instances, so multiple goroutines can safely
// share one Runner as long as the comparator itself is concurrency-safe.
type Runner struct {
	Comparator compare.Comparator
	Logger     *log.Logger
}

// NewRunner creates a runner with the given comparator.
// If logger is nil, the default logger is used.
func NewRunner(c compare.Comparator, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Comparator: c, Logger: logger}
}

// Sort computes a total order over the names in opts.
//
// The mode is validated before any graph work. A comparator failure aborts
// the whole run; no partial order is ever returned.
func (r *Runner) Sort(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Sort().OnSortStart(ctx, opts.Mode, len(opts.Names))

	result, err := r.sort(ctx, opts)
	observability.Sort().OnSortComplete(ctx, opts.Mode, len(opts.Names), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Stats.SortTime = time.Since(start)

	opts.Logger.Info("sorted group",
		"mode", opts.Mode,
		"tokens", result.Stats.TokenCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.SortTime)
	return result, nil
}

func (r *Runner) sort(ctx context.Context, opts Options) (*Result, error) {
	tokens := token.NormalizeAll(opts.Names)
	g := prefdag.New(tokens)

	hints := normalizeHints(opts.Hints)
	if !opts.SkipCanonical {
		hints = append(hints, CanonicalHint())
	}
	for _, h := range hints {
		g.AddEdges(h)
	}

	result := &Result{Mode: opts.Mode}
	var tieBreak pqueue.CompareFunc[token.Token]

	switch opts.Mode {
	case ModeDirect:
		tieBreak = r.comparatorTieBreak(ctx, &result.Stats)

	case ModeOff:
		stable := stableOrder(g, hints)
		g.AddEdges(stable)
		tieBreak = indexTieBreak(stable)

	case ModeStabilized:
		ranked, strengths, err := r.rank(ctx, g.Nodes(), opts, &result.Stats)
		if err != nil {
			return nil, err
		}
		result.Strengths = strengths
		g.AddEdges(ranked)
		g.AddEdges(stableOrder(g, hints))
		tieBreak = indexTieBreak(ranked)
	}

	sorted, err := g.TopoSort(ctx, tieBreak)
	if err != nil {
		return nil, err
	}

	result.Tokens = expandDuplicates(sorted, tokens)
	result.Names = mapBack(result.Tokens, opts.Names, tokens)
	result.Stats.TokenCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	return result, nil
}

// rank obtains every pairwise comparator outcome, feeds the win matrix to
// the estimator, and returns the tokens sorted by descending strength.
// Tokens whose strength is NaN carry no preference and keep their relative
// positions.
func (r *Runner) rank(ctx context.Context, nodes []token.Token, opts Options, stats *Stats) ([]token.Token, map[token.Token]float64, error) {
	start := time.Now()
	observability.Sort().OnRankStart(ctx, len(nodes))

	w := make([][]float64, len(nodes))
	for i := range w {
		w[i] = make([]float64, len(nodes))
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			ab, ba, err := r.Comparator.RawCompare(ctx, nodes[i], nodes[j])
			if err != nil {
				observability.Sort().OnRankComplete(ctx, len(nodes), time.Since(start), err)
				return nil, nil, err
			}
			stats.CompareCalls++
			w[i][j] = ab
			w[j][i] = ba
		}
	}

	p := opts.Estimator(w, opts.MaxIter)

	strengths := make(map[token.Token]float64, len(nodes))
	for i, n := range nodes {
		strengths[n] = p[i]
	}

	ranked := append([]token.Token(nil), nodes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := strengths[ranked[i]], strengths[ranked[j]]
		// NaN means no preference: never reorder, fall through to the
		// stable sort's original positions.
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return a > b
	})

	stats.RankTime = time.Since(start)
	observability.Sort().OnRankComplete(ctx, len(nodes), stats.RankTime, nil)
	return ranked, strengths, nil
}

// comparatorTieBreak breaks topological ties by asking the comparator
// directly. Failures propagate and abort the sort.
func (r *Runner) comparatorTieBreak(ctx context.Context, stats *Stats) pqueue.CompareFunc[token.Token] {
	return func(_ context.Context, a, b token.Token) (int, error) {
		score, err := r.Comparator.Compare(ctx, a, b)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeCompareFailed, err, "tie-break %s / %s", a, b)
		}
		stats.CompareCalls++
		switch {
		case score < 0:
			return -1, nil
		case score > 0:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Ordering Helpers
// =============================================================================

// normalizeHints normalizes hint entries, dropping empties. Pattern markers
// survive normalization.
func normalizeHints(raw [][]string) [][]token.Token {
	out := make([][]token.Token, 0, len(raw))
	for _, h := range raw {
		hint := make([]token.Token, 0, len(h))
		for _, entry := range h {
			t := token.Normalize(entry)
			if t == "" || t == token.Wildcard {
				continue
			}
			hint = append(hint, t)
		}
		out = append(out, hint)
	}
	return out
}

// stableOrder returns every graph node exactly once: nodes matched by hints
// first, in hint priority order, then untouched nodes in their original
// relative order. Added as the final hint (and used as the tie-break), this
// pulls hinted attributes to the front while keeping everything else
// stable.
func stableOrder(g *prefdag.Graph, hints [][]token.Token) []token.Token {
	seen := make(map[token.Token]bool, g.NodeCount())
	order := make([]token.Token, 0, g.NodeCount())
	for _, h := range hints {
		for _, entry := range h {
			for _, n := range g.MatchNodes(entry) {
				if !seen[n] {
					seen[n] = true
					order = append(order, n)
				}
			}
		}
	}
	for _, n := range g.Nodes() {
		if !seen[n] {
			seen[n] = true
			order = append(order, n)
		}
	}
	return order
}

// indexTieBreak compares tokens by their position in the given order.
// Tokens outside the order sort after everything in it.
func indexTieBreak(order []token.Token) pqueue.CompareFunc[token.Token] {
	index := make(map[token.Token]int, len(order))
	for i, n := range order {
		index[n] = i
	}
	return func(_ context.Context, a, b token.Token) (int, error) {
		ia, oka := index[a]
		ib, okb := index[b]
		switch {
		case !oka && !okb:
			return 0, nil
		case !oka:
			return 1, nil
		case !okb:
			return -1, nil
		case ia < ib:
			return -1, nil
		case ia > ib:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

// expandDuplicates restores input multiplicity: the graph folds duplicate
// tokens into one node, so each sorted node is repeated as often as it
// appeared in the input.
func expandDuplicates(sorted, input []token.Token) []token.Token {
	count := make(map[token.Token]int, len(input))
	for _, t := range input {
		count[t]++
	}
	out := make([]token.Token, 0, len(input))
	for _, t := range sorted {
		for range count[t] {
			out = append(out, t)
		}
	}
	return out
}

// mapBack recovers original spellings for the sorted tokens. Names that
// normalize to the same token are consumed in input order.
func mapBack(sorted []token.Token, names []string, tokens []token.Token) []string {
	spellings := make(map[token.Token][]string, len(names))
	for i, name := range names {
		spellings[tokens[i]] = append(spellings[tokens[i]], name)
	}
	out := make([]string, 0, len(sorted))
	for _, t := range sorted {
		s := spellings[t]
		out = append(out, s[0])
		spellings[t] = s[1:]
	}
	return out
}
