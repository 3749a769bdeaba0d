// Package order orchestrates the ordering pipeline: it turns raw attribute
// names plus precedence hints into one total order.
//
// # Architecture
//
// A sort run proceeds in four stages:
//
//  1. Normalize: raw names become tokens (pkg/token).
//  2. Hint: custom hints, then the canonical table, fold into a preference
//     DAG as edges (pkg/prefdag); conflicting fragments are dropped.
//  3. Rank (mode stabilized only): all pairwise comparator outcomes feed
//     the Bradley–Terry estimator (pkg/btrank), and the resulting strength
//     order becomes one more hint.
//  4. Sort: a tie-broken topological sort of the DAG yields the final
//     order.
//
// Each run owns its DAG and queues; the only shared resource is the
// comparator's cache, which callers wire into the comparator itself
// (see pkg/compare).
//
// # Usage
//
// Create a Runner and execute a sort:
//
//	runner := order.NewRunner(comparator, logger)
//	opts := order.Options{
//	    Names: []string{"style", "id", "data-track", "class"},
//	    Mode:  order.ModeOff,
//	}
//	result, err := runner.Sort(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Names)
package order

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"attrsort/pkg/btrank"
	"attrsort/pkg/errors"
	"attrsort/pkg/token"
)

// =============================================================================
// Modes - Single Source of Truth for CLI, API, and Config
// =============================================================================

// The three operating modes. The set is closed: anything else is rejected
// before any graph work begins.
const (
	// ModeDirect breaks topological ties by calling the pairwise
	// comparator directly. Output may vary run to run when the model does.
	ModeDirect = "direct"

	// ModeOff adds the input's original order as a final hint and breaks
	// ties by original position. Fully deterministic and comparator-free.
	ModeOff = "off"

	// ModeStabilized ranks the whole input with the Bradley–Terry
	// estimator over pairwise comparator outcomes, adds that ranking as a
	// final hint, and breaks ties by rank position.
	ModeStabilized = "stabilized"
)

// DefaultMode is applied when Options.Mode is empty.
const DefaultMode = ModeOff

// ValidModes is the set of supported operating modes.
var ValidModes = map[string]bool{
	ModeDirect:     true,
	ModeOff:        true,
	ModeStabilized: true,
}

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid mode: %q (must be one of: direct, off, stabilized)", mode)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Estimator converts a pairwise win matrix into one strength per item.
// Production code uses btrank.Estimate; tests substitute fixed outputs.
type Estimator func(w [][]float64, maxIter int) []float64

// Options configures one sort run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Names is the group of raw attribute names, in original order.
	Names []string `json:"names"`

	// Hints are custom precedence lists applied before the canonical
	// table, in priority order. Entries may carry a trailing '*' to match
	// by prefix. Entries matching nothing are ignored.
	Hints [][]string `json:"hints,omitempty"`

	// Mode selects how items untouched by hints are finally ordered.
	Mode string `json:"mode,omitempty"`

	// SkipCanonical disables the built-in canonical precedence table.
	SkipCanonical bool `json:"skip_canonical,omitempty"`

	// MaxIter caps the rank estimator's iterations (mode stabilized).
	// Zero means btrank.DefaultMaxIter.
	MaxIter int `json:"max_iter,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger `json:"-"`
	Estimator Estimator   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the mode and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.MaxIter <= 0 {
		o.MaxIter = btrank.DefaultMaxIter
	}
	if o.Estimator == nil {
		o.Estimator = btrank.Estimate
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one sort run.
type Result struct {
	// Tokens is the sorted token sequence, a permutation of the
	// normalized input.
	Tokens []token.Token `json:"tokens"`

	// Names is the sorted input mapped back to its original spellings.
	Names []string `json:"names"`

	// Strengths holds the estimator's per-token strength for mode
	// stabilized; nil otherwise. NaN marks tokens with no observed
	// preference either way.
	Strengths map[token.Token]float64 `json:"strengths,omitempty"`

	// Mode is the mode actually applied (after defaulting).
	Mode string `json:"mode"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`
}

// MarshalJSON encodes the result with NaN strengths as null, since NaN is
// not representable in JSON.
func (r *Result) MarshalJSON() ([]byte, error) {
	strengths := make(map[string]*float64, len(r.Strengths))
	for t, v := range r.Strengths {
		if math.IsNaN(v) {
			strengths[t.String()] = nil
			continue
		}
		v := v
		strengths[t.String()] = &v
	}
	if len(strengths) == 0 {
		strengths = nil
	}

	type alias struct {
		Tokens    []token.Token       `json:"tokens"`
		Names     []string            `json:"names"`
		Strengths map[string]*float64 `json:"strengths,omitempty"`
		Mode      string              `json:"mode"`
		Stats     Stats               `json:"stats"`
	}
	return json.Marshal(alias{
		Tokens:    r.Tokens,
		Names:     r.Names,
		Strengths: strengths,
		Mode:      r.Mode,
		Stats:     r.Stats,
	})
}

// Stats contains sort execution statistics.
type Stats struct {
	TokenCount   int           `json:"token_count"`
	EdgeCount    int           `json:"edge_count"`
	CompareCalls int           `json:"compare_calls"`
	RankTime     time.Duration `json:"rank_time,omitempty"`
	SortTime     time.Duration `json:"sort_time"`
}
