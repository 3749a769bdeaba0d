package cli

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"attrsort/pkg/btrank"
	"attrsort/pkg/compare"
	"attrsort/pkg/order"
	"attrsort/pkg/token"
)

// Ranking strategies.
const (
	strategyBradleyTerry = "bradley-terry"
	strategyTournament   = "tournament"
)

// rankCommand creates the "rank" command.
func (c *CLI) rankCommand() *cobra.Command {
	var (
		strategy string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "rank [names...]",
		Short: "Rank names purely by pairwise comparator outcomes",
		Long: `Rank orders names using only the learned pairwise comparator, without
hints or the canonical table.

The "bradley-terry" strategy fits one latent strength per name from the
full pairwise win matrix and sorts by descending strength. The
"tournament" strategy treats every pairwise outcome as a weighted edge
and linearizes the resulting graph, breaking preference cycles greedily.`,
		Example: `  attrsort rank class id style
  attrsort rank --strategy tournament class id style`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := readNames(cmd, args)
			if err != nil {
				return err
			}

			comparator, err := c.newComparator(noCache)
			if err != nil {
				return err
			}

			// Remote comparisons can take a while; show a spinner for them.
			var spin *Spinner
			if c.Config.Comparator.Endpoint != "" {
				spin = newSpinner(cmd.Context(), "Comparing pairs...")
				spin.Start()
			}
			stop := func() {
				if spin != nil {
					spin.Stop()
				}
			}

			prog := newProgress(c.Logger)
			switch strategy {
			case strategyTournament:
				sorted, err := order.Tournament(cmd.Context(), comparator, names)
				stop()
				if err != nil {
					printError("Ranking failed: %v", err)
					return err
				}
				prog.done(fmt.Sprintf("Ranked %d names", len(names)))
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokenStrings(sorted), " "))
				return nil

			case strategyBradleyTerry:
				ranked, strengths, err := bradleyTerryRank(cmd.Context(), comparator, names, c.Config.Sort.MaxIter)
				stop()
				if err != nil {
					printError("Ranking failed: %v", err)
					return err
				}
				prog.done(fmt.Sprintf("Ranked %d names", len(names)))
				for _, t := range ranked {
					if s := strengths[t]; math.IsNaN(s) {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t(no preference)\n", t)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\n", t, s)
					}
				}
				return nil

			default:
				stop()
				return fmt.Errorf("invalid strategy: %q (must be one of: bradley-terry, tournament)", strategy)
			}
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", strategyBradleyTerry, "ranking strategy: bradley-terry or tournament")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the comparator result cache")

	return cmd
}

// bradleyTerryRank builds the pairwise win matrix from the comparator,
// fits strengths, and returns tokens in descending strength order.
// NaN-bearing tokens keep their original relative positions.
func bradleyTerryRank(ctx context.Context, c compare.Comparator, names []string, maxIter int) ([]token.Token, map[token.Token]float64, error) {
	tokens := token.NormalizeAll(names)
	seen := make(map[token.Token]bool, len(tokens))
	nodes := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			nodes = append(nodes, t)
		}
	}

	w := make([][]float64, len(nodes))
	for i := range w {
		w[i] = make([]float64, len(nodes))
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			ab, ba, err := c.RawCompare(ctx, nodes[i], nodes[j])
			if err != nil {
				return nil, nil, err
			}
			w[i][j] = ab
			w[j][i] = ba
		}
	}

	p := btrank.Estimate(w, maxIter)
	strengths := make(map[token.Token]float64, len(nodes))
	for i, n := range nodes {
		strengths[n] = p[i]
	}

	ranked := append([]token.Token(nil), nodes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := strengths[ranked[i]], strengths[ranked[j]]
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return a > b
	})
	return ranked, strengths, nil
}
