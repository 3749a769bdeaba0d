package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"attrsort/pkg/order"
)

// sortCommand creates the "sort" command.
func (c *CLI) sortCommand() *cobra.Command {
	var (
		mode        string
		hints       []string
		noCanonical bool
		noCache     bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "sort [names...]",
		Short: "Order a group of attribute names",
		Long: `Sort computes a total order over the given attribute names. Names are
read from the arguments, or from stdin (one per line) when no arguments
are given.

Precedence comes from --hint lists (highest priority first), then config
hints, then the built-in canonical table. The --mode flag selects how
unhinted names are ordered: "off" keeps their original order, "direct"
asks the comparator pair by pair, and "stabilized" ranks the whole group
with the pairwise rank estimator first.`,
		Example: `  attrsort sort style id data-track class
  attrsort sort --hint id,class --mode stabilized style id data-track class
  cat names.txt | attrsort sort --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := readNames(cmd, args)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}

			opts := order.Options{
				Names:         names,
				Hints:         c.gatherHints(hints),
				Mode:          mode,
				SkipCanonical: noCanonical || c.Config.Sort.SkipCanonical,
				MaxIter:       c.Config.Sort.MaxIter,
				Logger:        c.Logger,
			}
			if opts.Mode == "" {
				opts.Mode = c.Config.Sort.Mode
			}

			prog := newProgress(c.Logger)
			result, err := runner.Sort(cmd.Context(), opts)
			if err != nil {
				printError("Sort failed: %v", err)
				return err
			}
			prog.done(fmt.Sprintf("Sorted %d names", len(names)))

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(result.Names, " "))
			printStats(result.Stats.TokenCount, result.Stats.EdgeCount, result.Stats.CompareCalls)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "ordering mode: direct, off, or stabilized (default: off)")
	cmd.Flags().StringArrayVar(&hints, "hint", nil, "comma-separated precedence list, repeatable (highest priority first)")
	cmd.Flags().BoolVar(&noCanonical, "no-canonical", false, "disable the built-in canonical precedence table")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the comparator result cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full result as JSON")

	return cmd
}
