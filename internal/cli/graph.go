package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"attrsort/pkg/order"
	"attrsort/pkg/prefdag"
	"attrsort/pkg/token"
	"attrsort/pkg/viz"
)

// graphCommand creates the "graph" command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		hints       []string
		noCanonical bool
		format      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "graph [names...]",
		Short: "Export the preference graph as DOT, SVG, or PNG",
		Long: `Graph builds the preference DAG for the given names exactly as "sort"
would - custom hints first, then the canonical table - and exports it
for inspection. This shows which precedence edges survived the
cycle-refusing insertion, which is the fastest way to debug a
surprising order.`,
		Example: `  attrsort graph style id data-track class
  attrsort graph --hint id,class --format svg -o prefs.svg style id class`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := readNames(cmd, args)
			if err != nil {
				return err
			}

			g := prefdag.New(token.NormalizeAll(names))
			for _, h := range c.gatherHints(hints) {
				g.AddEdges(token.NormalizeAll(h))
			}
			if !noCanonical && !c.Config.Sort.SkipCanonical {
				g.AddEdges(order.CanonicalHint())
			}

			dot := viz.ToDOT(g, viz.Options{})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				if data, err = viz.RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
			case "png":
				if data, err = viz.RenderPNG(cmd.Context(), dot); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Exported preference graph")
			printFile(output)
			printStats(g.NodeCount(), g.EdgeCount(), 0)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&hints, "hint", nil, "comma-separated precedence list, repeatable (highest priority first)")
	cmd.Flags().BoolVar(&noCanonical, "no-canonical", false, "disable the built-in canonical precedence table")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, or png (default: from -o extension, else dot)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if format == "" {
			switch strings.ToLower(filepath.Ext(output)) {
			case ".svg":
				format = "svg"
			case ".png":
				format = "png"
			default:
				format = "dot"
			}
		}
	}

	return cmd
}
