package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"attrsort/pkg/buildinfo"
	"attrsort/pkg/cache"
	"attrsort/pkg/compare"
	"attrsort/pkg/order"
	"attrsort/pkg/token"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "attrsort"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "attrsort",
		Short:        "Attrsort computes stable orders for attribute names",
		Long:         `Attrsort sorts attribute and identifier names by combining explicit precedence hints, a built-in canonical table, and a learned pairwise comparator into one total order.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/attrsort/config.toml)")

	// Register all subcommands
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.rankCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates an order runner wired to the configured comparator and
// cache backend.
func (c *CLI) newRunner(noCache bool) (*order.Runner, error) {
	comparator, err := c.newComparator(noCache)
	if err != nil {
		return nil, err
	}
	return order.NewRunner(comparator, c.Logger), nil
}

// newComparator builds the comparator stack: a remote model client when an
// endpoint is configured, a neutral static comparator otherwise, wrapped in
// the configured cache backend.
func (c *CLI) newComparator(noCache bool) (compare.Comparator, error) {
	var base compare.Comparator
	if c.Config.Comparator.Endpoint != "" {
		base = compare.NewRemote(c.Config.Comparator.Endpoint, c.Config.Comparator.Timeout())
	} else {
		base = compare.NewStatic(nil)
	}

	backend, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return compare.NewCached(base, backend, c.Config.Cache.TTLDuration()), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return c.Config.Cache.Open()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/attrsort/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// parseHint splits a comma-separated hint flag into one ordering hint.
func parseHint(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// gatherHints combines --hint flags (highest priority) with config hints.
func (c *CLI) gatherHints(flagHints []string) [][]string {
	var hints [][]string
	for _, h := range flagHints {
		hints = append(hints, parseHint(h))
	}
	for _, h := range c.Config.Hints {
		hints = append(hints, h.Entries)
	}
	return hints
}

// readNames returns the names to sort: command arguments, or stdin lines
// when no arguments are given.
func readNames(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// tokenStrings converts tokens for display.
func tokenStrings(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}
