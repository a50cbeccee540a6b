package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie/internal/config"
	"github.com/aidanlsb/magpie/internal/ui"
)

var (
	dbPathFlag string
	configPath string

	// Resolved by the root PersistentPreRunE before any subcommand runs.
	resolvedDBPath string
	cfg            *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "magpie",
	Short: "Magpie - An embedded JSON document store",
	Long: `Magpie is an embedded JSON document store built on SQLite.

Documents are JSON bodies keyed by id and grouped into collections, all
inside a single database file. Fields are addressed with JSON paths,
queried with typed predicates, and can be promoted to indexed columns.

Named for the bird with a reputation for collecting small shiny things.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging()
		if !needsStore(cmd) {
			return nil
		}

		loaded, err := loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		resolvedDBPath = config.ResolveDatabasePath(dbPathFlag, cfg)
		return nil
	},
}

// needsStore reports whether cmd touches the document store. Meta commands
// run without resolving a database path.
func needsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "help", "version", "docs":
		return false
	}
	return cmd.Parent() == nil || cmd.Parent().Name() != "completion"
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the store database file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// getStorePath returns the resolved store database path.
func getStorePath() string {
	return resolvedDBPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	if p := strings.TrimSpace(configPath); p != "" {
		return config.LoadFrom(p)
	}
	return config.Load()
}
