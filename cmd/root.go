package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "stratiz",
	Short: "Study app for global strategy",
	Long: "Stratiz is a terminal study app for generic strategies in global competition: " +
		"chapters, a summary, a glossary and a short quiz.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STRATIZ_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to a content pack JSON file (defaults to the built-in pack)")

	rootCmd.Flags().String("page", "home", "Page to open: home, chapters, quiz, summary or glossary")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(glossaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STRATIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadPack returns the pack named by --content, or the built-in one.
func loadPack(cmd *cobra.Command) (*content.Pack, error) {
	p, _ := cmd.Flags().GetString("content")
	if p == "" {
		return content.Default(), nil
	}
	pack, err := content.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load content pack: %w", err)
	}
	return pack, nil
}
