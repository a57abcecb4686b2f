package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/config"
	"github.com/abhisek/promptcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "promptcoach",
	Short: "Learn to prompt AI for learning, not outsourcing",
	Long: "PromptCoach scores your prompts, teaches better ones through lessons, " +
		"and lets you rage at a deliberately unhelpful assistant.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite file or postgres:// DSN (overrides PROMPTCOACH_DB env var)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "User ID (overrides PROMPTCOACH_USER env var)")
	rootCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(rageCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database DSN using --db flag (highest priority),
// then PROMPTCOACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if store.DriverForDSN(p) == store.DriverPostgres {
			return p, nil
		}
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the DSN and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dsn, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadConfig reads the environment and applies the --user flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.UserID = u
	}
	return cfg, nil
}
