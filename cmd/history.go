package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your recently scored prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		user := cfg.UserID
		if all {
			user = ""
		}
		evals, err := s.EvaluationRepo().QueryEvaluations(cmd.Context(), user, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(evals) == 0 {
			fmt.Fprintln(out, "No prompts scored yet.")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %-16s  %-12s  %6s  %-2s  %-16s  %s\n",
			"ID", "Time", "User", "Score", "", "Intent", "Prompt")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, e := range evals {
			ok := "✗"
			if e.Passing {
				ok = "✓"
			}
			fmt.Fprintf(out, "%-5d  %-16s  %-12s  %6.1f  %-2s  %-16s  %s\n",
				e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), truncate(e.UserID, 12),
				e.Total, ok, e.Intent, truncate(strings.Join(strings.Fields(e.Prompt), " "), 40))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of prompts to show")
	historyCmd.Flags().Bool("all", false, "Show every user's prompts")
}
