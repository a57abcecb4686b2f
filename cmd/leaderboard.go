package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the most entertaining rage quits",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.ResultRepo().Leaderboard(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query leaderboard: %w", err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "Nobody has rage quit yet.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-16s  %6s  %-22s  %-12s  %5s  %s\n",
			"#", "User", "Fun", "Rating", "Final", "Tries", "Date")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for i, e := range entries {
			star := ""
			if e.Legendary {
				star = " ★"
			}
			fmt.Fprintf(out, "%-4d  %-16s  %6.1f  %-22s  %-12s  %5d  %s%s\n",
				i+1, truncate(e.UserID, 16), e.EntertainingMetric, e.PersistenceRating,
				e.FinalState, e.TotalAttempts, e.Timestamp.Local().Format("2006-01-02"), star)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", 10, "Number of entries to show")
	leaderboardCmd.Flags().Bool("json", false, "Print entries as JSON")
}
