package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/lessons"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show prompting and rage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		evals, err := s.EvaluationRepo().EvaluationStats(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("query evaluation stats: %w", err)
		}
		rageStats, err := s.ResultRepo().Stats(ctx)
		if err != nil {
			return fmt.Errorf("query rage stats: %w", err)
		}
		progress, err := lessons.LoadProgress(ctx, s.SnapshotRepo(), cfg.UserID, cfg.SkillLevel)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 48)

		fmt.Fprintf(out, "Prompts (%s)\n%s\n", cfg.UserID, sep)
		fmt.Fprintf(out, "%-24s %d\n", "Scored", evals.Total)
		fmt.Fprintf(out, "%-24s %d\n", "Passing", evals.Passing)
		fmt.Fprintf(out, "%-24s %.1f\n", "Average score", evals.AvgScore)
		for _, k := range sortedKeys(evals.ByIntent) {
			fmt.Fprintf(out, "  %-22s %d\n", k, evals.ByIntent[k])
		}

		fmt.Fprintf(out, "\nLessons\n%s\n", sep)
		fmt.Fprintf(out, "%-24s %d\n", "Skill level", progress.SkillLevel)
		fmt.Fprintf(out, "%-24s %d\n", "Completed", len(progress.CompletedLessons))
		fmt.Fprintf(out, "%-24s %.0f%%\n", "Exercise success", progress.SuccessRate())

		fmt.Fprintf(out, "\nRage quits (everyone)\n%s\n", sep)
		fmt.Fprintf(out, "%-24s %d\n", "Sessions", rageStats.Sessions)
		fmt.Fprintf(out, "%-24s %d\n", "Total attempts", rageStats.TotalAttempts)
		fmt.Fprintf(out, "%-24s %d\n", "Legendary", rageStats.Legendary)
		fmt.Fprintf(out, "%-24s %.1f\n", "Avg entertainment", rageStats.AvgEntertained)
		for _, k := range sortedKeys(rageStats.ByFinalState) {
			fmt.Fprintf(out, "  %-22s %d\n", k, rageStats.ByFinalState[k])
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
