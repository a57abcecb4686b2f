package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/lessons"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons and your progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := buildServices(ctx, cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		progress, err := lessons.LoadProgress(ctx, svc.store.SnapshotRepo(), svc.cfg.UserID, svc.cfg.SkillLevel)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  level %d  %d completed  %.0f%% good prompts\n\n",
			progress.UserID, progress.SkillLevel, len(progress.CompletedLessons), progress.SuccessRate())
		fmt.Fprintf(out, "%-3s  %-5s  %-24s  %s\n", "", "Level", "ID", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, l := range svc.catalog.All() {
			mark := " "
			if progress.Completed(l.ID) {
				mark = "✓"
			}
			fmt.Fprintf(out, "%-3s  %-5d  %-24s  %s\n", mark, l.Difficulty, l.ID, l.Title)
		}
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a lesson and its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg.LessonsFile)
		if err != nil {
			return err
		}
		l, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		printLesson(cmd, l)
		return nil
	},
}

var lessonsNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Recommend the next lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := buildServices(ctx, cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		progress, err := lessons.LoadProgress(ctx, svc.store.SnapshotRepo(), svc.cfg.UserID, svc.cfg.SkillLevel)
		if err != nil {
			return err
		}
		l, ok := svc.catalog.Next(progress)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "You've completed every lesson. Nice work!")
			return nil
		}
		printLesson(cmd, l)
		return nil
	},
}

func printLesson(cmd *cobra.Command, l lessons.Lesson) {
	out := cmd.OutOrStdout()
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(out, "%s  (level %d, %s)\n", l.Title, l.Difficulty, l.ID)
	fmt.Fprintln(out, l.Description)
	if len(l.Objectives) > 0 {
		fmt.Fprintln(out, "\nYou will learn to:")
		for _, o := range l.Objectives {
			fmt.Fprintf(out, "  • %s\n", o)
		}
	}
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, strings.TrimSpace(l.Content))
	for i, ex := range l.Exercises {
		fmt.Fprintln(out, sep)
		fmt.Fprintf(out, "Exercise %d (%s): %s\n", i+1, ex.ID, ex.Prompt)
		for _, h := range ex.Hints {
			fmt.Fprintf(out, "  hint: %s\n", h)
		}
	}
}

func init() {
	lessonsCmd.AddCommand(lessonsShowCmd)
	lessonsCmd.AddCommand(lessonsNextCmd)
}
