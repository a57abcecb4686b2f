package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/app"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/screens/home"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	svc, err := buildServices(ctx, cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	progress, err := lessons.LoadProgress(ctx, svc.store.SnapshotRepo(), svc.cfg.UserID, svc.cfg.SkillLevel)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(app.Options{
		SkipWelcome: skip,
		Deps: home.Deps{
			UserID:      svc.cfg.UserID,
			Coach:       svc.coach,
			Demo:        svc.demo,
			Catalog:     svc.catalog,
			Tutor:       svc.tutor,
			Progress:    progress,
			AutoAdvance: svc.autoAdvance(),
			NewManager:  rage.NewManager,
			Evals:       svc.store.EvaluationRepo(),
			Results:     svc.store.ResultRepo(),
			Snapshots:   svc.store.SnapshotRepo(),
		},
	})
}
