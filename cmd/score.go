package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/feedback"
)

var scoreCmd = &cobra.Command{
	Use:   "score [prompt]",
	Short: "Score a prompt and print coaching feedback",
	Long:  "Score a prompt against the learning rubric. With no argument the prompt is read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := promptArg(cmd, args)
		if err != nil {
			return err
		}
		style, _ := cmd.Flags().GetString("style")
		asJSON, _ := cmd.Flags().GetBool("json")

		ctx := cmd.Context()
		svc, err := buildServices(ctx, cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.coach.Evaluate(ctx, coach.Request{
			UserID: svc.cfg.UserID,
			Prompt: prompt,
			Style:  feedback.Style(style),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}

		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}

		out := cmd.OutOrStdout()
		sc := res.Analysis.Score
		fmt.Fprintf(out, "Score:        %.1f / 100 (%s)\n", sc.Total, passLabel(sc.Passing()))
		fmt.Fprintf(out, "Intent:       %s\n", sc.Intent.Label())
		fmt.Fprintf(out, "Learning:     %.0f\n", sc.Learning)
		fmt.Fprintf(out, "Specificity:  %.0f\n", sc.Specificity)
		fmt.Fprintf(out, "Engagement:   %.0f\n", sc.Engagement)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintln(out, res.Feedback)
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringP("style", "s", "", "Feedback style: encouraging, direct or socratic")
	scoreCmd.Flags().Bool("json", false, "Print the full result as JSON")
}

// promptArg joins args into one prompt, or reads stdin when there are none.
func promptArg(cmd *cobra.Command, args []string) (string, error) {
	var prompt string
	if len(args) > 0 {
		prompt = strings.Join(args, " ")
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read prompt: %w", err)
		}
		prompt = string(b)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt is required")
	}
	return prompt, nil
}

func passLabel(passing bool) string {
	if passing {
		return "passing"
	}
	return "needs work"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
