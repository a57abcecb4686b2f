package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo [prompt]",
	Short: "Compare the reply to a prompt with the reply to a better one",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := promptArg(cmd, args)
		if err != nil {
			return err
		}
		improved, _ := cmd.Flags().GetString("improved")
		asJSON, _ := cmd.Flags().GetBool("json")

		ctx := cmd.Context()
		svc, err := buildServices(ctx, cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		res := svc.demo.Demonstrate(ctx, prompt, improved)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(out, "Pattern: %s", res.Pattern)
		if res.Simulated {
			fmt.Fprint(out, "  (simulated)")
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintf(out, "YOUR PROMPT\n%s\n\n%s\n", res.OriginalPrompt, res.BadResponse)
		fmt.Fprintln(out, sep)
		fmt.Fprintf(out, "IMPROVED PROMPT\n%s\n\n%s\n", res.ImprovedPrompt, res.GoodResponse)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, res.Explanation)
		return nil
	},
}

func init() {
	demoCmd.Flags().String("improved", "", "Improved prompt to compare against (generated when empty)")
	demoCmd.Flags().Bool("json", false, "Print the result as JSON")
}
