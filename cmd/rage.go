package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/store"
)

var rageCmd = &cobra.Command{
	Use:   "rage",
	Short: "Chat with the least helpful assistant ever, in plain text",
	Long: "Line-based rage chat. Type a prompt per line; /stats shows the meter, " +
		"/quit rage-quits and saves your score. End of input also quits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		noSave, _ := cmd.Flags().GetBool("no-save")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		var results store.ResultRepo
		if !noSave {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			results = st.ResultRepo()
		}

		mgr := rage.NewManager()
		mgr.Start(cfg.UserID)
		return rageLoop(cmd, mgr, results)
	},
}

func init() {
	rageCmd.Flags().Bool("no-save", false, "Don't record the result on the leaderboard")
}

func rageLoop(cmd *cobra.Command, mgr *rage.Manager, results store.ResultRepo) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "bot: Hi! I'm your extremely helpful assistant. What can I do for you today?")

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you: ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return finishRage(cmd, mgr, results)
		case "/stats":
			printRageSummary(out, mgr.Summary())
			continue
		}

		reply, state, _, err := mgr.Process(line)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "bot: %s\n", reply)
		fmt.Fprintf(out, "     [%s]\n", strings.ToUpper(state.Title()))
		if mgr.ShouldOfferRageQuit() {
			fmt.Fprintln(out, "     You seem upset. Type /quit to rage quit and see your score.")
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(out)
	return finishRage(cmd, mgr, results)
}

func finishRage(cmd *cobra.Command, mgr *rage.Manager, results store.ResultRepo) error {
	out := cmd.OutOrStdout()
	res, err := mgr.RageQuit()
	if errors.Is(err, rage.ErrNoAttempts) {
		fmt.Fprintln(out, "You left without saying a word. Nothing to score.")
		return nil
	}
	if err != nil {
		return err
	}

	printRageResult(out, res)
	if results != nil {
		if err := rage.Save(cmd.Context(), results, res); err != nil {
			fmt.Fprintf(os.Stderr, "warning: result not saved: %v\n", err)
		}
	}
	return nil
}

func printRageSummary(w io.Writer, s rage.Summary) {
	fmt.Fprintf(w, "     %s after %d attempts in %s. Politeness decay %.0f, profanity %d.\n",
		s.CurrentState.Title(), s.AttemptCount, s.DurationDisplay, s.PolitenessDecay, s.ProfanityCount)
}

func printRageResult(w io.Writer, res *rage.Result) {
	sc := res.Score
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, res.SummaryTitle())
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Attempts:              %d\n", sc.TotalAttempts)
	fmt.Fprintf(w, "Time:                  %s\n", rage.FormatDuration(time.Duration(sc.TimeElapsedSeconds*float64(time.Second))))
	fmt.Fprintf(w, "Peak rage:             %s\n", sc.MaxRageLevel.Title())
	fmt.Fprintf(w, "Politeness decay:      %.0f%%\n", sc.PolitenessDecay)
	fmt.Fprintf(w, "Profanity creativity:  %d\n", sc.ProfanityCreativity)
	fmt.Fprintf(w, "Caps lock escalation:  %d\n", sc.CapsEscalation)
	fmt.Fprintf(w, "Pleas for help:        %d\n", sc.PleaCount)
	fmt.Fprintf(w, "Philosophical score:   %.0f\n", sc.PhilosophicalScore)
	fmt.Fprintf(w, "Entertainment value:   %.1f / 100\n", res.EntertainingMetric())
	if sc.Legendary() {
		fmt.Fprintln(w, "★ LEGENDARY SUFFERING ★")
	}
	if res.Achievement != "" {
		fmt.Fprintf(w, "Achievement unlocked:  %s\n", res.Achievement)
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, res.Commentary)
}
