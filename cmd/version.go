package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden with -ldflags "-X github.com/abhisek/promptcoach/cmd.version=v1.2.3".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the promptcoach version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "promptcoach %s\n", version)
		if short, _ := cmd.Flags().GetBool("short"); short {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		fmt.Fprintf(out, "go        %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Fprintf(out, "commit    %s\n", s.Value)
			case "vcs.time":
				fmt.Fprintf(out, "built     %s\n", s.Value)
			}
		}
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version")
}
