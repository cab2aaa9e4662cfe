package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ariel-frischer/shipkit/internal/release"
)

var suggestCmd = &cobra.Command{
	Use:          "suggest",
	Short:        "Preview the changelog section for the next release",
	Long:         `Classify commits since the last tag, derive the suggested next version, and print the changelog section that a release would write.`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuggest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command) error {
	engine, err := openRepoAndEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	current, err := engine.CurrentVersion()
	if err != nil {
		return err
	}

	stop := startSpinner("Inspecting repository history...")
	suggestion, err := release.Suggest(engine.Repo, current)
	stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if suggestion.NothingToRelease() {
		fmt.Fprintln(out, "Nothing to release.")
		return nil
	}

	fmt.Fprintf(out, "Suggested bump: %s (%s → %s)\n\n", suggestion.BumpType, current, suggestion.NextVersion)
	fmt.Fprint(out, suggestion.Fragment(engine.LinkBase, time.Now()))
	return nil
}

// startSpinner shows a spinner on interactive terminals and returns a
// stop function. On non-terminals it is a no-op.
func startSpinner(message string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
