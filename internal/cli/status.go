package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipkit/internal/commits"
	"github.com/ariel-frischer/shipkit/internal/output"
	"github.com/ariel-frischer/shipkit/internal/release"
)

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show unreleased commits and the suggested version bump",
	Long:         `Show the current version, the last release tag, and a per-category summary of commits since that tag, along with the suggested next version.`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command) error {
	engine, err := openRepoAndEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	current, err := engine.CurrentVersion()
	if err != nil {
		return err
	}

	suggestion, err := release.Suggest(engine.Repo, current)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output.PrintKeyValue(out, "Current version", current)

	sinceTag := suggestion.SinceTag
	if sinceTag == "" {
		sinceTag = "(no tag, full history)"
	}
	output.PrintKeyValue(out, "Last tag", sinceTag)

	if suggestion.NothingToRelease() {
		fmt.Fprintln(out, "\nNothing to release.")
		return nil
	}

	output.PrintKeyValue(out, "Unreleased", fmt.Sprintf("%d commits (%s)", suggestion.CommitCount(), commits.Summary(suggestion.Buckets)))
	output.PrintKeyValue(out, "Suggested bump", string(suggestion.BumpType))
	output.PrintKeyValue(out, "Next version", suggestion.NextVersion)
	return nil
}
