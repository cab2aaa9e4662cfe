package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pkgerrors "github.com/ariel-frischer/shipkit/internal/errors"
	"github.com/ariel-frischer/shipkit/internal/release"
	"github.com/ariel-frischer/shipkit/internal/semver"
)

var (
	bumpTypeFlag        string
	bumpDescriptionFlag string
	bumpYesFlag         bool
)

var bumpCmd = &cobra.Command{
	Use:          "bump",
	Short:        "Run the guided release flow",
	Long:         `Walk through a release: inspect commits since the last tag, choose a version increase, preview the changelog section, then write the changelog, manifest, and version history and create the git tag.`,
	Example: `  # Interactive release with the suggested bump preselected
  shipkit bump

  # Non-interactive minor release
  shipkit bump --type minor --yes`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBump(cmd)
	},
}

func init() {
	bumpCmd.Flags().StringVarP(&bumpTypeFlag, "type", "t", "", "version increase to apply (patch, minor, major)")
	bumpCmd.Flags().StringVarP(&bumpDescriptionFlag, "description", "d", "", "release description recorded in the version history")
	bumpCmd.Flags().BoolVarP(&bumpYesFlag, "yes", "y", false, "skip confirmation prompts")
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command) error {
	opts := release.Options{
		Description:    bumpDescriptionFlag,
		NonInteractive: bumpYesFlag,
	}
	if bumpTypeFlag != "" {
		bt, err := semver.ValidateBumpType(bumpTypeFlag)
		if err != nil {
			return pkgerrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("invalid --type %q", bumpTypeFlag),
				"shipkit bump --type <patch|minor|major>",
				"Use one of: patch, minor, major",
			)
		}
		opts.BumpType = bt
	}

	engine, err := openRepoAndEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if bumpYesFlag {
		engine.SkipConfirmations = true
	}

	err = engine.Run(cmd.Context(), opts)
	switch {
	case errors.Is(err, release.ErrAborted):
		fmt.Fprintln(cmd.OutOrStdout(), "Release cancelled.")
		return nil
	case errors.Is(err, release.ErrNothingToRelease):
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to release.")
		return nil
	}
	return err
}
