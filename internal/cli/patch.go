package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipkit/internal/release"
)

var patchCmd = &cobra.Command{
	Use:          "patch [description...]",
	Short:        "Cut an immediate patch release",
	Long:         `Create a patch release without prompts: write the changelog section, update the manifest and version history, and tag. The optional description is recorded in the version history.`,
	GroupID:      GroupRelease,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)
}

func runPatch(cmd *cobra.Command, args []string) error {
	engine, err := openRepoAndEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	err = engine.Patch(cmd.Context(), strings.Join(args, " "))
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
