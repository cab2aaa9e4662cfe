// Package cli defines the shipkit command tree. Each command lives in its
// own file and registers itself on the root command in init().
package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipkit/internal/config"
	"github.com/ariel-frischer/shipkit/internal/errors"
	"github.com/ariel-frischer/shipkit/internal/gitrepo"
)

// Command group IDs for help output.
const (
	GroupTemplates = "templates"
	GroupRelease   = "release"
)

var (
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "shipkit",
	Short: "Project scaffolding and release management",
	Long: `shipkit scaffolds project instruction documents from a fixed template
catalog and manages releases: it classifies commits since the last tag,
suggests the next semantic version, writes the changelog and version
history, and creates the release tag.`,
	Example: `  shipkit template              # Interactively copy instructions into a project
  shipkit status                # Show unreleased commits and suggested bump
  shipkit patch "hotfix"        # Cut an immediate patch release
  shipkit bump                  # Interactive release flow`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			gitrepo.SetDebugLogger(log.Printf)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to project config file (default .shipkit/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupTemplates, Title: "Template Commands:"},
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
	)
}

// Execute runs the root command, printing a categorized error report for
// any failure. The returned error is nil on success; main maps it to an
// exit code via ExitCodeFor.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		errors.Render(os.Stderr, err)
	}
	return err
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check the YAML syntax of your config file",
			"Run with --config to point at a different file")
	}
	return cfg, nil
}
