package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipkit/internal/errors"
	"github.com/ariel-frischer/shipkit/internal/history"
	"github.com/ariel-frischer/shipkit/internal/output"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "View recorded releases",
	Long:         `View the project's release history from .version-history.json: version, bump type, date, commit count, and description, newest first.`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd)
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to the N most recent releases")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return errors.NewArgumentError(
			fmt.Sprintf("limit must be positive, got %d", limit),
			"Pass -n with a positive number of releases",
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	file, err := history.Load(cfg.HistoryDir)
	if err != nil {
		return err
	}

	entries := file.Versions
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No releases recorded.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s (%d total)\n\n", bold("Release history"), file.TotalReleases)
	// Column widths before the description: version, type, date, count.
	descWidth := output.GetTerminalWidth() - 52
	for _, entry := range entries {
		desc := entry.Description
		if desc == "" {
			desc = "-"
		}
		if descWidth > 3 && len(desc) > descWidth {
			desc = desc[:descWidth-3] + "..."
		}
		fmt.Fprintf(out, "%s  %-6s  %s  %3d commits  %s\n",
			cyan(fmt.Sprintf("v%-10s", entry.Version)),
			entry.Type,
			dim(entry.Date.Format("2006-01-02 15:04:05")),
			entry.CommitCount,
			desc,
		)
	}
	return nil
}
