package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"timerdash/internal/history"
)

var (
	historyRaw   bool
	historyWidth int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the reconstructed history",
	Long:  `Print the action log grouped per timer and stopwatch, or raw with --raw. Newest entries come first.`,
	RunE:  runHistory,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize every timer and stopwatch in the log",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(summaryCmd)

	historyCmd.Flags().BoolVar(&historyRaw, "raw", false, "print the raw log, newest first")
	historyCmd.Flags().IntVar(&historyWidth, "width", 0, "separator width (default from history.separator_width)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	text, err := history.ReadLog(afero.NewOsFs(), cfg.LogPath)
	if err != nil {
		return err
	}

	width := historyWidth
	if width <= 0 {
		width = cfg.SeparatorWidth
	}
	view := history.Build(text, width)
	lines := view.Grouped
	if historyRaw {
		lines = view.Raw
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

func runSummary(cmd *cobra.Command, _ []string) error {
	text, err := history.ReadLog(afero.NewOsFs(), cfg.LogPath)
	if err != nil {
		return err
	}

	result := history.Reconstruct(history.SplitLines(text))
	if len(result.Groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), history.NoLogs)
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Category", "Name", "ID", "Events", "Started", "Last activity")
	for _, group := range result.Groups {
		table.Append(
			string(group.Category),
			group.Name,
			group.ID,
			strconv.Itoa(len(group.Events)),
			group.StartedAt,
			group.LastAt,
		)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}
