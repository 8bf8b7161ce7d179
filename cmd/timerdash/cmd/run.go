package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"timerdash/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the dashboard",
	Long:  `Open the interactive dashboard. With --listen the control API is served alongside it.`,
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("listen", "", "also serve the control API on this address")
}

func runDashboard(cmd *cobra.Command, _ []string) (err error) {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if cfg.Listen != "" {
		a.startServer(cfg.Listen)
	}

	program := tea.NewProgram(tui.New(a.manager, a.readLog, cfg.TickInterval), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
