package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const defaultListen = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run headless with the control API",
	Long: `Run the update loop without a terminal UI and expose the control API.
Stops cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "listen address (default "+defaultListen+")")
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	listen := cfg.Listen
	if listen == "" {
		listen = defaultListen
	}
	a.startServer(listen)
	fmt.Fprintf(cmd.OutOrStdout(), "control API listening on %s\n", listen)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, id := range a.manager.Tick() {
				a.diag.Infof("timer %s finished", id)
			}
		}
	}
}
