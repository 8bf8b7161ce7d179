package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"timerdash/internal/config"
)

var (
	cfgFile string
	debug   bool

	v   *viper.Viper
	cfg config.Config
)

// rootCmd opens the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "timerdash",
	Short: "Terminal dashboard for timers and stopwatches",
	Long: `timerdash runs any number of countdown timers and lap stopwatches in the
terminal, records every action to an append-only log, and can rebuild a
per-item history from that log.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runDashboard,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.timer_cli/config.yaml)")
	rootCmd.PersistentFlags().String("log-path", "", "action log location")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug diagnostics to the log")
	rootCmd.Flags().String("listen", "", "also serve the control API on this address")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	v, err = config.New(cfgFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("log_path", cmd.Flags().Lookup("log-path")); err != nil {
		return err
	}
	if flag := cmd.Flags().Lookup("listen"); flag != nil {
		if err := v.BindPFlag("server.listen", flag); err != nil {
			return err
		}
	}
	cfg, err = config.Load(v)
	return err
}
