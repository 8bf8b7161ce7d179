package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timerdash/internal/clock"
	"timerdash/internal/service"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for the control API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, clock.Real{})
		token, apiErr := tokens.Issue(tokenSubject)
		if apiErr != nil {
			return apiErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "local", "token subject")
}
