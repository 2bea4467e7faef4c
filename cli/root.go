package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"b3-dashboard/config"
	"b3-dashboard/logger"
)

var version = "dev"

// NewRootCmd creates the b3dash command tree. Without a subcommand it
// starts the server.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "b3dash",
		Short: "Brazilian stocks dashboard and investment calculator",
		Long: `b3dash fetches B3 price history from Yahoo Finance, annotates it with
RSI, MACD and SMA, scrapes the USD/BRL rate and projects compound-interest
investments with monthly contributions.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.LogLevel = "debug"
			}
			logger.Init("b3dash", logger.ParseLevel(cfg.LogLevel))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newStocksCmd(cfg))
	rootCmd.AddCommand(newFXCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "b3dash %s\n", version)
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
