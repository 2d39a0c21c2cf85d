package main

import (
	"fmt"
	"os"
	"stay/config"
	"stay/shared/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.InitLogger()

	rootCmd := &cobra.Command{
		Use:   "stay",
		Short: "Room inventory and booking engine",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetLogLevel(config.Get())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		workerCmd(),
		migrateCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
