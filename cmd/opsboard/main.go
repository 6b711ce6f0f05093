package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opsboard",
	Short: "Operations dashboard API and reporting CLI",
	Long: `opsboard serves the CSM, sales and VA operations dashboard API and
computes the same reports from the command line.

Configuration is read from OPSBOARD_* environment variables (and .env).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
