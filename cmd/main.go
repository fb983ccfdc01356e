package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gcc-market-sync",
	Short: "A CLI for managing the GCC market data sync services",
	Long:  `gcc-market-sync runs the background data-refresh and alert-evaluation pipeline for the GCC markets platform.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
