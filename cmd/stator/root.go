package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stator",
	Short: "Stator is a declarative state machine engine",
	Long:  `Stator manages event-driven state transitions defined in YAML or Go, with guarded branches, callbacks and atomic multi-machine commits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
