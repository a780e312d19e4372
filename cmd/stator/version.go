package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	stator "github.com/aretw0/stator"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stator version %s\n", strings.TrimSpace(stator.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
