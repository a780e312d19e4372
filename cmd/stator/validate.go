package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stator/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition.yaml>",
	Short: "Check a machine definition for consistency",
	Long:  `Parses the definition, builds the machine and reports every validation failure found.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Definition is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	def, err := schema.Load(path)
	if err != nil {
		return err
	}
	m, err := def.Build()
	if err != nil {
		return err
	}
	return m.Validate()
}
