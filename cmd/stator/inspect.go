package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/stator/pkg/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <definition.yaml>",
	Short: "Print the states, events and branches of a definition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(args[0]); err != nil {
			fmt.Printf("Inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string) error {
	def, err := schema.Load(path)
	if err != nil {
		return err
	}
	m, err := def.Build()
	if err != nil {
		return err
	}

	fmt.Printf("Machine: %s\n", m.Name())
	if m.Action() != "" {
		fmt.Printf("Action:  %s\n", m.Action())
	}

	fmt.Println("States:")
	for _, s := range m.States().All() {
		marker := ""
		if s.Initial() {
			marker = " (initial)"
		}
		fmt.Printf("  - %s%s\n", s.QualifiedName(), marker)
	}

	fmt.Println("Events:")
	for _, e := range m.Events().All() {
		fmt.Printf("  - %s\n", e.QualifiedName())
		for _, b := range e.Branches() {
			fmt.Printf("      %s\n", describeBranch(b.KnownStates()))
		}
		if known := e.KnownStates(); len(known) > 0 {
			fmt.Printf("      known states: %s\n", strings.Join(known, ", "))
		}
	}
	return nil
}

func describeBranch(known []string) string {
	if len(known) == 0 {
		return "branch: any -> loopback"
	}
	return fmt.Sprintf("branch over: %s", strings.Join(known, ", "))
}
