package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stator "github.com/aretw0/stator"
	"github.com/aretw0/stator/pkg/adapters/attrmap"
	"github.com/aretw0/stator/pkg/schema"
	"github.com/aretw0/stator/pkg/transition"
)

var simulateState string

var simulateCmd = &cobra.Command{
	Use:   "simulate <definition.yaml> <event>...",
	Short: "Fire a sequence of events against an in-memory object",
	Long:  `Resolves and applies each event in order without invoking host actions, printing every transition taken.`,
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSimulate(args[0], args[1:]); err != nil {
			fmt.Printf("Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateState, "state", "", "Starting state (defaults to the initial state)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(path string, events []string) error {
	def, err := schema.Load(path)
	if err != nil {
		return err
	}

	adapter := attrmap.New()
	m, err := def.Build(
		stator.WithAccessor(adapter),
		stator.WithInvoker(adapter),
		stator.WithEvaluator(adapter),
	)
	if err != nil {
		return err
	}

	obj := map[string]any{}
	if simulateState != "" {
		s := m.States().ByName(simulateState)
		if s == nil {
			return fmt.Errorf("unknown state %q", simulateState)
		}
		obj[m.Attribute()] = s.Value()
	} else if err := m.Initialize(obj); err != nil {
		return err
	}

	for _, name := range events {
		t, err := m.TransitionFor(obj, name)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("event %q cannot fire from %v", name, obj[m.Attribute()])
		}

		ok, err := transition.NewCollection(
			[]*transition.Transition{t},
			transition.SkipActions(),
		).Perform()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("event %q halted", name)
		}
		fmt.Printf("%s: %s -> %s\n", name, t.FromName(), t.ToName())
	}
	return nil
}
