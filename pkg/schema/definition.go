package schema

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	stator "github.com/aretw0/stator"
	"github.com/aretw0/stator/pkg/event"
	"github.com/aretw0/stator/pkg/guard"
	"github.com/aretw0/stator/pkg/state"
)

// Definition is the YAML shape of a machine.
type Definition struct {
	Attribute string     `yaml:"attribute"`
	Namespace string     `yaml:"namespace"`
	Action    string     `yaml:"action"`
	States    []StateDef `yaml:"states"`
	Events    []EventDef `yaml:"events"`
}

// StateDef declares one state. A nil Value stores the state name itself.
type StateDef struct {
	Name    string `yaml:"name"`
	Initial bool   `yaml:"initial"`
	Value   any    `yaml:"value"`
}

// EventDef declares one event and its transition branches, tried in order.
type EventDef struct {
	Name        string           `yaml:"name"`
	Transitions []map[string]any `yaml:"transitions"`
}

// branchSpec is the decoded form of one transition requirement map.
// Unrecognized keys fail the decode.
type branchSpec struct {
	From          []string `mapstructure:"from"`
	FromAny       bool     `mapstructure:"from_any"`
	FromAnyExcept []string `mapstructure:"from_any_except"`
	To            string   `mapstructure:"to"`
	ToAnyOf       []string `mapstructure:"to_any_of"`
	Loopback      bool     `mapstructure:"loopback"`
	If            []string `mapstructure:"if"`
	Unless        []string `mapstructure:"unless"`
}

func decodeBranch(raw map[string]any) (branchSpec, error) {
	var spec branchSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return spec, err
	}
	if err := dec.Decode(raw); err != nil {
		return spec, err
	}
	return spec, nil
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML definition and validates it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition's internal consistency and aggregates
// every failure found.
func (d *Definition) Validate() error {
	var errs []error

	if d.Attribute == "" {
		errs = append(errs, &ValidationError{Key: "attribute", Reason: "required"})
	}
	if len(d.States) == 0 {
		errs = append(errs, &ValidationError{Key: "states", Reason: "at least one state required"})
	}

	declared := make(map[string]bool, len(d.States))
	initials := 0
	for i, s := range d.States {
		key := fmt.Sprintf("states[%d]", i)
		if s.Name == "" {
			errs = append(errs, &ValidationError{Key: key + ".name", Reason: "required"})
			continue
		}
		if declared[s.Name] {
			errs = append(errs, &ValidationError{Key: key + ".name", Reason: "duplicate state", Value: s.Name})
		}
		declared[s.Name] = true
		if s.Initial {
			initials++
		}
	}
	if initials > 1 {
		errs = append(errs, &ValidationError{Key: "states", Reason: fmt.Sprintf("%d initial states declared", initials)})
	}

	seenEvents := make(map[string]bool, len(d.Events))
	for i, e := range d.Events {
		key := fmt.Sprintf("events[%d]", i)
		if e.Name == "" {
			errs = append(errs, &ValidationError{Key: key + ".name", Reason: "required"})
			continue
		}
		if seenEvents[e.Name] {
			errs = append(errs, &ValidationError{Key: key + ".name", Reason: "duplicate event", Value: e.Name})
		}
		seenEvents[e.Name] = true

		for j, raw := range e.Transitions {
			tkey := fmt.Sprintf("%s.transitions[%d]", key, j)
			spec, err := decodeBranch(raw)
			if err != nil {
				errs = append(errs, &ValidationError{Key: tkey, Reason: err.Error()})
				continue
			}
			for _, name := range spec.referencedStates() {
				if !declared[name] {
					errs = append(errs, &ValidationError{Key: tkey, Reason: "unknown state", Value: name})
				}
			}
		}
	}

	return aggregate(errs)
}

func (s branchSpec) referencedStates() []string {
	names := make([]string, 0, len(s.From)+len(s.FromAnyExcept)+len(s.ToAnyOf)+1)
	names = append(names, s.From...)
	names = append(names, s.FromAnyExcept...)
	names = append(names, s.ToAnyOf...)
	if s.To != "" {
		names = append(names, s.To)
	}
	return names
}

func (s branchSpec) options() []event.BranchOption {
	var opts []event.BranchOption
	if len(s.From) > 0 {
		opts = append(opts, event.From(s.From...))
	}
	if s.FromAny {
		opts = append(opts, event.FromAny())
	}
	if len(s.FromAnyExcept) > 0 {
		opts = append(opts, event.FromAnyExcept(s.FromAnyExcept...))
	}
	if s.To != "" {
		opts = append(opts, event.To(s.To))
	}
	if len(s.ToAnyOf) > 0 {
		opts = append(opts, event.ToAnyOf(s.ToAnyOf...))
	}
	if s.Loopback {
		opts = append(opts, event.ToLoopback())
	}
	for _, name := range s.If {
		opts = append(opts, event.If(guard.Method(name)))
	}
	for _, name := range s.Unless {
		opts = append(opts, event.Unless(guard.Method(name)))
	}
	return opts
}

// Build compiles the definition into a machine. Extra options can wire the
// host's ports and hooks.
func (d *Definition) Build(opts ...stator.Option) (*stator.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	base := make([]stator.Option, 0, len(opts)+2)
	if d.Namespace != "" {
		base = append(base, stator.WithNamespace(d.Namespace))
	}
	if d.Action != "" {
		base = append(base, stator.WithAction(d.Action))
	}
	base = append(base, opts...)

	m := stator.New(d.Attribute, base...)
	for _, sd := range d.States {
		var sopts []state.Option
		if sd.Initial {
			sopts = append(sopts, state.Initial())
		}
		if sd.Value != nil {
			sopts = append(sopts, state.WithValue(sd.Value))
		}
		if _, err := m.AddState(sd.Name, sopts...); err != nil {
			return nil, fmt.Errorf("state %q: %w", sd.Name, err)
		}
	}
	for _, ed := range d.Events {
		e, err := m.AddEvent(ed.Name)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", ed.Name, err)
		}
		for _, raw := range ed.Transitions {
			spec, err := decodeBranch(raw)
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", ed.Name, err)
			}
			if err := e.Transition(spec.options()...); err != nil {
				return nil, fmt.Errorf("event %q: %w", ed.Name, err)
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
