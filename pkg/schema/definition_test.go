package schema

import (
	"strings"
	"testing"

	stator "github.com/aretw0/stator"
	"github.com/aretw0/stator/pkg/adapters/attrmap"
)

const vehicleYAML = `
attribute: state
action: save
states:
  - name: parked
    initial: true
  - name: idling
  - name: stalled
events:
  - name: ignite
    transitions:
      - from: parked
        to: idling
  - name: park
    transitions:
      - from_any_except: [stalled]
        to: parked
`

func TestParse_Vehicle(t *testing.T) {
	def, err := Parse([]byte(vehicleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	if def.Attribute != "state" {
		t.Errorf("Attribute = %q, want %q", def.Attribute, "state")
	}
	if def.Action != "save" {
		t.Errorf("Action = %q, want %q", def.Action, "save")
	}
	if len(def.States) != 3 {
		t.Fatalf("len(States) = %d, want 3", len(def.States))
	}
	if !def.States[0].Initial {
		t.Error("States[0].Initial = false, want true")
	}
	if len(def.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(def.Events))
	}
}

func TestBuild_FiresEvents(t *testing.T) {
	def, err := Parse([]byte(vehicleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	adapter := attrmap.New()
	saves := 0
	adapter.RegisterAction("save", func(map[string]any, ...any) (bool, error) {
		saves++
		return true, nil
	})

	m, err := def.Build(
		stator.WithAccessor(adapter),
		stator.WithInvoker(adapter),
		stator.WithEvaluator(adapter),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	obj := map[string]any{}
	if err := m.Initialize(obj); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if obj["state"] != "parked" {
		t.Fatalf("state = %v, want parked", obj["state"])
	}

	ok, err := m.Fire(obj, "ignite")
	if err != nil || !ok {
		t.Fatalf("Fire(ignite) = (%v, %v), want (true, nil)", ok, err)
	}
	if obj["state"] != "idling" {
		t.Errorf("state = %v, want idling", obj["state"])
	}
	if saves != 1 {
		t.Errorf("saves = %d, want 1", saves)
	}
}

func TestParse_SingleValuesWeaklyTyped(t *testing.T) {
	def, err := Parse([]byte(`
attribute: state
states:
  - name: a
  - name: b
events:
  - name: go
    transitions:
      - from: a
        to: b
        if: check
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	spec, err := decodeBranch(def.Events[0].Transitions[0])
	if err != nil {
		t.Fatalf("decodeBranch() error = %v", err)
	}
	if len(spec.From) != 1 || spec.From[0] != "a" {
		t.Errorf("From = %v, want [a]", spec.From)
	}
	if len(spec.If) != 1 || spec.If[0] != "check" {
		t.Errorf("If = %v, want [check]", spec.If)
	}
}

func TestValidate_AggregatesFailures(t *testing.T) {
	_, err := Parse([]byte(`
states:
  - name: a
  - name: a
events:
  - name: go
    transitions:
      - from: a
        to: missing
`))
	if err == nil {
		t.Fatal("Parse() error = nil, want validation failures")
	}

	errs := ValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("len(ValidationErrors) = %d, want 3: %v", len(errs), err)
	}
	msg := err.Error()
	for _, want := range []string{"attribute", "duplicate state", "unknown state"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestValidate_UnrecognizedRequirementKey(t *testing.T) {
	_, err := Parse([]byte(`
attribute: state
states:
  - name: a
events:
  - name: go
    transitions:
      - from: a
        loopback: true
        frmo: a
`))
	if err == nil {
		t.Fatal("Parse() error = nil, want unrecognized key failure")
	}
	if !strings.Contains(err.Error(), "frmo") {
		t.Errorf("error %q does not name the bad key", err.Error())
	}
}

func TestValidate_MultipleInitialStates(t *testing.T) {
	_, err := Parse([]byte(`
attribute: state
states:
  - name: a
    initial: true
  - name: b
    initial: true
`))
	if err == nil {
		t.Fatal("Parse() error = nil, want initial-state failure")
	}
	if !strings.Contains(err.Error(), "initial") {
		t.Errorf("error %q does not mention initial states", err.Error())
	}
}

func TestBuild_NamespaceAndValues(t *testing.T) {
	def, err := Parse([]byte(`
attribute: alarm_state
namespace: alarm
states:
  - name: active
    initial: true
    value: 1
  - name: off
    value: 0
events:
  - name: disable
    transitions:
      - from: active
        to: off
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	adapter := attrmap.New()
	m, err := def.Build(
		stator.WithAccessor(adapter),
		stator.WithInvoker(adapter),
		stator.WithEvaluator(adapter),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	s := m.States().ByQualifiedName("active_alarm")
	if s == nil {
		t.Fatal("ByQualifiedName(active_alarm) = nil")
	}
	if s.Value() != 1 {
		t.Errorf("Value() = %v, want 1", s.Value())
	}

	obj := map[string]any{"alarm_state": 1}
	ok, err := m.Fire(obj, "disable")
	if err != nil || !ok {
		t.Fatalf("Fire(disable) = (%v, %v), want (true, nil)", ok, err)
	}
	if obj["alarm_state"] != 0 {
		t.Errorf("alarm_state = %v, want 0", obj["alarm_state"])
	}
}
