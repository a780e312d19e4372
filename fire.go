package stator

import (
	"fmt"

	"github.com/aretw0/stator/pkg/event"
	"github.com/aretw0/stator/pkg/transition"
)

// Firing names one event on one machine, for commits spanning several
// machines on the same object.
type Firing struct {
	Machine *Machine
	Event   string
}

// FireTogether resolves every firing and commits the resulting transitions
// as one atomic collection: shared actions run once, and a failure anywhere
// reverts every attribute write. If any event resolves no transition, its
// failure path runs and nothing commits.
func FireTogether(obj any, firings []Firing, args ...any) (bool, error) {
	transitions := make([]*transition.Transition, 0, len(firings))
	for _, f := range firings {
		e := f.Machine.Events().ByName(f.Event)
		if e == nil {
			return false, fmt.Errorf("machine %q: unknown event %q", f.Machine.Name(), f.Event)
		}
		t, err := e.TransitionFor(obj, event.Requirements{}, args...)
		if err != nil {
			return false, err
		}
		if t == nil {
			// Delegates to the event's failure path.
			return e.Fire(obj, args...)
		}
		transitions = append(transitions, t)
	}
	return transition.NewCollection(transitions).Perform(args...)
}
