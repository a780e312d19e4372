package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_DefaultValueIsName(t *testing.T) {
	s := New("parked")

	assert.Equal(t, "parked", s.Value())
	assert.True(t, s.Matches("parked"))
	assert.False(t, s.Matches("idling"))
}

func TestState_StaticValue(t *testing.T) {
	// Scenario: state parked with value 1 against raw object values.
	s := New("parked", WithValue(1))

	assert.True(t, s.Matches(1))
	assert.False(t, s.Matches(2))
}

func TestState_CustomMatcher(t *testing.T) {
	s := New("active", WithValue(1), WithMatcher(func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	}))

	assert.True(t, s.Matches(7))
	assert.False(t, s.Matches(0))
	assert.False(t, s.Matches("1"))
}

func TestState_DeferredValue(t *testing.T) {
	calls := 0
	compute := func() any { calls++; return calls }

	t.Run("cached evaluates once", func(t *testing.T) {
		calls = 0
		s := New("dynamic", WithDeferredValue(compute, true))

		assert.Equal(t, 1, s.Value())
		assert.Equal(t, 1, s.Value())
		assert.Equal(t, 1, calls)
	})

	t.Run("uncached recomputes per read", func(t *testing.T) {
		calls = 0
		s := New("dynamic", WithDeferredValue(compute, false))

		assert.Equal(t, 1, s.Value())
		assert.Equal(t, 2, s.Value())
		assert.Equal(t, 2, calls)
	})
}

func TestState_QualifiedName(t *testing.T) {
	c := NewCollection("alarm_state", nil)
	c.SetNamespace("alarm")

	s := New("active")
	require.NoError(t, c.Add(s))

	assert.Equal(t, "active_alarm", s.QualifiedName())
	assert.Equal(t, s, c.ByQualifiedName("active_alarm"))
}

func TestState_Initial(t *testing.T) {
	s := New("parked", Initial())
	assert.True(t, s.Initial())
	assert.False(t, New("idling").Initial())
}
