package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExact(t *testing.T) {
	m := Exact("parked")

	assert.True(t, m.Matches("parked", Context{}))
	assert.False(t, m.Matches("idling", Context{}))
	assert.Equal(t, []any{"parked"}, m.Filter([]any{"idling", "parked", "stalled"}))
	assert.Empty(t, m.Filter([]any{"idling"}))
}

func TestExact_NilValues(t *testing.T) {
	m := Exact(nil)

	assert.True(t, m.Matches(nil, Context{}))
	assert.False(t, m.Matches("parked", Context{}))
}

func TestAnyOf(t *testing.T) {
	m := AnyOf("parked", "idling")

	assert.True(t, m.Matches("parked", Context{}))
	assert.True(t, m.Matches("idling", Context{}))
	assert.False(t, m.Matches("stalled", Context{}))
}

func TestAnyOf_FilterPreservesDomainOrder(t *testing.T) {
	m := AnyOf("stalled", "parked")

	// Domain order wins over declaration order.
	got := m.Filter([]any{"parked", "idling", "stalled"})
	assert.Equal(t, []any{"parked", "stalled"}, got)
}

func TestAllExcept(t *testing.T) {
	m := AllExcept("idling")

	assert.True(t, m.Matches("parked", Context{}))
	assert.False(t, m.Matches("idling", Context{}))
	assert.Equal(t, []any{"parked", "stalled"}, m.Filter([]any{"parked", "idling", "stalled"}))
	assert.Equal(t, []any{"idling"}, m.Values())
}

func TestAll(t *testing.T) {
	m := All()

	assert.True(t, m.Matches("anything", Context{}))
	assert.True(t, m.Matches(nil, Context{}))

	domain := []any{"parked", "idling"}
	assert.Equal(t, domain, m.Filter(domain))
	assert.Empty(t, m.Values())
}

func TestLoopback(t *testing.T) {
	m := Loopback()

	assert.True(t, m.Matches("parked", Context{From: "parked"}))
	assert.False(t, m.Matches("idling", Context{From: "parked"}))
	assert.Empty(t, m.Filter([]any{"parked", "idling"}))
	assert.True(t, IsLoopback(m))
	assert.False(t, IsLoopback(All()))
}

func TestEqual_Composites(t *testing.T) {
	assert.True(t, Equal([]string{"a"}, []string{"a"}))
	assert.False(t, Equal([]string{"a"}, []string{"b"}))
	assert.True(t, Equal(1, 1))
	assert.False(t, Equal(1, int64(1)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, 0))
}
