package callback

import (
	"errors"
	"testing"

	"github.com/aretw0/stator/pkg/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_RunsBody(t *testing.T) {
	c := New(PhaseBefore, func(ctx Context) (any, error) {
		return ctx.Event, nil
	})

	r, err := c.Call(nil, Context{Event: "ignite"})
	require.NoError(t, err)
	assert.True(t, r.Ran)
	assert.Equal(t, "ignite", r.Value)
}

func TestCall_GuardSkipsNeutrally(t *testing.T) {
	ran := false
	c := New(PhaseBefore,
		func(Context) (any, error) { ran = true; return false, nil },
		If(guard.Func(func() bool { return false })))

	r, err := c.Call(nil, Context{})
	require.NoError(t, err)
	assert.False(t, ran)
	assert.False(t, r.Ran)
	assert.False(t, c.Halts(r), "a skipped callback never halts")
}

func TestCall_BodyErrorPropagates(t *testing.T) {
	wantErr := errors.New("body failed")
	c := New(PhaseBefore, func(Context) (any, error) { return nil, wantErr })

	_, err := c.Call(nil, Context{})
	assert.ErrorIs(t, err, wantErr)
}

func TestHalts_DefaultSentinel(t *testing.T) {
	c := New(PhaseBefore, nil)

	assert.True(t, c.Halts(Result{Value: false, Ran: true}))
	assert.False(t, c.Halts(Result{Value: nil, Ran: true}), "nil is not the explicit false sentinel")
	assert.False(t, c.Halts(Result{Value: true, Ran: true}))
	assert.False(t, c.Halts(Result{Value: 0, Ran: true}))
}

func TestHalts_CustomTerminator(t *testing.T) {
	c := New(PhaseBefore, nil, WithTerminator(Falsy))

	assert.True(t, c.Halts(Result{Value: false, Ran: true}))
	assert.True(t, c.Halts(Result{Value: nil, Ran: true}))
	assert.False(t, c.Halts(Result{Value: "anything", Ran: true}))
}

func TestHalts_OnlyBeforePhase(t *testing.T) {
	after := New(PhaseAfter, nil)
	failure := New(PhaseFailure, nil)

	assert.False(t, after.Halts(Result{Value: false, Ran: true}))
	assert.False(t, failure.Halts(Result{Value: false, Ran: true}))
}

func TestAround_Yields(t *testing.T) {
	var order []string
	c := NewAround(func(_ Context, next func() error) error {
		order = append(order, "enter")
		err := next()
		order = append(order, "exit")
		return err
	})

	err := c.CallAround(Context{}, func() error {
		order = append(order, "inner")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"enter", "inner", "exit"}, order)
}

func TestTerminators(t *testing.T) {
	assert.True(t, ExplicitFalse(false))
	assert.False(t, ExplicitFalse(nil))
	assert.False(t, ExplicitFalse("false"))

	assert.True(t, Falsy(false))
	assert.True(t, Falsy(nil))
	assert.False(t, Falsy(1))
}
