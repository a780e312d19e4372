package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AccessorContract describes how to exercise an Accessor implementation
// against its native object shape.
type AccessorContract struct {
	// NewObject returns a fresh host object with no attributes set.
	NewObject func(t *testing.T) any
	// Attribute is the attribute name used by the suite.
	Attribute string
	// ValueA and ValueB are two distinct values the accessor must round-trip.
	ValueA, ValueB any
}

// RunAccessorContract runs a suite of tests verifying that an Accessor
// implementation adheres to the interface contract the engine relies on.
func RunAccessorContract(t *testing.T, accessor Accessor, c AccessorContract) {
	t.Run("Read Unset", func(t *testing.T) {
		obj := c.NewObject(t)

		v, err := accessor.Read(obj, c.Attribute)
		require.NoError(t, err, "reading an unset attribute should not error")
		assert.Nil(t, v, "an unset attribute reads as nil")
	})

	t.Run("Write and Read", func(t *testing.T) {
		obj := c.NewObject(t)

		require.NoError(t, accessor.Write(obj, c.Attribute, c.ValueA))
		v, err := accessor.Read(obj, c.Attribute)
		require.NoError(t, err)
		assert.Equal(t, c.ValueA, v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		obj := c.NewObject(t)

		require.NoError(t, accessor.Write(obj, c.Attribute, c.ValueA))
		require.NoError(t, accessor.Write(obj, c.Attribute, c.ValueB))
		v, err := accessor.Read(obj, c.Attribute)
		require.NoError(t, err)
		assert.Equal(t, c.ValueB, v)
	})

	t.Run("Restore Prior Value", func(t *testing.T) {
		// Rollback rewrites the remembered pre-transition value verbatim.
		obj := c.NewObject(t)

		require.NoError(t, accessor.Write(obj, c.Attribute, c.ValueA))
		prior, err := accessor.Read(obj, c.Attribute)
		require.NoError(t, err)

		require.NoError(t, accessor.Write(obj, c.Attribute, c.ValueB))
		require.NoError(t, accessor.Write(obj, c.Attribute, prior))

		v, err := accessor.Read(obj, c.Attribute)
		require.NoError(t, err)
		assert.Equal(t, c.ValueA, v)
	})
}
