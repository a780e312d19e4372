package state

import (
	"testing"

	"github.com/aretw0/stator/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(t *testing.T) *Collection {
	t.Helper()

	c := NewCollection("state", testutils.Accessor{})
	require.NoError(t, c.Add(New("parked", WithValue(1), Initial())))
	require.NoError(t, c.Add(New("idling", WithValue(2))))
	require.NoError(t, c.Add(New("stalled", WithValue(3))))
	return c
}

func TestCollection_Lookups(t *testing.T) {
	c := newTestCollection(t)

	assert.Equal(t, "parked", c.ByName("parked").Name())
	assert.Nil(t, c.ByName("missing"))
	assert.Equal(t, "idling", c.ByValue(2).Name())
	assert.Nil(t, c.ByValue(99))
	assert.Equal(t, []string{"parked", "idling", "stalled"}, c.Names())
	assert.Equal(t, "parked", c.Initial().Name())
}

func TestCollection_DuplicateNameRejected(t *testing.T) {
	c := newTestCollection(t)

	err := c.Add(New("parked"))
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "parked", dup.Name)
}

func TestCollection_Match(t *testing.T) {
	c := newTestCollection(t)

	obj := testutils.Object{"state": 2}
	s, err := c.Match(obj)
	require.NoError(t, err)
	assert.Equal(t, "idling", s.Name())

	obj["state"] = 42
	s, err = c.Match(obj)
	require.NoError(t, err)
	assert.Nil(t, s, "unmatched value resolves to nil, not an error")
}

func TestCollection_MatchRequired(t *testing.T) {
	c := newTestCollection(t)

	obj := testutils.Object{"state": 42}
	_, err := c.MatchRequired(obj)

	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, "state", noMatch.Attribute)
	assert.Equal(t, 42, noMatch.Value)
}

func TestCollection_ByValue_DeclarationOrderWins(t *testing.T) {
	c := NewCollection("state", testutils.Accessor{})
	require.NoError(t, c.Add(New("first", WithMatcher(func(any) bool { return true }))))
	require.NoError(t, c.Add(New("second", WithMatcher(func(any) bool { return true }))))

	assert.Equal(t, "first", c.ByValue("anything").Name())
}
