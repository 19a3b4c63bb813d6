package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(2))
	m.Set("a", Int(1))
	m.Set("c", Int(3))

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())

	var seen []string
	m.Range(func(k string, _ Value) bool {
		seen = append(seen, k)
		return true
	})
	assert.Equal(t, []string{"b", "a", "c"}, seen)
}

func TestMapUpsertKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("a", String("updated"))

	require.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.True(t, String("updated").Equal(v))
}

func TestMapGetMissing(t *testing.T) {
	m := NewMap()
	_, ok := m.Get("nope")
	assert.False(t, ok)

	var nilMap *Map
	assert.Equal(t, 0, nilMap.Len())
	_, ok = nilMap.Get("nope")
	assert.False(t, ok)
}

func TestMapSetAny(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.SetAny("n", 7))
	require.NoError(t, m.SetAny("s", "7"))
	require.Error(t, m.SetAny("bad", []string{"x"}))

	v, _ := m.Get("n")
	assert.Equal(t, KindInt, v.Kind)
	v, _ = m.Get("s")
	assert.Equal(t, KindString, v.Kind)
}

func TestMapEqual(t *testing.T) {
	a := NewMap()
	a.Set("x", Int(1))
	a.Set("y", Bool(false))

	b := NewMap()
	b.Set("x", Int(1))
	b.Set("y", Bool(false))
	assert.True(t, a.Equal(b))

	// Same entries, different order: not equal.
	c := NewMap()
	c.Set("y", Bool(false))
	c.Set("x", Int(1))
	assert.False(t, a.Equal(c))

	// Same key, different kind: not equal.
	d := NewMap()
	d.Set("x", Float(1))
	d.Set("y", Bool(false))
	assert.False(t, a.Equal(d))
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := NewMap()
	m.Set("a", Int(1))

	c := m.Clone()
	c.Set("a", Int(99))
	c.Set("b", Int(2))

	v, _ := m.Get("a")
	assert.True(t, Int(1).Equal(v))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2, c.Len())
}
