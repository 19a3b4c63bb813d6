package value

// Map is an insertion-ordered mapping of string keys to Values.
//
// Write order equals iteration order: updating an existing key keeps its
// original position, new keys append at the end. This is the contract the
// store preserves end to end, since callers rely on positional iteration.
//
// A Map is not safe for concurrent mutation.
type Map struct {
	keys []string
	vals []Value
	idx  map[string]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{idx: make(map[string]int)}
}

// NewMapSize returns an empty Map with capacity for n entries.
func NewMapSize(n int) *Map {
	return &Map{
		keys: make([]string, 0, n),
		vals: make([]Value, 0, n),
		idx:  make(map[string]int, n),
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Set upserts key to v. Existing keys keep their position; new keys append.
func (m *Map) Set(key string, v Value) {
	if m.idx == nil {
		m.idx = make(map[string]int)
	}
	if i, ok := m.idx[key]; ok {
		m.vals[i] = v
		return
	}
	m.idx[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// SetAny upserts key to the Value mapped from a Go scalar via FromAny.
func (m *Map) SetAny(key string, v any) error {
	vv, err := FromAny(v)
	if err != nil {
		return err
	}
	m.Set(key, vv)
	return nil
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil || m.idx == nil {
		return Value{}, false
	}
	i, ok := m.idx[key]
	if !ok {
		return Value{}, false
	}
	return m.vals[i], true
}

// At returns the i-th entry in insertion order.
func (m *Map) At(i int) (string, Value) {
	return m.keys[i], m.vals[i]
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m.Len() == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}

// Equal reports whether two maps hold the same entries in the same order.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m == nil || o == nil {
		return true // both empty
	}
	for i := range m.keys {
		if m.keys[i] != o.keys[i] || !m.vals[i].Equal(o.vals[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy preserving insertion order.
func (m *Map) Clone() *Map {
	if m == nil {
		return NewMap()
	}
	c := NewMapSize(len(m.keys))
	c.keys = append(c.keys, m.keys...)
	c.vals = append(c.vals, m.vals...)
	for k, i := range m.idx {
		c.idx[k] = i
	}
	return c
}
