// Package sorted provides a plain ordered map.
//
// It is the oracle for consolidation tests: a sequence of sets and deletes
// applied here must match the base produced by folding the same sequence's
// delta chain, projected onto the node's range.
package sorted

import (
	"cmp"
	"sort"
)

// Map keeps key-value pairs in ascending key order. Not thread-safe.
// The zero value is an empty map.
type Map[K cmp.Ordered, V any] struct {
	keys []K
	vals []V
}

// Len returns the number of pairs.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Set updates the value for a key, inserting it if absent.
func (m *Map[K, V]) Set(key K, val V) {
	i, found := m.find(key)
	if found {
		m.vals[i] = val
		return
	}
	m.insert(i, key, val)
}

// Delete removes a key, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	i, found := m.find(key)
	if !found {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	return true
}

// Get retrieves the value for a key.
func (m *Map[K, V]) Get(key K) (val V, found bool) {
	i, found := m.find(key)
	if found {
		val = m.vals[i]
	}
	return
}

// At returns the i-th pair in ascending key order.
func (m *Map[K, V]) At(i int) (K, V) {
	return m.keys[i], m.vals[i]
}

// Project returns the keys and values with lo <= key < hi.
func (m *Map[K, V]) Project(lo, hi K) ([]K, []V) {
	from := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= lo })
	to := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= hi })
	return m.keys[from:to], m.vals[from:to]
}

// Keys returns the ascending key slice. Shared storage; do not modify.
func (m *Map[K, V]) Keys() []K {
	return m.keys
}

// Values returns the values in key order. Shared storage; do not modify.
func (m *Map[K, V]) Values() []V {
	return m.vals
}

func (m *Map[K, V]) find(key K) (int, bool) {
	return sort.Find(len(m.keys), func(i int) int {
		return cmp.Compare(key, m.keys[i])
	})
}

func (m *Map[K, V]) insert(i int, key K, val V) {
	count := len(m.keys)

	if i == count {
		m.keys = append(m.keys, key)
		m.vals = append(m.vals, val)
		return
	}

	var k K
	var v V
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)

	l := i + 1
	copy(m.keys[l:], m.keys[i:count])
	copy(m.vals[l:], m.vals[i:count])

	m.keys[i] = key
	m.vals[i] = val
}
