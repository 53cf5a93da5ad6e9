// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package idmap implements a dense map whose keys are
// small integer identifiers allocated by the map itself.
package idmap

import (
	"github.com/gviegas/gridcube/internal/bitm"
)

// entry is what a Map stores.
type entry[D any] struct {
	data D
	id   int
}

// Map stores data of type D with identifiers of type I.
// Identifiers are reused after removal.
// The zero value is an empty map.
type Map[I ~int, D any] struct {
	// ids[id] is the index of id's entry in data,
	// or -1 if id is not in use.
	ids   []int
	idMap bitm.Bitm[uint32]
	data  []entry[D]
}

// Insert inserts data into m.
// It returns an I value that identifies data in m.
func (m *Map[I, D]) Insert(data D) I {
	if m.idMap.Rem() == 0 {
		n := max(1, m.idMap.Cap()/32)
		m.idMap.Grow(n)
		for range n * 32 {
			m.ids = append(m.ids, -1)
		}
	}
	idx, ok := m.idMap.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitm.Bitm.Search")
	}
	m.idMap.Set(idx)
	m.ids[idx] = len(m.data)
	m.data = append(m.data, entry[D]{data, idx})
	return I(idx)
}

// Contains returns whether id identifies data in m.
func (m *Map[I, _]) Contains(id I) bool { return m.idMap.IsSet(int(id)) }

// Remove removes the data identified by id.
// It returns the removed data and whether id was in m.
func (m *Map[I, D]) Remove(id I) (data D, ok bool) {
	if !m.Contains(id) {
		return
	}
	d := m.ids[id]
	data = m.data[d].data
	last := len(m.data) - 1
	if d < last {
		swap := m.data[last].id
		m.ids[swap] = d
		m.data[d] = m.data[last]
	}
	m.ids[id] = -1
	m.idMap.Unset(int(id))
	m.data[last] = entry[D]{}
	m.data = m.data[:last]
	return data, true
}

// Get returns a pointer to the data identified by id.
// id must belong to m.
func (m *Map[I, D]) Get(id I) *D { return &m.data[m.ids[id]].data }

// Values appends the stored data to dst in storage
// order and returns the extended slice.
func (m *Map[_, D]) Values(dst []D) []D {
	for i := range m.data {
		dst = append(dst, m.data[i].data)
	}
	return dst
}

// Len returns the number of elements in m.
func (m *Map[_, _]) Len() int { return len(m.data) }
