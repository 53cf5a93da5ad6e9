// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package bitm defines a bitmap type useful for resource
// management (e.g., id allocation and free lists).
package bitm

import (
	"unsafe"
)

// Uint represents the granularity of a bitmap.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bitm is a growable bitmap with custom granularity.
// The zero value is an empty bitmap.
type Bitm[T Uint] struct {
	m   []T
	rem int
}

// nbit returns the number of bits in T.
func (m *Bitm[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits set in the map.
func (m *Bitm[_]) Len() int { return len(m.m)*m.nbit() - m.rem }

// Cap returns the number of bits in the map.
func (m *Bitm[_]) Cap() int { return len(m.m) * m.nbit() }

// Rem returns the number of bits not set in the map.
func (m *Bitm[_]) Rem() int { return m.rem }

// Grow grows the map by n words of T.
// New bits are not set.
func (m *Bitm[T]) Grow(n int) {
	if n <= 0 {
		return
	}
	m.m = append(m.m, make([]T, n)...)
	m.rem += n * m.nbit()
}

// Set sets bit i.
// i must be less than m.Cap().
func (m *Bitm[T]) Set(i int) {
	w, b := i/m.nbit(), T(1)<<(i%m.nbit())
	if m.m[w]&b == 0 {
		m.m[w] |= b
		m.rem--
	}
}

// Unset unsets bit i.
// i must be less than m.Cap().
func (m *Bitm[T]) Unset(i int) {
	w, b := i/m.nbit(), T(1)<<(i%m.nbit())
	if m.m[w]&b != 0 {
		m.m[w] &^= b
		m.rem++
	}
}

// IsSet returns whether bit i is set.
// Out of range indices are reported as not set.
func (m *Bitm[T]) IsSet(i int) bool {
	if i < 0 || i >= m.Cap() {
		return false
	}
	return m.m[i/m.nbit()]&(T(1)<<(i%m.nbit())) != 0
}

// Search returns the index of the first bit not set.
// It returns false if every bit is set.
func (m *Bitm[T]) Search() (int, bool) {
	if m.rem == 0 {
		return 0, false
	}
	nb := m.nbit()
	for w, x := range m.m {
		if x == ^T(0) {
			continue
		}
		for b := 0; b < nb; b++ {
			if x&(T(1)<<b) == 0 {
				return w*nb + b, true
			}
		}
	}
	// Unreachable while rem is consistent.
	return 0, false
}

// Clear unsets every bit.
func (m *Bitm[T]) Clear() {
	clear(m.m)
	m.rem = len(m.m) * m.nbit()
}
