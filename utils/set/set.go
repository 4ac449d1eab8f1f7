// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package set

import (
	"bytes"
	"encoding/json"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// The minimum capacity of a set
const minSetSize = 16

var _ json.Marshaler = (*Set[int])(nil)

// Set is a set of elements.
type Set[T comparable] map[T]struct{}

// NewSet returns a new empty set with capacity [size].
func NewSet[T comparable](size int) Set[T] {
	if size < 0 {
		return Set[T]{}
	}
	return make(map[T]struct{}, size)
}

// Of returns a Set initialized with [elts].
func Of[T comparable](elts ...T) Set[T] {
	s := NewSet[T](len(elts))
	s.Add(elts...)
	return s
}

func (s *Set[T]) resize(size int) {
	if *s == nil {
		if minSetSize > size {
			size = minSetSize
		}
		*s = make(map[T]struct{}, size)
	}
}

// Add all the elements to this set.
// If the element is already in the set, nothing happens.
func (s *Set[T]) Add(elts ...T) {
	s.resize(2 * len(elts))
	for _, elt := range elts {
		(*s)[elt] = struct{}{}
	}
}

// Union adds all the elements from the provided set to this set.
func (s *Set[T]) Union(set Set[T]) {
	s.resize(2 * set.Len())
	for elt := range set {
		(*s)[elt] = struct{}{}
	}
}

// Difference removes all the elements in [set] from [s].
func (s *Set[T]) Difference(set Set[T]) {
	for elt := range set {
		delete(*s, elt)
	}
}

// Contains returns true iff the set contains this element.
func (s Set[T]) Contains(elt T) bool {
	_, contains := s[elt]
	return contains
}

// Overlaps returns true if the intersection of the set is non-empty
func (s Set[T]) Overlaps(big Set[T]) bool {
	small := s
	if small.Len() > big.Len() {
		small, big = big, small
	}

	for elt := range small {
		if _, ok := big[elt]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of elements in this set.
func (s Set[T]) Len() int {
	return len(s)
}

// Remove all the given elements from this set.
// If an element isn't in the set, it's ignored.
func (s *Set[T]) Remove(elts ...T) {
	for _, elt := range elts {
		delete(*s, elt)
	}
}

// Clear empties this set
func (s *Set[T]) Clear() {
	maps.Clear(*s)
}

// List converts this set into a list
func (s Set[T]) List() []T {
	return maps.Keys(s)
}

// Equals returns true if the sets contain the same elements
func (s Set[T]) Equals(other Set[T]) bool {
	return maps.Equal(s, other)
}

// Removes and returns an element.
// If the set is empty, does nothing and returns false.
func (s *Set[T]) Pop() (T, bool) {
	for elt := range *s {
		delete(*s, elt)
		return elt, true
	}
	return *new(T), false
}

func (s *Set[T]) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == "null" {
		return nil
	}
	var elts []T
	if err := json.Unmarshal(b, &elts); err != nil {
		return err
	}
	s.Clear()
	s.Add(elts...)
	return nil
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	var (
		eltBytes = make([][]byte, len(s))
		i        int
		err      error
	)
	for elt := range s {
		eltBytes[i], err = json.Marshal(elt)
		if err != nil {
			return nil, err
		}
		i++
	}
	// Sort for determinism
	slices.SortFunc(eltBytes, func(i, j []byte) bool {
		return bytes.Compare(i, j) < 0
	})

	// Build the JSON
	var jsonBuf bytes.Buffer
	jsonBuf.WriteByte('[')
	for i, elt := range eltBytes {
		if i > 0 {
			jsonBuf.WriteByte(',')
		}
		jsonBuf.Write(elt)
	}
	jsonBuf.WriteByte(']')

	return jsonBuf.Bytes(), nil
}
