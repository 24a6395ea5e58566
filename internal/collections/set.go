package collections

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is a membership set backed by a map with zero-size values.
type Set[T comparable] map[T]struct{}

// NewSet creates a Set holding vs.
func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add inserts values into the set.
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is a member.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// Members returns the members in unspecified order.
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	return r
}

// Union returns a new set holding the members of s and every other set.
func (s Set[T]) Union(others ...Set[T]) Set[T] {
	out := NewSet(s.Members()...)
	for _, o := range others {
		for v := range o {
			out[v] = struct{}{}
		}
	}
	return out
}

func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Keywords is a case-insensitive set of CSS identifiers.
type Keywords struct {
	set Set[string]
}

// NewKeywords builds a Keywords set; members are folded to lower case.
func NewKeywords(words ...string) Keywords {
	k := Keywords{set: NewSet[string]()}
	for _, w := range words {
		k.set.Add(strings.ToLower(w))
	}
	return k
}

// Has reports whether word is a member, ignoring case.
func (k Keywords) Has(word string) bool {
	return k.set.Has(strings.ToLower(word))
}

// Sorted returns the members in lexical order.
func (k Keywords) Sorted() []string {
	return SortedMembers(k.set)
}

// SortedMembers returns the members of s in ascending order.
func SortedMembers[T cmp.Ordered](s Set[T]) []T {
	r := s.Members()
	slices.Sort(r)
	return r
}
