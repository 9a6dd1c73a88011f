package expr

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ColSet is a set of column positions, used to express statements like
// "this predicate touches only columns of the left input".
type ColSet struct {
	b *bitset.BitSet
}

// NewColSet creates a set containing the given positions
func NewColSet(cols ...int) ColSet {
	s := ColSet{b: bitset.New(uint(len(cols)))}
	for _, c := range cols {
		s.b.Set(uint(c))
	}
	return s
}

// Prefix returns the set {0, 1, ..., n-1}, the positions of the first
// n columns of a schema.
func Prefix(n int) ColSet {
	s := ColSet{b: bitset.New(uint(n))}
	for i := 0; i < n; i++ {
		s.b.Set(uint(i))
	}
	return s
}

// Contains reports whether pos is in the set
func (s ColSet) Contains(pos int) bool {
	if s.b == nil || pos < 0 {
		return false
	}
	return s.b.Test(uint(pos))
}

// Add returns a new set with pos added; the receiver is unchanged
func (s ColSet) Add(pos int) ColSet {
	var nb *bitset.BitSet
	if s.b == nil {
		nb = bitset.New(uint(pos + 1))
	} else {
		nb = s.b.Clone()
	}
	nb.Set(uint(pos))
	return ColSet{b: nb}
}

// Union returns the union of both sets
func (s ColSet) Union(other ColSet) ColSet {
	if s.b == nil {
		return other
	}
	if other.b == nil {
		return s
	}
	return ColSet{b: s.b.Union(other.b)}
}

// SubsetOf reports whether every position in s is also in other
func (s ColSet) SubsetOf(other ColSet) bool {
	if s.b == nil || s.b.Count() == 0 {
		return true
	}
	if other.b == nil {
		return false
	}
	return other.b.IsSuperSet(s.b)
}

// Len returns the number of positions in the set
func (s ColSet) Len() int {
	if s.b == nil {
		return 0
	}
	return int(s.b.Count())
}

// String renders the set as "{0, 2, 5}"
func (s ColSet) String() string {
	if s.b == nil {
		return "{}"
	}
	parts := make([]string, 0, s.b.Count())
	for i, ok := s.b.NextSet(0); ok; i, ok = s.b.NextSet(i + 1) {
		parts = append(parts, fmt.Sprintf("%d", i))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
