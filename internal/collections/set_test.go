package collections_test

import (
	"testing"

	"bennypowers.dev/svls/internal/collections"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := collections.NewSet("solid", "dashed")
	s.Add("dotted", "solid")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("dotted"))
	assert.False(t, s.Has("groove"))
	assert.ElementsMatch(t, []string{"solid", "dashed", "dotted"}, s.Members())
}

func TestSetUnion(t *testing.T) {
	a := collections.NewSet(1, 2)
	b := collections.NewSet(2, 3)
	u := a.Union(b)

	assert.Equal(t, []int{1, 2, 3}, collections.SortedMembers(u))
	assert.Equal(t, 2, a.Len(), "union must not modify the receiver")
}

func TestKeywords(t *testing.T) {
	k := collections.NewKeywords("ease-in", "Linear", "STEP-END")

	assert.True(t, k.Has("EASE-IN"))
	assert.True(t, k.Has("linear"))
	assert.False(t, k.Has("ease"))
	assert.Equal(t, []string{"ease-in", "linear", "step-end"}, k.Sorted())
}
