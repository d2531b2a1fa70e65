package enumerable_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

type score int

func Test_Compare_DefaultPartialOrder(t *testing.T) {
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a, b     any
		expected int
	}{
		{name: "ints", a: 1, b: 2, expected: -1},
		{name: "mixed int kinds", a: int8(5), b: int64(5), expected: 0},
		{name: "named int type", a: score(9), b: 3, expected: 1},
		{name: "uints", a: uint(3), b: uint(2), expected: 1},
		{name: "int and float", a: 2, b: 2.5, expected: -1},
		{name: "strings", a: "b", b: "a", expected: 1},
		{name: "bools", a: false, b: true, expected: -1},
		{name: "times", a: earlier, b: earlier.Add(time.Hour), expected: -1},
		{name: "nil first", a: nil, b: 0, expected: -1},
		{name: "nil equal", a: nil, b: nil, expected: 0},
		{name: "incomparable", a: "1", b: 1, expected: 0},
		{name: "structs", a: struct{}{}, b: struct{}{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, enumerable.Compare(tt.a, tt.b))
		})
	}
}

func Test_NaturalCompare(t *testing.T) {
	assert.Equal(t, -1, enumerable.NaturalCompare("item2", "item10"))
	assert.Equal(t, 1, enumerable.Compare("item2", "item10"), "plain order differs")
	assert.Equal(t, 0, enumerable.NaturalCompare("a", "a"))
	assert.Equal(t, -1, enumerable.NaturalCompare(1, 2), "non strings fall back to Compare")
}

func Test_Same_IdentitySemantics(t *testing.T) {
	type item struct{ Name string }

	first := &item{Name: "x"}
	twin := &item{Name: "x"}
	slice := []int{1, 2}
	m := map[string]int{"a": 1}

	assert.True(t, enumerable.Same(1, 1))
	assert.False(t, enumerable.Same(1, int64(1)), "different dynamic types")
	assert.True(t, enumerable.Same(first, first))
	assert.False(t, enumerable.Same(first, twin), "pointers compare by identity")
	assert.True(t, enumerable.Same(slice, slice))
	assert.False(t, enumerable.Same(slice, []int{1, 2}), "slices compare by reference")
	assert.True(t, enumerable.Same(m, m))
	assert.False(t, enumerable.Same(m, map[string]int{"a": 1}))
	assert.True(t, enumerable.Same(nil, nil))
	assert.False(t, enumerable.Same(nil, 0))
}

func Test_CanonicalKey_NormalizesCompositeValues(t *testing.T) {
	assert.Equal(t, "a", enumerable.CanonicalKey("a"))
	assert.Equal(t, enumerable.CanonicalKey([]int{1, 2}), enumerable.CanonicalKey([]int{1, 2}))
	assert.NotEqual(t, enumerable.CanonicalKey([]int{1, 2}), enumerable.CanonicalKey([]int{2, 1}))
	assert.NotEqual(t, enumerable.CanonicalKey([]int{1, 2}), enumerable.CanonicalKey("[1,2]"),
		"composite keys never collide with plain strings")
	assert.Equal(t,
		enumerable.CanonicalKey(map[string]int{"a": 1, "b": 2}),
		enumerable.CanonicalKey(map[string]int{"b": 2, "a": 1}))
}

func Test_Snapshot_FollowsPointers(t *testing.T) {
	type item struct{ Name string }
	it := &item{Name: "before"}

	before := enumerable.Snapshot(it)
	it.Name = "after"

	assert.NotEqual(t, before, enumerable.Snapshot(it))
}

func Test_Action_String(t *testing.T) {
	assert.Equal(t, "add", enumerable.ActionAdd.String())
	assert.Equal(t, "remove", enumerable.ActionRemove.String())
	assert.Equal(t, "replace", enumerable.ActionReplace.String())
	assert.Equal(t, "move", enumerable.ActionMove.String())
	assert.Equal(t, "reset", enumerable.ActionReset.String())
	assert.Equal(t, "unknown", enumerable.Action(99).String())
}
