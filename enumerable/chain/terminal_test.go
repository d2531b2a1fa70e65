package chain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/chain"
)

func Test_Reduce_FirstElementIsTheAccumulator(t *testing.T) {
	// arrange
	calls := 0
	sum := func(accumulator int, item int, _ any) int {
		calls++
		return accumulator + item
	}

	// act
	total, found, err := chain.FromSlice([]int{1, 2, 3, 4}).Reduce(sum)

	// assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 10, total)
	assert.Equal(t, 3, calls, "the callback is not invoked for the first element")
}

func Test_Reduce_EmptyIsAbsent(t *testing.T) {
	total, found, err := chain.FromSlice([]int{}).Reduce(func(a int, b int, _ any) int { return a + b })

	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, total)
}

func Test_Fold(t *testing.T) {
	joined, err := chain.Fold(chain.FromSlice([]string{"a", "b"}), ">", func(acc string, item string, index any) string {
		return acc + item
	})

	require.NoError(t, err)
	assert.Equal(t, ">ab", joined)
}

func Test_ValueTerminals_EmptyIsAbsent(t *testing.T) {
	empty := chain.FromSlice([]int{})

	testCases := []struct {
		name     string
		terminal func() (int, bool, error)
	}{
		{name: "first", terminal: empty.FirstValue},
		{name: "last", terminal: empty.LastValue},
		{name: "max", terminal: func() (int, bool, error) { return empty.Max(nil) }},
		{name: "min", terminal: func() (int, bool, error) { return empty.Min(nil) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, found, err := tc.terminal()

			require.NoError(t, err)
			assert.False(t, found)
			assert.Zero(t, value)
		})
	}
}

func Test_ValueTerminals(t *testing.T) {
	source := chain.FromSlice([]int{3, 7, 2, 7, 1})

	first, _, err := source.FirstValue()
	require.NoError(t, err)
	last, _, err := source.LastValue()
	require.NoError(t, err)
	maximum, _, err := source.Max(nil)
	require.NoError(t, err)
	minimum, _, err := source.Min(nil)
	require.NoError(t, err)

	assert.Equal(t, 3, first)
	assert.Equal(t, 1, last)
	assert.Equal(t, 7, maximum)
	assert.Equal(t, 1, minimum)
}

func Test_Max_WithComparatorKeepsFirstOfEqual(t *testing.T) {
	longest, found, err := chain.FromSlice([]string{"ab", "xyz", "cde", "f"}).Max(func(a, b string) int {
		return len(a) - len(b)
	})

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "xyz", longest)
}

func Test_IndexOf(t *testing.T) {
	source := chain.FromMap(map[string]string{"x": "red", "y": "green"})

	index, err := source.IndexOf("green")
	require.NoError(t, err)
	assert.Equal(t, "y", index)

	index, err = source.IndexOf("blue")
	require.NoError(t, err)
	assert.Nil(t, index)
}

func Test_SomeAndEvery(t *testing.T) {
	positive := func(item int, _ any) bool { return item > 0 }

	testCases := []struct {
		name  string
		items []int
		some  bool
		every bool
	}{
		{name: "all match", items: []int{1, 2}, some: true, every: true},
		{name: "one matches", items: []int{-1, 2}, some: true, every: false},
		{name: "none match", items: []int{-1, -2}, some: false, every: false},
		{name: "empty", items: []int{}, some: false, every: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			some, err := chain.FromSlice(tc.items).Some(positive)
			require.NoError(t, err)
			every, err := chain.FromSlice(tc.items).Every(positive)
			require.NoError(t, err)

			assert.Equal(t, tc.some, some)
			assert.Equal(t, tc.every, every)
		})
	}
}

func Test_Terminals_PropagateSourceErrors(t *testing.T) {
	errBroken := errors.New("broken resolver")
	source := chain.From(enumerable.FromResolver(
		func() int { return 3 },
		func(position int) (int, error) {
			if position == 1 {
				return 0, errBroken
			}

			return position, nil
		},
	))

	_, err := source.ToArray()
	assert.ErrorIs(t, err, errBroken)

	_, _, err = source.Reduce(func(a int, b int, _ any) int { return a + b })
	assert.ErrorIs(t, err, errBroken)

	_, err = source.Every(func(int, any) bool { return true })
	assert.ErrorIs(t, err, errBroken)

	_, err = source.Count()
	assert.ErrorIs(t, err, errBroken)

	first, found, err := source.FirstValue()
	require.NoError(t, err, "the failing position is never reached")
	assert.True(t, found)
	assert.Equal(t, 0, first)
}

func Test_ToObject_UsesIndices(t *testing.T) {
	object, err := chain.FromSlice([]string{"a", "b"}).Reverse().ToObject()

	require.NoError(t, err)
	assert.Equal(t, map[any]string{0: "a", 1: "b"}, object)
}

func Test_All_RangesOverChain(t *testing.T) {
	var items []int
	for _, item := range enumerable.All[int](chain.FromSlice([]int{3, 1, 2}).Sort(nil)) {
		items = append(items, item)
	}

	assert.Equal(t, []int{1, 2, 3}, items)
}
