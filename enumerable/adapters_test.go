package enumerable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

type foreignEnumerable struct {
	items []any
}

func (f foreignEnumerable) AnyEnumerator() enumerable.Enumerator[any] {
	return enumerable.FromSlice(f.items).GetEnumerator()
}

func collect[T any](t *testing.T, source enumerable.Enumerable[T]) ([]T, []any) {
	t.Helper()

	var items []T
	var indices []any
	err := source.Each(func(item T, index any) {
		items = append(items, item)
		indices = append(indices, index)
	})
	require.NoError(t, err)

	return items, indices
}

func Test_FromSlice_EnumeratesByPosition(t *testing.T) {
	items, indices := collect(t, enumerable.FromSlice([]string{"a", "b", "c"}))

	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, []any{0, 1, 2}, indices)
}

func Test_FromSlice_CursorLifecycle(t *testing.T) {
	enumerator := enumerable.FromSlice([]int{10, 20}).GetEnumerator()

	assert.Equal(t, 0, enumerator.Current(), "no element before the first MoveNext")
	assert.Nil(t, enumerator.CurrentIndex())

	assert.True(t, enumerator.MoveNext())
	assert.Equal(t, 10, enumerator.Current())
	assert.True(t, enumerator.MoveNext())
	assert.Equal(t, 20, enumerator.Current())
	assert.False(t, enumerator.MoveNext())
	assert.Equal(t, 0, enumerator.Current(), "no element after exhaustion")
	assert.False(t, enumerator.MoveNext(), "exhaustion is sticky")

	enumerator.Reset()
	assert.True(t, enumerator.MoveNext())
	assert.Equal(t, 10, enumerator.Current())
	assert.Equal(t, 0, enumerator.CurrentIndex())
}

func Test_FromSlice_FreshEnumeratorPerTraversal(t *testing.T) {
	source := enumerable.FromSlice([]int{1, 2, 3})

	first := source.GetEnumerator()
	require.True(t, first.MoveNext())
	require.True(t, first.MoveNext())

	second := source.GetEnumerator()
	require.True(t, second.MoveNext())
	assert.Equal(t, 1, second.Current())
	assert.Equal(t, 2, first.Current())
}

func Test_FromMap_IndexIsKeyInStableOrder(t *testing.T) {
	source := enumerable.FromMap(map[string]int{"b": 2, "a": 1, "c": 3})

	items, indices := collect(t, source)
	assert.Equal(t, []int{1, 2, 3}, items)
	assert.Equal(t, []any{"a", "b", "c"}, indices)

	itemsAgain, _ := collect(t, source)
	assert.Equal(t, items, itemsAgain)
}

func Test_FromMap_KeysAreCachedOnFirstTraversal(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	source := enumerable.FromMap(m)
	_, _ = collect(t, source)

	m["c"] = 3
	delete(m, "a")

	items, indices := collect(t, source)
	assert.Equal(t, []int{2}, items, "new keys are not seen, deleted keys are skipped")
	assert.Equal(t, []any{"b"}, indices)
}

func Test_FromResolver_ResolvesLazily(t *testing.T) {
	backing := []string{"x", "y"}
	calls := 0

	source := enumerable.FromResolver(
		func() int { return len(backing) },
		func(position int) (string, error) {
			calls++
			if err := enumerable.CheckPosition(position, len(backing)); err != nil {
				return "", err
			}

			return backing[position], nil
		},
	)

	enumerator := source.GetEnumerator()
	assert.Equal(t, 0, calls, "nothing is resolved before the first pull")

	backing = append(backing, "z")
	items, _ := collect(t, source)
	assert.Equal(t, []string{"x", "y", "z"}, items)
	assert.True(t, enumerator.MoveNext())
	assert.Equal(t, "x", enumerator.Current())
}

func Test_FromResolver_OutOfBoundsStopsIteration(t *testing.T) {
	source := enumerable.FromResolver(
		func() int { return 3 },
		func(position int) (int, error) {
			return 0, enumerable.CheckPosition(position, 1)
		},
	)

	enumerator := source.GetEnumerator()
	assert.True(t, enumerator.MoveNext())
	assert.False(t, enumerator.MoveNext())
	assert.ErrorIs(t, enumerator.Err(), enumerable.ErrIndexOutOfBounds)
}

func Test_From_ClassifiesSources(t *testing.T) {
	tests := []struct {
		name        string
		source      any
		kind        enumerable.SourceKind
		items       []any
		indices     []any
		expectedErr error
	}{
		{
			name:    "slice",
			source:  []int{1, 2},
			kind:    enumerable.SourceSequence,
			items:   []any{1, 2},
			indices: []any{0, 1},
		},
		{
			name:    "array",
			source:  [2]string{"a", "b"},
			kind:    enumerable.SourceSequence,
			items:   []any{"a", "b"},
			indices: []any{0, 1},
		},
		{
			name:    "map",
			source:  map[int]string{2: "two", 1: "one"},
			kind:    enumerable.SourceMap,
			items:   []any{"one", "two"},
			indices: []any{1, 2},
		},
		{
			name:    "foreign enumerable",
			source:  foreignEnumerable{items: []any{"f"}},
			kind:    enumerable.SourceEnumerable,
			items:   []any{"f"},
			indices: []any{0},
		},
		{
			name:    "typed enumerable",
			source:  enumerable.FromSlice([]int{7}),
			kind:    enumerable.SourceEnumerable,
			items:   []any{7},
			indices: []any{0},
		},
		{
			name:        "scalar",
			source:      42,
			kind:        enumerable.SourceInvalid,
			expectedErr: enumerable.ErrInvalidSourceType,
		},
		{
			name:        "string",
			source:      "abc",
			kind:        enumerable.SourceInvalid,
			expectedErr: enumerable.ErrInvalidSourceType,
		},
		{
			name:        "nil",
			source:      nil,
			kind:        enumerable.SourceInvalid,
			expectedErr: enumerable.ErrNilSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, enumerable.Classify(tt.source))

			source, err := enumerable.From(tt.source)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.ErrorIs(t, err, enumerable.ErrInvalidSourceType)
				return
			}

			require.NoError(t, err)
			items, indices := collect(t, source)
			assert.Equal(t, tt.items, items)
			assert.Equal(t, tt.indices, indices)
		})
	}
}

func Test_Cast_RejectsForeignElementTypes(t *testing.T) {
	enumerator := enumerable.Cast[int](enumerable.FromSlice([]any{1, nil, "two"}).GetEnumerator())

	assert.True(t, enumerator.MoveNext())
	assert.Equal(t, 1, enumerator.Current())
	assert.True(t, enumerator.MoveNext())
	assert.Equal(t, 0, enumerator.Current(), "nil is delivered as the zero value")
	assert.False(t, enumerator.MoveNext())
	assert.True(t, errors.Is(enumerator.Err(), enumerable.ErrInvalidSourceType))
}

func Test_All_RangesOverIndexAndItem(t *testing.T) {
	var seen []string
	for index, item := range enumerable.All(enumerable.FromSlice([]string{"a", "b", "c"})) {
		if index == 2 {
			break
		}
		seen = append(seen, item)
	}

	assert.Equal(t, []string{"a", "b"}, seen)
}
