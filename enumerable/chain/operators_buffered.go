package chain

import (
	"slices"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// entry is one materialized (index, value) pair.
type entry struct {
	index any
	value any
}

// fillFunc drains the predecessor into the entries served by a bufferedEnumerator.
type fillFunc func(previous enumerable.Enumerator[any]) ([]entry, error)

// bufferedEnumerator materializes its predecessor once, on the first pull, and serves the result.
// The materialization is scoped to this enumerator and dropped on Reset.
type bufferedEnumerator struct {
	previous enumerable.Enumerator[any]
	fill     fillFunc
	entries  []entry
	filled   bool
	position int
	err      error
}

func newBufferedEnumerator(previous enumerable.Enumerator[any], fill fillFunc) *bufferedEnumerator {
	return &bufferedEnumerator{
		previous: previous,
		fill:     fill,
		position: -1,
	}
}

func (e *bufferedEnumerator) Current() any {
	if e.position < 0 || e.position >= len(e.entries) {
		return nil
	}

	return e.entries[e.position].value
}

func (e *bufferedEnumerator) CurrentIndex() any {
	if e.position < 0 || e.position >= len(e.entries) {
		return nil
	}

	return e.entries[e.position].index
}

func (e *bufferedEnumerator) MoveNext() bool {
	if !e.filled {
		e.filled = true
		e.entries, e.err = e.fill(e.previous)
	}

	if e.err != nil {
		e.position = len(e.entries)
		return false
	}

	if e.position < len(e.entries) {
		e.position++
	}

	return e.position < len(e.entries)
}

func (e *bufferedEnumerator) Reset() {
	e.entries = nil
	e.filled = false
	e.position = -1
	e.err = nil
	e.previous.Reset()
}

func (e *bufferedEnumerator) Err() error {
	return e.err
}

// drain pulls every (index, value) pair from previous.
func drain(previous enumerable.Enumerator[any]) ([]entry, error) {
	var entries []entry

	for previous.MoveNext() {
		entries = append(entries, entry{index: previous.CurrentIndex(), value: previous.Current()})
	}

	return entries, previous.Err()
}

// renumber replaces the indices by the output positions.
func renumber(entries []entry) {
	for i := range entries {
		entries[i].index = i
	}
}

/***** reverse *****/

func newReverseNode(previous *Node, params Params) *Node {
	return NewNode(OpReverse, previous, params, func(node *Node) enumerable.Enumerator[any] {
		preserve := node.previousPreservesIndices()

		return newBufferedEnumerator(node.previousEnumerator(), func(previous enumerable.Enumerator[any]) ([]entry, error) {
			entries, err := drain(previous)
			if err != nil {
				return nil, err
			}

			slices.Reverse(entries)
			if !preserve {
				renumber(entries)
			}

			return entries, nil
		})
	}, previous.preservesIndices)
}

/***** sort *****/

// sortWrapper pairs a value with its pre-sort index; it only lives for the duration of the sort.
type sortWrapper struct {
	value any
	index any
}

func newSortNode(previous *Node, params Params) *Node {
	return NewNode(OpSort, previous, params, func(node *Node) enumerable.Enumerator[any] {
		preserve := node.previousPreservesIndices()
		comparator := node.params.Comparator
		if comparator == nil {
			comparator = enumerable.Compare
		}

		return newBufferedEnumerator(node.previousEnumerator(), func(previous enumerable.Enumerator[any]) ([]entry, error) {
			var wrappers []sortWrapper

			for previous.MoveNext() {
				wrappers = append(wrappers, sortWrapper{value: previous.Current(), index: previous.CurrentIndex()})
			}

			if err := previous.Err(); err != nil {
				return nil, err
			}

			slices.SortStableFunc(wrappers, func(a, b sortWrapper) int {
				return comparator(a.value, b.value)
			})

			entries := make([]entry, len(wrappers))
			for i, wrapper := range wrappers {
				entries[i] = entry{index: wrapper.index, value: wrapper.value}
			}

			if !preserve {
				renumber(entries)
			}

			return entries, nil
		})
	}, previous.preservesIndices)
}

/***** group / count *****/

// groupBuckets is an insertion-ordered key -> values map.
type groupBuckets struct {
	keys     []any
	values   [][]any
	position map[any]int
}

func (g *groupBuckets) add(key any, value any) {
	canonical := enumerable.CanonicalKey(key)

	at, exists := g.position[canonical]
	if !exists {
		at = len(g.keys)
		g.position[canonical] = at
		g.keys = append(g.keys, key)
		g.values = append(g.values, nil)
	}

	g.values[at] = append(g.values[at], value)
}

func group(previous enumerable.Enumerator[any], params Params) ([]entry, error) {
	buckets := groupBuckets{position: make(map[any]int)}

	for previous.MoveNext() {
		item, index := previous.Current(), previous.CurrentIndex()

		value := item
		if params.Transform != nil {
			value = params.Transform(item, index)
		}

		buckets.add(params.Key(item, index), value)
	}

	if err := previous.Err(); err != nil {
		return nil, err
	}

	entries := make([]entry, len(buckets.keys))
	for i, key := range buckets.keys {
		var emitted any = buckets.values[i]
		if params.Bucket != nil {
			emitted = params.Bucket(buckets.values[i])
		}

		entries[i] = entry{index: key, value: emitted}
	}

	return entries, nil
}

func newGroupNode(previous *Node, params Params) *Node {
	return NewNode(OpGroup, previous, params, func(node *Node) enumerable.Enumerator[any] {
		params := node.params

		return newBufferedEnumerator(node.previousEnumerator(), func(previous enumerable.Enumerator[any]) ([]entry, error) {
			return group(previous, params)
		})
	}, false)
}

func newCountNode(previous *Node, params Params) *Node {
	return NewNode(OpCount, previous, params, func(node *Node) enumerable.Enumerator[any] {
		params := node.params

		if params.Key == nil {
			return newBufferedEnumerator(node.previousEnumerator(), func(previous enumerable.Enumerator[any]) ([]entry, error) {
				total := 0
				for previous.MoveNext() {
					total++
				}

				if err := previous.Err(); err != nil {
					return nil, err
				}

				return []entry{{index: 0, value: total}}, nil
			})
		}

		params.Transform = nil
		params.Bucket = func(values []any) any {
			return len(values)
		}

		return newBufferedEnumerator(node.previousEnumerator(), func(previous enumerable.Enumerator[any]) ([]entry, error) {
			return group(previous, params)
		})
	}, false)
}
