package indexer

import (
	"slices"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// buckets maps the canonical key of a property value to the ascending positions holding it.
type buckets map[any][]int

// add inserts position into the bucket of value using binary search. A recorded position is not duplicated.
func (b buckets) add(value any, position int) {
	key := enumerable.CanonicalKey(value)
	positions := b[key]

	at, found := slices.BinarySearch(positions, position)
	if found {
		return
	}

	b[key] = slices.Insert(positions, at, position)
}

func (b buckets) lookup(value any) []int {
	return b[enumerable.CanonicalKey(value)]
}

// drop removes the positions in [start, start+count) without touching the others.
func (b buckets) drop(start, count int) {
	for key, positions := range b {
		from, _ := slices.BinarySearch(positions, start)
		to, _ := slices.BinarySearch(positions, start+count)

		if from == to {
			continue
		}

		positions = slices.Delete(positions, from, to)
		if len(positions) == 0 {
			delete(b, key)
			continue
		}

		b[key] = positions
	}
}

// shift moves the positions in [start, start+count) by offset.
func (b buckets) shift(start, count, offset int) {
	for key, positions := range b {
		moved := false

		for i, position := range positions {
			if position >= start && position < start+count {
				positions[i] = position + offset
				moved = true
			}
		}

		if moved && !slices.IsSorted(positions) {
			slices.Sort(positions)
			b[key] = slices.Compact(positions)
		}
	}
}

// remove drops the positions in [start, start+count) and closes the gap.
func (b buckets) remove(start, count int) {
	b.drop(start, count)

	for _, positions := range b {
		for i, position := range positions {
			if position >= start+count {
				positions[i] = position - count
			}
		}
	}
}
