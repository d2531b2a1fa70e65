package chain

import (
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// GetEnumerator returns a fresh typed enumerator over the pipeline.
func (c Chain[T]) GetEnumerator() enumerable.Enumerator[T] {
	return enumerable.Cast[T](c.node.GetEnumerator())
}

// AnyEnumerator implements enumerable.AnyEnumerable, so a chain can feed Concat, Zip and Flatten of another chain.
func (c Chain[T]) AnyEnumerator() enumerable.Enumerator[any] {
	return c.node.GetEnumerator()
}

// Each calls fn for every element and its index.
func (c Chain[T]) Each(fn func(item T, index any)) error {
	return enumerable.EachOf(c.GetEnumerator(), fn)
}

// ToArray collects all elements in order.
func (c Chain[T]) ToArray() ([]T, error) {
	items := make([]T, 0)

	err := c.Each(func(item T, _ any) {
		items = append(items, item)
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Value is an alias of ToArray.
func (c Chain[T]) Value() ([]T, error) {
	return c.ToArray()
}

// ToObject collects all elements keyed by their index. Later elements win on duplicate indices.
// Indices that are not hashable are keyed by their canonical form.
func (c Chain[T]) ToObject() (map[any]T, error) {
	object := make(map[any]T)

	err := c.Each(func(item T, index any) {
		object[enumerable.CanonicalKey(index)] = item
	})
	if err != nil {
		return nil, err
	}

	return object, nil
}

// Reduce folds the elements without an initial value: the first element becomes the accumulator
// and fn is invoked from the second element on. The bool result is false for an empty pipeline.
func (c Chain[T]) Reduce(fn func(accumulator T, item T, index any) T) (T, bool, error) {
	var accumulator T
	found := false

	err := c.Each(func(item T, index any) {
		if !found {
			accumulator = item
			found = true

			return
		}

		accumulator = fn(accumulator, item, index)
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	return accumulator, found, nil
}

// Fold folds the elements into initial.
func Fold[T, A any](c Chain[T], initial A, fn func(accumulator A, item T, index any) A) (A, error) {
	accumulator := initial

	err := c.Each(func(item T, index any) {
		accumulator = fn(accumulator, item, index)
	})
	if err != nil {
		return initial, err
	}

	return accumulator, nil
}

// FirstValue pulls a single element. The bool result is false for an empty pipeline.
func (c Chain[T]) FirstValue() (T, bool, error) {
	var zero T

	enumerator := c.GetEnumerator()
	if enumerator.MoveNext() {
		return enumerator.Current(), true, nil
	}

	return zero, false, enumerator.Err()
}

// LastValue drains the pipeline and returns its last element. The bool result is false for an empty pipeline.
func (c Chain[T]) LastValue() (T, bool, error) {
	var last T
	found := false

	err := c.Each(func(item T, _ any) {
		last = item
		found = true
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	return last, found, nil
}

// Max returns the greatest element by cmp, or by enumerable.Compare if cmp is nil.
// The first of several greatest elements wins. The bool result is false for an empty pipeline.
func (c Chain[T]) Max(cmp func(a, b T) int) (T, bool, error) {
	return c.extreme(cmp, 1)
}

// Min returns the least element by cmp, or by enumerable.Compare if cmp is nil.
// The first of several least elements wins. The bool result is false for an empty pipeline.
func (c Chain[T]) Min(cmp func(a, b T) int) (T, bool, error) {
	return c.extreme(cmp, -1)
}

func (c Chain[T]) extreme(cmp func(a, b T) int, sign int) (T, bool, error) {
	if cmp == nil {
		cmp = func(a, b T) int {
			return enumerable.Compare(a, b)
		}
	}

	return c.Reduce(func(best T, item T, _ any) T {
		if cmp(item, best)*sign > 0 {
			return item
		}

		return best
	})
}

// Count returns the number of elements, using the count operator of the chain's factory table.
func (c Chain[T]) Count() (int, error) {
	total, _, err := Then[T, int](c, OpCount, Params{}).FirstValue()

	return total, err
}

// IndexOf returns the index of the first element identical to value, or nil if there is none.
func (c Chain[T]) IndexOf(value T) (any, error) {
	enumerator := c.GetEnumerator()

	for enumerator.MoveNext() {
		if enumerable.Same(enumerator.Current(), value) {
			return enumerator.CurrentIndex(), nil
		}
	}

	return nil, enumerator.Err()
}

// Some reports whether predicate holds for at least one element. It stops at the first match.
func (c Chain[T]) Some(predicate func(item T, index any) bool) (bool, error) {
	enumerator := c.GetEnumerator()

	for enumerator.MoveNext() {
		if predicate(enumerator.Current(), enumerator.CurrentIndex()) {
			return true, nil
		}
	}

	return false, enumerator.Err()
}

// Every reports whether predicate holds for all elements. It stops at the first mismatch.
func (c Chain[T]) Every(predicate func(item T, index any) bool) (bool, error) {
	enumerator := c.GetEnumerator()

	for enumerator.MoveNext() {
		if !predicate(enumerator.Current(), enumerator.CurrentIndex()) {
			return false, nil
		}
	}

	if err := enumerator.Err(); err != nil {
		return false, err
	}

	return true, nil
}
