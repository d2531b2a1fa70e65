package enumerable

import (
	"fmt"
	"iter"
)

// Enumerator is a stateful cursor over a sequence.
type Enumerator[T any] interface {
	// Current returns the element at the cursor, or the zero value before the first MoveNext and after exhaustion.
	Current() T

	// CurrentIndex returns the element's position for ordered sources or its key for keyed sources.
	CurrentIndex() any

	// MoveNext advances the cursor and reports whether an element is available.
	MoveNext() bool

	// Reset rewinds the cursor to the pre-iteration state.
	Reset()

	// Err returns the error which stopped the iteration, nil if the sequence was simply exhausted.
	Err() error
}

// Enumerable is the capability every pipeline source must provide.
// Each GetEnumerator call yields a fresh cursor, so an Enumerable is stateless across traversals.
type Enumerable[T any] interface {
	GetEnumerator() Enumerator[T]
	Each(fn func(item T, index any)) error
}

// AnyEnumerable is the explicit capability marker for values that can be enumerated without knowing
// their element type. Every adapter in this package implements it.
type AnyEnumerable interface {
	AnyEnumerator() Enumerator[any]
}

// EachOf drives enumerator to exhaustion, calling fn for every element, and returns the enumerator's error.
func EachOf[T any](enumerator Enumerator[T], fn func(item T, index any)) error {
	for enumerator.MoveNext() {
		fn(enumerator.Current(), enumerator.CurrentIndex())
	}

	return enumerator.Err()
}

// All exposes an Enumerable as a range-over-func sequence of (index, item) pairs.
// An error stops the sequence silently, use Each when the error matters.
func All[T any](source Enumerable[T]) iter.Seq2[any, T] {
	return func(yield func(any, T) bool) {
		enumerator := source.GetEnumerator()
		for enumerator.MoveNext() {
			if !yield(enumerator.CurrentIndex(), enumerator.Current()) {
				return
			}
		}
	}
}

/***** type erasure *****/

type erasedEnumerator[T any] struct {
	inner Enumerator[T]
}

// Erase turns a typed Enumerator into an untyped one.
func Erase[T any](enumerator Enumerator[T]) Enumerator[any] {
	if untyped, ok := any(enumerator).(Enumerator[any]); ok {
		return untyped
	}

	return erasedEnumerator[T]{inner: enumerator}
}

func (e erasedEnumerator[T]) Current() any      { return e.inner.Current() }
func (e erasedEnumerator[T]) CurrentIndex() any { return e.inner.CurrentIndex() }
func (e erasedEnumerator[T]) MoveNext() bool    { return e.inner.MoveNext() }
func (e erasedEnumerator[T]) Reset()            { e.inner.Reset() }
func (e erasedEnumerator[T]) Err() error        { return e.inner.Err() }

type erasedEnumerable[T any] struct {
	inner Enumerable[T]
}

// AsAny turns a typed Enumerable into an untyped one.
func AsAny[T any](source Enumerable[T]) Enumerable[any] {
	if untyped, ok := any(source).(Enumerable[any]); ok {
		return untyped
	}

	return erasedEnumerable[T]{inner: source}
}

func (e erasedEnumerable[T]) GetEnumerator() Enumerator[any] {
	return Erase(e.inner.GetEnumerator())
}

func (e erasedEnumerable[T]) AnyEnumerator() Enumerator[any] {
	return e.GetEnumerator()
}

func (e erasedEnumerable[T]) Each(fn func(item any, index any)) error {
	return e.inner.Each(func(item T, index any) {
		fn(item, index)
	})
}

// castEnumerator asserts every untyped element to T.
type castEnumerator[T any] struct {
	inner   Enumerator[any]
	current T
	err     error
}

// Cast turns an untyped Enumerator into a typed one.
// An element of another type stops the iteration with ErrInvalidSourceType.
// A nil element is delivered as the zero value of T.
func Cast[T any](enumerator Enumerator[any]) Enumerator[T] {
	if typed, ok := any(enumerator).(Enumerator[T]); ok {
		return typed
	}

	return &castEnumerator[T]{inner: enumerator}
}

func (c *castEnumerator[T]) Current() T {
	return c.current
}

func (c *castEnumerator[T]) CurrentIndex() any {
	return c.inner.CurrentIndex()
}

func (c *castEnumerator[T]) MoveNext() bool {
	var zero T
	c.current = zero

	if c.err != nil || !c.inner.MoveNext() {
		return false
	}

	raw := c.inner.Current()
	if raw == nil {
		return true
	}

	value, ok := raw.(T)
	if !ok {
		c.err = fmt.Errorf("%w: element %T is not a %T", ErrInvalidSourceType, raw, zero)
		return false
	}

	c.current = value

	return true
}

func (c *castEnumerator[T]) Reset() {
	var zero T
	c.current = zero
	c.err = nil
	c.inner.Reset()
}

func (c *castEnumerator[T]) Err() error {
	if c.err != nil {
		return c.err
	}

	return c.inner.Err()
}
