package enumerable

import (
	"fmt"
	"reflect"
	"slices"
)

// SourceKind tags the shape of a value accepted as a pipeline source.
type SourceKind int

const (
	// SourceInvalid is neither a sequence, a map nor enumerable.
	SourceInvalid SourceKind = iota

	// SourceSequence is an ordered sequence (slice or array), indexed by position.
	SourceSequence

	// SourceMap is a keyed map, indexed by key.
	SourceMap

	// SourceEnumerable already exposes the enumerable capability.
	SourceEnumerable
)

// String provides a string representation of SourceKind for logging and debugging.
func (k SourceKind) String() string {
	switch k {
	case SourceSequence:
		return "sequence"
	case SourceMap:
		return "map"
	case SourceEnumerable:
		return "enumerable"
	default:
		return "invalid"
	}
}

// Classify reports which kind of source v is.
func Classify(v any) SourceKind {
	switch v.(type) {
	case nil:
		return SourceInvalid
	case Enumerable[any], AnyEnumerable:
		return SourceEnumerable
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return SourceSequence
	case reflect.Map:
		return SourceMap
	default:
		return SourceInvalid
	}
}

// From wraps any supported source as an untyped Enumerable.
// Foreign enumerables are delegated to, slices/arrays and maps are adapted through reflection.
// Any other value fails with ErrInvalidSourceType.
func From(v any) (Enumerable[any], error) {
	switch source := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidSourceType, ErrNilSource)
	case Enumerable[any]:
		return source, nil
	case AnyEnumerable:
		return anyEnumerableAdapter{inner: source}, nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return &sequenceEnumerable[any]{
			length: rv.Len,
			at: func(position int) (any, error) {
				return rv.Index(position).Interface(), nil
			},
		}, nil

	case reflect.Map:
		return &keyedEnumerable[any, any]{
			captureKeys: func() []any {
				keys := make([]any, 0, rv.Len())
				for _, key := range rv.MapKeys() {
					keys = append(keys, key.Interface())
				}

				return keys
			},
			lookup: func(key any) (any, bool) {
				value := rv.MapIndex(reflect.ValueOf(key))
				if !value.IsValid() {
					return nil, false
				}

				return value.Interface(), true
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSourceType, v)
	}
}

// CheckPosition returns ErrIndexOutOfBounds if position is outside [0, length).
func CheckPosition(position, length int) error {
	if position < 0 || position >= length {
		return fmt.Errorf("%w: position %d, length %d", ErrIndexOutOfBounds, position, length)
	}

	return nil
}

/***** foreign enumerables *****/

type anyEnumerableAdapter struct {
	inner AnyEnumerable
}

func (a anyEnumerableAdapter) GetEnumerator() Enumerator[any] {
	return a.inner.AnyEnumerator()
}

func (a anyEnumerableAdapter) AnyEnumerator() Enumerator[any] {
	return a.inner.AnyEnumerator()
}

func (a anyEnumerableAdapter) Each(fn func(item any, index any)) error {
	return EachOf(a.inner.AnyEnumerator(), fn)
}

/***** ordered sequences *****/

// FromSlice wraps an ordered sequence, the index of every element is its position.
func FromSlice[T any](items []T) Enumerable[T] {
	return &sequenceEnumerable[T]{
		length: func() int { return len(items) },
		at: func(position int) (T, error) {
			return items[position], nil
		},
	}
}

// FromResolver wraps a sequence whose elements are resolved lazily by position.
// The length is re-read on every step, so the sequence may grow or shrink between traversals.
// A resolver failing with ErrIndexOutOfBounds (or any other error) stops the iteration with that error.
func FromResolver[T any](length func() int, at func(position int) (T, error)) Enumerable[T] {
	return &sequenceEnumerable[T]{
		length: length,
		at:     at,
	}
}

type sequenceEnumerable[T any] struct {
	length func() int
	at     func(position int) (T, error)
}

func (s *sequenceEnumerable[T]) GetEnumerator() Enumerator[T] {
	return &sequenceEnumerator[T]{source: s, position: -1}
}

func (s *sequenceEnumerable[T]) AnyEnumerator() Enumerator[any] {
	return Erase[T](s.GetEnumerator())
}

func (s *sequenceEnumerable[T]) Each(fn func(item T, index any)) error {
	return EachOf(s.GetEnumerator(), fn)
}

type sequenceEnumerator[T any] struct {
	source   *sequenceEnumerable[T]
	position int
	current  T
	err      error
}

func (e *sequenceEnumerator[T]) Current() T {
	return e.current
}

func (e *sequenceEnumerator[T]) CurrentIndex() any {
	if e.position < 0 {
		return nil
	}

	return e.position
}

func (e *sequenceEnumerator[T]) MoveNext() bool {
	var zero T
	e.current = zero

	if e.err != nil {
		return false
	}

	length := e.source.length()
	if e.position+1 >= length {
		e.position = length
		return false
	}

	e.position++

	value, err := e.source.at(e.position)
	if err != nil {
		e.err = err
		return false
	}

	e.current = value

	return true
}

func (e *sequenceEnumerator[T]) Reset() {
	var zero T
	e.current = zero
	e.position = -1
	e.err = nil
}

func (e *sequenceEnumerator[T]) Err() error {
	return e.err
}

/***** keyed maps *****/

// FromMap wraps a keyed map, the index of every element is its key.
// The keys are captured on the first traversal and cached; their order follows Compare,
// so every traversal visits them in the same order. Keys deleted after the capture are skipped.
func FromMap[K comparable, V any](m map[K]V) Enumerable[V] {
	return &keyedEnumerable[K, V]{
		captureKeys: func() []K {
			keys := make([]K, 0, len(m))
			for key := range m {
				keys = append(keys, key)
			}

			return keys
		},
		lookup: func(key K) (V, bool) {
			value, ok := m[key]
			return value, ok
		},
	}
}

type keyedEnumerable[K any, V any] struct {
	captureKeys func() []K
	lookup      func(key K) (V, bool)
	keys        []K
	captured    bool
}

func (k *keyedEnumerable[K, V]) cachedKeys() []K {
	if !k.captured {
		k.keys = k.captureKeys()
		slices.SortStableFunc(k.keys, func(a, b K) int {
			return Compare(a, b)
		})
		k.captured = true
	}

	return k.keys
}

func (k *keyedEnumerable[K, V]) GetEnumerator() Enumerator[V] {
	return &keyedEnumerator[K, V]{source: k, position: -1}
}

func (k *keyedEnumerable[K, V]) AnyEnumerator() Enumerator[any] {
	return Erase[V](k.GetEnumerator())
}

func (k *keyedEnumerable[K, V]) Each(fn func(item V, index any)) error {
	return EachOf(k.GetEnumerator(), fn)
}

type keyedEnumerator[K any, V any] struct {
	source   *keyedEnumerable[K, V]
	position int
	current  V
	key      any
}

func (e *keyedEnumerator[K, V]) Current() V {
	return e.current
}

func (e *keyedEnumerator[K, V]) CurrentIndex() any {
	return e.key
}

func (e *keyedEnumerator[K, V]) MoveNext() bool {
	var zero V
	e.current = zero
	e.key = nil

	keys := e.source.cachedKeys()
	for e.position+1 < len(keys) {
		e.position++

		key := keys[e.position]
		if value, ok := e.source.lookup(key); ok {
			e.current = value
			e.key = key

			return true
		}
	}

	e.position = len(keys)

	return false
}

func (e *keyedEnumerator[K, V]) Reset() {
	var zero V
	e.current = zero
	e.key = nil
	e.position = -1
}

func (e *keyedEnumerator[K, V]) Err() error {
	return nil
}
