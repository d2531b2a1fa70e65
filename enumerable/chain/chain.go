package chain

import (
	"fmt"
	"math"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// Chain is the typed view of a pipeline node. The zero value is not usable, build one with From, FromSlice or FromAny.
// Type-preserving operators are methods, type-changing operators are package functions.
type Chain[T any] struct {
	node *Node
}

// From starts a pipeline over source using the built-in operators.
func From[T any](source enumerable.Enumerable[T]) Chain[T] {
	return FromWithFactories(source, DefaultFactories())
}

// FromWithFactories starts a pipeline over source whose operators are built by factories.
// The table is owned by the chain, later changes to it are seen by nodes built afterward.
func FromWithFactories[T any](source enumerable.Enumerable[T], factories Factories) Chain[T] {
	return Chain[T]{node: newRootNode(func() (enumerable.Enumerable[any], error) {
		if source == nil {
			return nil, fmt.Errorf("%w: %w", enumerable.ErrInvalidSourceType, enumerable.ErrNilSource)
		}

		return enumerable.AsAny(source), nil
	}, factories)}
}

// FromSlice starts a pipeline over items.
func FromSlice[T any](items []T) Chain[T] {
	return From(enumerable.FromSlice(items))
}

// FromMap starts a pipeline over the values of m, indexed by key.
func FromMap[K comparable, V any](m map[K]V) Chain[V] {
	return From(enumerable.FromMap(m))
}

// FromAny starts a pipeline over an untyped source.
// The source is classified when the pipeline is first consumed; an unsupported one fails with ErrInvalidSourceType then.
func FromAny(source any) Chain[any] {
	return Chain[any]{node: newRootNode(func() (enumerable.Enumerable[any], error) {
		return enumerable.From(source)
	}, DefaultFactories())}
}

// Wrap gives a typed view of node, e.g. one built by a custom operator factory.
func Wrap[T any](node *Node) Chain[T] {
	return Chain[T]{node: node}
}

// Then appends a node built by the factory registered for operator.
func Then[T, U any](c Chain[T], operator Operator, params Params) Chain[U] {
	return Chain[U]{node: c.node.Then(operator, params)}
}

// Node returns the untyped pipeline node behind c.
func (c Chain[T]) Node() *Node {
	return c.node
}

// Destroy releases the predecessor reference and parameters of the last node.
func (c Chain[T]) Destroy() {
	c.node.Destroy()
}

func (c Chain[T]) then(operator Operator, params Params) Chain[T] {
	return Chain[T]{node: c.node.Then(operator, params)}
}

// Filter keeps the elements for which predicate returns true.
func (c Chain[T]) Filter(predicate func(item T, index any) bool) Chain[T] {
	return c.then(OpFilter, Params{Predicate: typedPredicate(predicate)})
}

// Reject drops the elements for which predicate returns true.
func (c Chain[T]) Reject(predicate func(item T, index any) bool) Chain[T] {
	return c.then(OpReject, Params{Predicate: typedPredicate(predicate)})
}

// Slice keeps the elements at positions [begin, end) of the predecessor's output.
// Bounds with begin < 0 or end < begin fail with ErrIndexOutOfBounds once consumed.
func (c Chain[T]) Slice(begin, end int) Chain[T] {
	return c.then(OpSlice, Params{Begin: begin, End: end})
}

// Skip drops the first n elements.
func (c Chain[T]) Skip(n int) Chain[T] {
	return c.Slice(n, math.MaxInt)
}

// First keeps at most the first n elements.
func (c Chain[T]) First(n int) Chain[T] {
	return c.Slice(0, n)
}

// Last keeps at most the last n elements.
func (c Chain[T]) Last(n int) Chain[T] {
	return c.Reverse().First(n).Reverse()
}

// Reverse inverts the element order.
func (c Chain[T]) Reverse() Chain[T] {
	return c.then(OpReverse, Params{})
}

// Sort orders the elements stably by cmp, or by enumerable.Compare if cmp is nil.
func (c Chain[T]) Sort(cmp func(a, b T) int) Chain[T] {
	params := Params{}
	if cmp != nil {
		params.Comparator = func(a, b any) int {
			return cmp(as[T](a), as[T](b))
		}
	}

	return c.then(OpSort, params)
}

// Uniq keeps the first occurrence of every element, compared by identity.
func (c Chain[T]) Uniq() Chain[T] {
	return c.then(OpUniq, Params{})
}

// Concat appends the elements of every sequence, in argument order, after the elements of c.
// Each sequence must be a slice, array, map or enumerable holding elements of type T.
func (c Chain[T]) Concat(sequences ...any) Chain[T] {
	return c.then(OpConcat, Params{Sequences: sequences})
}

// Map transforms every element.
func Map[T, U any](c Chain[T], transform func(item T, index any) U) Chain[U] {
	return Then[T, U](c, OpMap, Params{Transform: func(item any, index any) any {
		return transform(as[T](item), index)
	}})
}

// Group buckets the elements by key, in first-seen key order. Each bucket is indexed by its key.
func Group[T any, K comparable](c Chain[T], key func(item T, index any) K) Chain[[]T] {
	return Then[T, []T](c, OpGroup, Params{
		Key:    typedKey(key),
		Bucket: bucketOf[T],
	})
}

// GroupMap buckets value(item) by key(item), in first-seen key order. Each bucket is indexed by its key.
func GroupMap[T any, K comparable, V any](c Chain[T], key func(item T, index any) K, value func(item T, index any) V) Chain[[]V] {
	return Then[T, []V](c, OpGroup, Params{
		Key: typedKey(key),
		Transform: func(item any, index any) any {
			return value(as[T](item), index)
		},
		Bucket: bucketOf[V],
	})
}

// CountBy counts the elements per key, in first-seen key order. Each count is indexed by its key.
func CountBy[T any, K comparable](c Chain[T], key func(item T, index any) K) Chain[int] {
	return Then[T, int](c, OpCount, Params{Key: typedKey(key)})
}

// UniqBy keeps the first element for every id. Ids that are not hashable are compared by reference.
func UniqBy[T, K any](c Chain[T], id func(item T, index any) K) Chain[T] {
	return Then[T, T](c, OpUniq, Params{Key: func(item any, index any) any {
		return id(as[T](item), index)
	}})
}

// Flatten unwraps nested slices, arrays and enumerables depth-first.
func Flatten[T any](c Chain[T]) Chain[any] {
	return Then[T, any](c, OpFlatten, Params{})
}

// Zip pairs every element of c with the element at the same step of each sequence.
// Sequences that run out early contribute nil.
func Zip[T any](c Chain[T], sequences ...any) Chain[[]any] {
	return Then[T, []any](c, OpZip, Params{Sequences: sequences})
}

// as asserts v to T, yielding the zero value for nil.
func as[T any](v any) T {
	typed, _ := v.(T)
	return typed
}

func typedPredicate[T any](predicate func(item T, index any) bool) func(any, any) bool {
	return func(item any, index any) bool {
		return predicate(as[T](item), index)
	}
}

func typedKey[T any, K comparable](key func(item T, index any) K) func(any, any) any {
	return func(item any, index any) any {
		return key(as[T](item), index)
	}
}

func bucketOf[T any](values []any) any {
	bucket := make([]T, len(values))
	for i, value := range values {
		bucket[i] = as[T](value)
	}

	return bucket
}
