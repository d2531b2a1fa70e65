package chain

import (
	"fmt"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// Operator tags one stage of a pipeline.
type Operator string

const (
	OpSource  Operator = "source"
	OpMap     Operator = "map"
	OpFilter  Operator = "filter"
	OpReject  Operator = "reject"
	OpSlice   Operator = "slice"
	OpReverse Operator = "reverse"
	OpSort    Operator = "sort"
	OpGroup   Operator = "group"
	OpCount   Operator = "count"
	OpUniq    Operator = "uniq"
	OpConcat  Operator = "concat"
	OpFlatten Operator = "flatten"
	OpZip     Operator = "zip"
)

// Params holds the transformation parameters of one node. Each operator reads only the fields it needs.
type Params struct {
	Transform  func(item any, index any) any  // map; group values
	Predicate  func(item any, index any) bool // filter, reject
	Comparator func(a, b any) int             // sort
	Key        func(item any, index any) any  // group, count, uniq
	Bucket     func(values []any) any         // group, count: turns a bucket into the emitted element
	Begin      int                            // slice
	End        int                            // slice
	Sequences  []any                          // concat, zip
}

// EnumerateFunc produces a fresh enumerator for node, usually pulling from node.Previous().
type EnumerateFunc func(node *Node) enumerable.Enumerator[any]

// Factory constructs the node for one operator on top of previous.
type Factory func(previous *Node, params Params) *Node

// Factories maps operator tags to their constructors.
type Factories map[Operator]Factory

// DefaultFactories returns a new table holding the constructors of all built-in operators.
func DefaultFactories() Factories {
	return Factories{
		OpMap:     newMapNode,
		OpFilter:  newFilterNode,
		OpReject:  newRejectNode,
		OpSlice:   newSliceNode,
		OpReverse: newReverseNode,
		OpSort:    newSortNode,
		OpGroup:   newGroupNode,
		OpCount:   newCountNode,
		OpUniq:    newUniqNode,
		OpConcat:  newConcatNode,
		OpFlatten: newFlattenNode,
		OpZip:     newZipNode,
	}
}

// Node is one immutable link of a pipeline.
// It references its predecessor (nil for the root, which references the source instead)
// and never mutates it.
type Node struct {
	operator         Operator
	previous         *Node
	source           func() (enumerable.Enumerable[any], error)
	params           Params
	factories        Factories
	enumerate        EnumerateFunc
	preservesIndices bool
	destroyed        bool
}

// NewNode creates a node for a custom operator. Factories registered in a table use it to build their nodes.
// preservesIndices tells downstream order-changing operators whether the indices reported by this node
// are original indices worth keeping.
func NewNode(
	operator Operator,
	previous *Node,
	params Params,
	enumerate EnumerateFunc,
	preservesIndices bool,
) *Node {
	node := &Node{
		operator:         operator,
		previous:         previous,
		params:           params,
		enumerate:        enumerate,
		preservesIndices: preservesIndices,
	}

	if previous != nil {
		node.factories = previous.factories
	}

	return node
}

func newRootNode(source func() (enumerable.Enumerable[any], error), factories Factories) *Node {
	return &Node{
		operator:         OpSource,
		source:           source,
		factories:        factories,
		preservesIndices: true,
		enumerate: func(node *Node) enumerable.Enumerator[any] {
			resolved, err := node.source()
			if err != nil {
				return failedEnumerator{err: err}
			}

			return resolved.GetEnumerator()
		},
	}
}

// Operator returns the operator tag of the node.
func (n *Node) Operator() Operator {
	return n.operator
}

// Previous returns the predecessor node, nil for the root.
func (n *Node) Previous() *Node {
	return n.previous
}

// Params returns the transformation parameters of the node.
func (n *Node) Params() Params {
	return n.params
}

// PreservesIndices reports whether the node reports original indices.
func (n *Node) PreservesIndices() bool {
	return n.preservesIndices
}

// Then builds the node for operator on top of n using the factory table owned by the chain root.
// An operator missing from the table yields a node failing with ErrUnknownOperator once consumed.
func (n *Node) Then(operator Operator, params Params) *Node {
	factory, ok := n.factories[operator]
	if !ok {
		err := fmt.Errorf("%w: %s", enumerable.ErrUnknownOperator, operator)

		return NewNode(operator, n, params, func(*Node) enumerable.Enumerator[any] {
			return failedEnumerator{err: err}
		}, false)
	}

	return factory(n, params)
}

// GetEnumerator returns a fresh enumerator pulling through the whole pipeline up to this node.
func (n *Node) GetEnumerator() enumerable.Enumerator[any] {
	if n.destroyed {
		return failedEnumerator{err: fmt.Errorf("%w: %s", enumerable.ErrChainDestroyed, n.operator)}
	}

	return n.enumerate(n)
}

// AnyEnumerator implements enumerable.AnyEnumerable.
func (n *Node) AnyEnumerator() enumerable.Enumerator[any] {
	return n.GetEnumerator()
}

// Each pulls every element through the pipeline.
func (n *Node) Each(fn func(item any, index any)) error {
	return enumerable.EachOf(n.GetEnumerator(), fn)
}

// Destroy releases the predecessor reference and the parameters. Consuming a destroyed node fails.
func (n *Node) Destroy() {
	n.destroyed = true
	n.previous = nil
	n.source = nil
	n.params = Params{}
	n.enumerate = nil
}

// previousEnumerator returns a fresh enumerator of the predecessor, failing if it was released.
func (n *Node) previousEnumerator() enumerable.Enumerator[any] {
	if n.previous == nil {
		return failedEnumerator{err: fmt.Errorf("%w: %s has no predecessor", enumerable.ErrChainDestroyed, n.operator)}
	}

	return n.previous.GetEnumerator()
}

// previousPreservesIndices is false for a released predecessor.
func (n *Node) previousPreservesIndices() bool {
	return n.previous != nil && n.previous.preservesIndices
}

/***** failedEnumerator *****/

type failedEnumerator struct {
	err error
}

func (f failedEnumerator) Current() any      { return nil }
func (f failedEnumerator) CurrentIndex() any { return nil }
func (f failedEnumerator) MoveNext() bool    { return false }
func (f failedEnumerator) Reset()            {}
func (f failedEnumerator) Err() error        { return f.err }
