package chain

import (
	"fmt"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// pullEnumerator is the shared state of operators pulling one element at a time from their predecessor.
type pullEnumerator struct {
	previous enumerable.Enumerator[any]
	current  any
	index    any
	err      error
}

func (p *pullEnumerator) Current() any {
	return p.current
}

func (p *pullEnumerator) CurrentIndex() any {
	return p.index
}

func (p *pullEnumerator) Err() error {
	if p.err != nil {
		return p.err
	}

	return p.previous.Err()
}

func (p *pullEnumerator) clear() {
	p.current = nil
	p.index = nil
}

func (p *pullEnumerator) rewind() {
	p.clear()
	p.err = nil
	p.previous.Reset()
}

// pull advances the predecessor and takes over its element and index.
func (p *pullEnumerator) pull() bool {
	p.clear()

	if p.err != nil || !p.previous.MoveNext() {
		return false
	}

	p.current = p.previous.Current()
	p.index = p.previous.CurrentIndex()

	return true
}

/***** map *****/

func newMapNode(previous *Node, params Params) *Node {
	return NewNode(OpMap, previous, params, func(node *Node) enumerable.Enumerator[any] {
		return &mapEnumerator{
			pullEnumerator: pullEnumerator{previous: node.previousEnumerator()},
			transform:      node.params.Transform,
		}
	}, previous.preservesIndices)
}

type mapEnumerator struct {
	pullEnumerator
	transform func(item any, index any) any
}

func (e *mapEnumerator) MoveNext() bool {
	if !e.pull() {
		return false
	}

	e.current = e.transform(e.current, e.index)

	return true
}

func (e *mapEnumerator) Reset() {
	e.rewind()
}

/***** filter / reject *****/

func newFilterNode(previous *Node, params Params) *Node {
	return newPredicateNode(OpFilter, previous, params, false)
}

func newRejectNode(previous *Node, params Params) *Node {
	return newPredicateNode(OpReject, previous, params, true)
}

func newPredicateNode(operator Operator, previous *Node, params Params, invert bool) *Node {
	return NewNode(operator, previous, params, func(node *Node) enumerable.Enumerator[any] {
		return &filterEnumerator{
			pullEnumerator: pullEnumerator{previous: node.previousEnumerator()},
			predicate:      node.params.Predicate,
			invert:         invert,
		}
	}, previous.preservesIndices)
}

type filterEnumerator struct {
	pullEnumerator
	predicate func(item any, index any) bool
	invert    bool
}

func (e *filterEnumerator) MoveNext() bool {
	for e.pull() {
		if e.predicate(e.current, e.index) != e.invert {
			return true
		}
	}

	e.clear()

	return false
}

func (e *filterEnumerator) Reset() {
	e.rewind()
}

/***** slice *****/

func newSliceNode(previous *Node, params Params) *Node {
	return NewNode(OpSlice, previous, params, func(node *Node) enumerable.Enumerator[any] {
		return &sliceEnumerator{
			pullEnumerator: pullEnumerator{previous: node.previousEnumerator()},
			begin:          node.params.Begin,
			end:            node.params.End,
			position:       -1,
		}
	}, previous.preservesIndices)
}

type sliceEnumerator struct {
	pullEnumerator
	begin    int
	end      int
	position int
}

func (e *sliceEnumerator) MoveNext() bool {
	e.clear()

	if e.err != nil {
		return false
	}

	if e.begin < 0 || e.end < e.begin {
		e.err = fmt.Errorf("%w: slice bounds [%d, %d)", enumerable.ErrIndexOutOfBounds, e.begin, e.end)
		return false
	}

	for e.position+1 < e.end {
		if !e.pull() {
			return false
		}

		e.position++
		if e.position >= e.begin {
			return true
		}
	}

	e.clear()

	return false
}

func (e *sliceEnumerator) Reset() {
	e.rewind()
	e.position = -1
}

/***** uniq *****/

func newUniqNode(previous *Node, params Params) *Node {
	return NewNode(OpUniq, previous, params, func(node *Node) enumerable.Enumerator[any] {
		return &uniqEnumerator{
			pullEnumerator: pullEnumerator{previous: node.previousEnumerator()},
			id:             node.params.Key,
			seen:           make(map[any]struct{}),
		}
	}, previous.preservesIndices)
}

// uniqEnumerator lets the first occurrence of every id through.
// Hashable ids are tracked in a set, other ids (slices, maps, funcs) in a list compared by reference.
type uniqEnumerator struct {
	pullEnumerator
	id       func(item any, index any) any
	seen     map[any]struct{}
	seenRefs []any
}

func (e *uniqEnumerator) MoveNext() bool {
	for e.pull() {
		id := e.current
		if e.id != nil {
			id = e.id(e.current, e.index)
		}

		if e.markSeen(id) {
			return true
		}
	}

	e.clear()

	return false
}

// markSeen records id and reports whether it was new.
func (e *uniqEnumerator) markSeen(id any) bool {
	if enumerable.IsHashable(id) {
		if _, exists := e.seen[id]; exists {
			return false
		}

		e.seen[id] = struct{}{}

		return true
	}

	for _, ref := range e.seenRefs {
		if enumerable.Same(ref, id) {
			return false
		}
	}

	e.seenRefs = append(e.seenRefs, id)

	return true
}

func (e *uniqEnumerator) Reset() {
	e.rewind()
	e.seen = make(map[any]struct{})
	e.seenRefs = nil
}
