package chain

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

/***** concat *****/

func newConcatNode(previous *Node, params Params) *Node {
	return NewNode(OpConcat, previous, params, func(node *Node) enumerable.Enumerator[any] {
		return &concatEnumerator{
			first:     node.previousEnumerator(),
			sequences: node.params.Sequences,
			position:  -1,
		}
	}, false)
}

// concatEnumerator drains its predecessor, then every extra sequence in argument order.
// An extra sequence is classified only when it is reached.
type concatEnumerator struct {
	first     enumerable.Enumerator[any]
	sequences []any
	active    enumerable.Enumerator[any]
	next      int
	position  int
	current   any
	valid     bool
	err       error
}

func (e *concatEnumerator) Current() any {
	return e.current
}

func (e *concatEnumerator) CurrentIndex() any {
	if !e.valid {
		return nil
	}

	return e.position
}

func (e *concatEnumerator) MoveNext() bool {
	e.current = nil
	e.valid = false

	if e.err != nil {
		return false
	}

	if e.active == nil {
		e.active = e.first
	}

	for {
		if e.active.MoveNext() {
			e.position++
			e.current = e.active.Current()
			e.valid = true

			return true
		}

		if err := e.active.Err(); err != nil {
			e.err = err
			return false
		}

		if e.next >= len(e.sequences) {
			return false
		}

		source, err := enumerable.From(e.sequences[e.next])
		e.next++

		if err != nil {
			e.err = err
			return false
		}

		e.active = source.GetEnumerator()
	}
}

func (e *concatEnumerator) Reset() {
	e.first.Reset()
	e.active = nil
	e.next = 0
	e.position = -1
	e.current = nil
	e.valid = false
	e.err = nil
}

func (e *concatEnumerator) Err() error {
	return e.err
}

/***** flatten *****/

func newFlattenNode(previous *Node, params Params) *Node {
	return NewNode(OpFlatten, previous, params, func(node *Node) enumerable.Enumerator[any] {
		e := &flattenEnumerator{
			root:     node.previousEnumerator(),
			movers:   arraystack.New(),
			position: -1,
		}
		e.movers.Push(e.root)

		return e
	}, false)
}

// flattenEnumerator unwraps nested sequences depth-first.
// It keeps one mover per nesting level on a stack, so memory use is bounded by the nesting depth.
type flattenEnumerator struct {
	root     enumerable.Enumerator[any]
	movers   *arraystack.Stack
	position int
	current  any
	valid    bool
	err      error
}

func (e *flattenEnumerator) Current() any {
	return e.current
}

func (e *flattenEnumerator) CurrentIndex() any {
	if !e.valid {
		return nil
	}

	return e.position
}

func (e *flattenEnumerator) MoveNext() bool {
	e.current = nil
	e.valid = false

	if e.err != nil {
		return false
	}

	for !e.movers.Empty() {
		top, _ := e.movers.Peek()
		mover := top.(enumerable.Enumerator[any])

		if !mover.MoveNext() {
			if err := mover.Err(); err != nil {
				e.err = err
				return false
			}

			e.movers.Pop()

			continue
		}

		item := mover.Current()

		switch enumerable.Classify(item) {
		case enumerable.SourceSequence, enumerable.SourceEnumerable:
			nested, err := enumerable.From(item)
			if err != nil {
				e.err = err
				return false
			}

			e.movers.Push(nested.GetEnumerator())

		default:
			e.position++
			e.current = item
			e.valid = true

			return true
		}
	}

	return false
}

func (e *flattenEnumerator) Reset() {
	e.movers.Clear()
	e.root.Reset()
	e.movers.Push(e.root)
	e.position = -1
	e.current = nil
	e.valid = false
	e.err = nil
}

func (e *flattenEnumerator) Err() error {
	return e.err
}

/***** zip *****/

func newZipNode(previous *Node, params Params) *Node {
	return NewNode(OpZip, previous, params, func(node *Node) enumerable.Enumerator[any] {
		return &zipEnumerator{
			pullEnumerator: pullEnumerator{previous: node.previousEnumerator()},
			sequences:      node.params.Sequences,
		}
	}, previous.preservesIndices)
}

// zipEnumerator advances its predecessor and every extra sequence in lock-step.
// An exhausted extra sequence contributes nil; only the predecessor's exhaustion ends the zip.
type zipEnumerator struct {
	pullEnumerator
	sequences []any
	others    []enumerable.Enumerator[any]
	exhausted []bool
}

func (e *zipEnumerator) open() bool {
	if e.others != nil || e.err != nil {
		return e.err == nil
	}

	others := make([]enumerable.Enumerator[any], len(e.sequences))
	for i, sequence := range e.sequences {
		source, err := enumerable.From(sequence)
		if err != nil {
			e.err = err
			return false
		}

		others[i] = source.GetEnumerator()
	}

	e.others = others
	e.exhausted = make([]bool, len(others))

	return true
}

func (e *zipEnumerator) MoveNext() bool {
	if !e.open() || !e.pull() {
		e.clear()
		return false
	}

	tuple := make([]any, 0, len(e.others)+1)
	tuple = append(tuple, e.current)

	for i, other := range e.others {
		if !e.exhausted[i] && other.MoveNext() {
			tuple = append(tuple, other.Current())
			continue
		}

		if err := other.Err(); err != nil {
			e.err = err
			e.clear()

			return false
		}

		e.exhausted[i] = true
		tuple = append(tuple, nil)
	}

	e.current = tuple

	return true
}

func (e *zipEnumerator) Reset() {
	e.rewind()
	e.others = nil
	e.exhausted = nil
}
