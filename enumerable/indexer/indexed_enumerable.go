package indexer

import (
	"slices"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// IndexedEnumerable adds value lookups to any enumerable.
// Positions are traversal ordinals. The index of a property is built by one full traversal and then
// patched from the collection's own change notifications (see OnCollectionChange).
type IndexedEnumerable struct {
	source  enumerable.Enumerable[any]
	config  config
	indices map[string]buckets
}

// NewIndexedEnumerable wraps source.
func NewIndexedEnumerable(source enumerable.Enumerable[any], options ...Option) (*IndexedEnumerable, error) {
	if source == nil {
		return nil, enumerable.ErrNilSource
	}

	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	return &IndexedEnumerable{
		source:  source,
		config:  c,
		indices: make(map[string]buckets),
	}, nil
}

// GetEnumerator delegates to the wrapped enumerable.
func (ie *IndexedEnumerable) GetEnumerator() enumerable.Enumerator[any] {
	return ie.source.GetEnumerator()
}

// Each delegates to the wrapped enumerable.
func (ie *IndexedEnumerable) Each(fn func(item any, index any)) error {
	return ie.source.Each(fn)
}

// GetIndexByValue returns the first position whose element has value at property, or -1 if there is none.
func (ie *IndexedEnumerable) GetIndexByValue(property string, value any) (int, error) {
	index, err := ie.index(property)
	if err != nil {
		return -1, err
	}

	positions := index.lookup(value)
	if len(positions) == 0 {
		return -1, nil
	}

	return positions[0], nil
}

// GetIndicesByValue returns all positions whose element has value at property, in ascending order.
func (ie *IndexedEnumerable) GetIndicesByValue(property string, value any) ([]int, error) {
	index, err := ie.index(property)
	if err != nil {
		return nil, err
	}

	return slices.Clone(index.lookup(value)), nil
}

// OnCollectionChange patches the built indices after a structural mutation of the wrapped collection.
// Additions, removals and replacements are applied incrementally; any other action drops the indices.
func (ie *IndexedEnumerable) OnCollectionChange(
	action enumerable.Action,
	newItems []any,
	newItemsIndex int,
	oldItems []any,
	oldItemsIndex int,
) {
	switch action {
	case enumerable.ActionAdd:
		for property, index := range ie.indices {
			index.shift(newItemsIndex, maxPosition(index)+1-newItemsIndex, len(newItems))
			ie.record(index, property, newItems, newItemsIndex)
		}

	case enumerable.ActionRemove:
		for _, index := range ie.indices {
			index.remove(oldItemsIndex, len(oldItems))
		}

	case enumerable.ActionReplace:
		for property, index := range ie.indices {
			index.drop(oldItemsIndex, len(oldItems))
			ie.record(index, property, newItems, newItemsIndex)
		}

	default:
		ie.indices = make(map[string]buckets)
		ie.config.logDebug(logMsgIndexReset)

		return
	}

	ie.config.logDebug(logMsgIndexPatch+action.String(), logAttrStart, max(newItemsIndex, oldItemsIndex),
		logAttrCount, max(len(newItems), len(oldItems)))
}

func (ie *IndexedEnumerable) record(index buckets, property string, items []any, start int) {
	for i, item := range items {
		index.add(ie.config.getter(item, property), start+i)
	}
}

func (ie *IndexedEnumerable) index(property string) (buckets, error) {
	if index, ok := ie.indices[property]; ok {
		return index, nil
	}

	index := make(buckets)
	position := 0

	err := ie.source.Each(func(item any, _ any) {
		index.add(ie.config.getter(item, property), position)
		position++
	})
	if err != nil {
		return nil, err
	}

	ie.indices[property] = index
	ie.config.logDebug(logMsgIndexBuilt, logAttrProperty, property, logAttrBuckets, len(index))

	return index, nil
}

// maxPosition returns the greatest recorded position, -1 for an empty index.
func maxPosition(index buckets) int {
	greatest := -1

	for _, positions := range index {
		if last := positions[len(positions)-1]; last > greatest {
			greatest = last
		}
	}

	return greatest
}
