package indexer

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// Sequence is the positional backing store an Indexer reads from.
type Sequence interface {
	Len() int
	At(position int) (any, error)
}

// Indexer maps property values to the ascending positions of the elements holding them.
// The index of a property is built on its first lookup and patched by the maintenance operations afterward.
// It is not safe for concurrent use.
type Indexer struct {
	source  Sequence
	config  config
	indices map[string]buckets
}

// New creates an Indexer over source.
func New(source Sequence, options ...Option) (*Indexer, error) {
	if source == nil {
		return nil, enumerable.ErrNilSource
	}

	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	return &Indexer{
		source:  source,
		config:  c,
		indices: make(map[string]buckets),
	}, nil
}

// GetIndexByValue returns the first position whose element has value at property, or -1 if there is none.
func (ix *Indexer) GetIndexByValue(property string, value any) (int, error) {
	index, err := ix.index(property)
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
func (ix *Indexer) GetIndicesByValue(property string, value any) ([]int, error) {
	index, err := ix.index(property)
	if err != nil {
		return nil, err
	}

	return slices.Clone(index.lookup(value)), nil
}

// UpdateIndex re-reads the elements at [start, start+count) and records their current values
// in every built index. Stale entries of those positions are dropped first.
func (ix *Indexer) UpdateIndex(start, count int) error {
	if err := checkWindow(start, count); err != nil {
		return err
	}

	if length := ix.source.Len(); start+count > length {
		return fmt.Errorf("%w: window [%d, %d), length %d", enumerable.ErrIndexOutOfBounds, start, start+count, length)
	}

	for property, index := range ix.indices {
		index.drop(start, count)

		if err := ix.scan(index, property, start, start+count); err != nil {
			return err
		}
	}

	ix.config.logDebug(logMsgIndexPatch+"update", logAttrStart, start, logAttrCount, count)

	return nil
}

// ShiftIndex moves every recorded position in [start, start+count) by offset.
func (ix *Indexer) ShiftIndex(start, count, offset int) error {
	if err := checkWindow(start, count); err != nil {
		return err
	}

	for _, index := range ix.indices {
		index.shift(start, count, offset)
	}

	ix.config.logDebug(logMsgIndexPatch+"shift", logAttrStart, start, logAttrCount, count, logAttrOffset, offset)

	return nil
}

// RemoveFromIndex forgets the positions [start, start+count) and moves every later position down by count,
// matching the removal of that window from the sequence.
func (ix *Indexer) RemoveFromIndex(start, count int) error {
	if err := checkWindow(start, count); err != nil {
		return err
	}

	for _, index := range ix.indices {
		index.remove(start, count)
	}

	ix.config.logDebug(logMsgIndexPatch+"remove", logAttrStart, start, logAttrCount, count)

	return nil
}

// ResetIndex drops all built indices. The next lookup of a property rebuilds its index.
func (ix *Indexer) ResetIndex() {
	ix.indices = make(map[string]buckets)
	ix.config.logDebug(logMsgIndexReset)
}

func (ix *Indexer) index(property string) (buckets, error) {
	if index, ok := ix.indices[property]; ok {
		return index, nil
	}

	index := make(buckets)
	if err := ix.scan(index, property, 0, ix.source.Len()); err != nil {
		return nil, err
	}

	ix.indices[property] = index
	ix.config.logDebug(logMsgIndexBuilt, logAttrProperty, property, logAttrBuckets, len(index))

	return index, nil
}

func (ix *Indexer) scan(index buckets, property string, from, to int) error {
	for position := from; position < to; position++ {
		item, err := ix.source.At(position)
		if err != nil {
			return err
		}

		index.add(ix.config.getter(item, property), position)
	}

	return nil
}

func checkWindow(start, count int) error {
	if start < 0 || count < 0 {
		return fmt.Errorf("%w: window start %d, count %d", enumerable.ErrIndexOutOfBounds, start, count)
	}

	return nil
}
