package diff

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// Snapshot is one state of a collection.
// Contents is optional; when set it holds one comparable rendition of every element's state, aligned with Items.
type Snapshot struct {
	Items    []any
	Contents []any
}

// hasContents reports whether Contents is usable for replacement detection.
func (s Snapshot) hasContents() bool {
	return s.Contents != nil && len(s.Contents) == len(s.Items)
}

// ChangeRecord describes one structural change of a collection.
// Positions are relative to the collection state right before the change; an absent side has index -1.
type ChangeRecord struct {
	Action        enumerable.Action
	NewItems      []any
	NewItemsIndex int
	OldItems      []any
	OldItemsIndex int
}

func newAddRecord(items []any, at int) ChangeRecord {
	return ChangeRecord{Action: enumerable.ActionAdd, NewItems: items, NewItemsIndex: at, OldItemsIndex: -1}
}

func newRemoveRecord(items []any, at int) ChangeRecord {
	return ChangeRecord{Action: enumerable.ActionRemove, NewItemsIndex: -1, OldItems: items, OldItemsIndex: at}
}

func newReplaceRecord(oldItems, newItems []any, at int) ChangeRecord {
	return ChangeRecord{
		Action:        enumerable.ActionReplace,
		NewItems:      newItems,
		NewItemsIndex: at,
		OldItems:      oldItems,
		OldItemsIndex: at,
	}
}

func newMoveRecord(items []any, from, to int) ChangeRecord {
	return ChangeRecord{
		Action:        enumerable.ActionMove,
		NewItems:      items,
		NewItemsIndex: to,
		OldItems:      items,
		OldItemsIndex: from,
	}
}

// NewResetRecord describes the wholesale replacement of a collection's contents by items.
func NewResetRecord(items []any) ChangeRecord {
	return ChangeRecord{Action: enumerable.ActionReset, NewItems: items, NewItemsIndex: 0, OldItemsIndex: -1}
}

// Len returns the number of elements the record touches.
func (r ChangeRecord) Len() int {
	return max(len(r.NewItems), len(r.OldItems))
}

// String renders the record for logs and test failures.
func (r ChangeRecord) String() string {
	switch r.Action {
	case enumerable.ActionAdd:
		return fmt.Sprintf("add %v at %d", r.NewItems, r.NewItemsIndex)
	case enumerable.ActionRemove:
		return fmt.Sprintf("remove %v at %d", r.OldItems, r.OldItemsIndex)
	case enumerable.ActionReplace:
		return fmt.Sprintf("replace %v with %v at %d", r.OldItems, r.NewItems, r.NewItemsIndex)
	case enumerable.ActionMove:
		return fmt.Sprintf("move %v from %d to %d", r.OldItems, r.OldItemsIndex, r.NewItemsIndex)
	default:
		return fmt.Sprintf("%s %v", r.Action, r.NewItems)
	}
}

// Apply replays records on a copy of items and returns the result.
// A record pointing outside the collection fails with ErrIndexOutOfBounds.
func Apply(items []any, records []ChangeRecord) ([]any, error) {
	result := slices.Clone(items)

	for _, record := range records {
		var err error
		if result, err = applyRecord(result, record); err != nil {
			return nil, fmt.Errorf("%w: %s", err, record)
		}
	}

	return result, nil
}

func applyRecord(items []any, record ChangeRecord) ([]any, error) {
	switch record.Action {
	case enumerable.ActionAdd:
		if record.NewItemsIndex < 0 || record.NewItemsIndex > len(items) {
			return nil, enumerable.ErrIndexOutOfBounds
		}

		return slices.Insert(items, record.NewItemsIndex, record.NewItems...), nil

	case enumerable.ActionRemove:
		if err := checkWindow(record.OldItemsIndex, len(record.OldItems), len(items)); err != nil {
			return nil, err
		}

		return slices.Delete(items, record.OldItemsIndex, record.OldItemsIndex+len(record.OldItems)), nil

	case enumerable.ActionReplace:
		if err := checkWindow(record.NewItemsIndex, len(record.NewItems), len(items)); err != nil {
			return nil, err
		}

		copy(items[record.NewItemsIndex:], record.NewItems)

		return items, nil

	case enumerable.ActionMove:
		if err := checkWindow(record.OldItemsIndex, len(record.OldItems), len(items)); err != nil {
			return nil, err
		}

		moved := slices.Clone(items[record.OldItemsIndex : record.OldItemsIndex+len(record.OldItems)])
		items = slices.Delete(items, record.OldItemsIndex, record.OldItemsIndex+len(moved))

		if record.NewItemsIndex < 0 || record.NewItemsIndex > len(items) {
			return nil, enumerable.ErrIndexOutOfBounds
		}

		return slices.Insert(items, record.NewItemsIndex, moved...), nil

	default:
		return slices.Clone(record.NewItems), nil
	}
}

func checkWindow(start, count, length int) error {
	if start < 0 || start+count > length {
		return enumerable.ErrIndexOutOfBounds
	}

	return nil
}
