package observable

import (
	"context"
	"fmt"
	"slices"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/indexer"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/session"
)

// List is an ordered collection of T.
// Every mutation keeps the property index correct and is reported through the event raiser.
// It is not safe for concurrent use.
type List[T any] struct {
	items   []T
	indexer *indexer.Indexer
	events  *session.EventRaiser
}

// New creates a List holding a copy of items.
func New[T any](items []T, options ...Option) (*List[T], error) {
	var c config
	for _, option := range options {
		if err := option(&c); err != nil {
			return nil, err
		}
	}

	l := &List[T]{items: slices.Clone(items)}

	ix, err := indexer.New(sequence[T]{list: l}, c.indexerOptions...)
	if err != nil {
		return nil, err
	}

	events, err := session.New(func() []any { return toAny(l.items) }, c.sessionOptions...)
	if err != nil {
		return nil, err
	}

	l.indexer = ix
	l.events = events

	return l, nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the element at position.
func (l *List[T]) At(position int) (T, error) {
	if err := enumerable.CheckPosition(position, len(l.items)); err != nil {
		var zero T
		return zero, err
	}

	return l.items[position], nil
}

// Items returns a copy of the elements.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// GetEnumerator returns a cursor resolving positions lazily, so it observes later mutations.
func (l *List[T]) GetEnumerator() enumerable.Enumerator[T] {
	return enumerable.FromResolver(l.Len, l.At).GetEnumerator()
}

// AnyEnumerator implements enumerable.AnyEnumerable.
func (l *List[T]) AnyEnumerator() enumerable.Enumerator[any] {
	return enumerable.Erase(l.GetEnumerator())
}

// Each calls fn for every element with its position.
func (l *List[T]) Each(fn func(item T, index any)) error {
	return enumerable.EachOf(l.GetEnumerator(), fn)
}

// GetIndexByValue returns the first position whose element has value at property, or -1.
func (l *List[T]) GetIndexByValue(property string, value any) (int, error) {
	return l.indexer.GetIndexByValue(property, value)
}

// GetIndicesByValue returns all positions whose element has value at property.
func (l *List[T]) GetIndicesByValue(property string, value any) ([]int, error) {
	return l.indexer.GetIndicesByValue(property, value)
}

// Subscribe registers a per-record change handler.
func (l *List[T]) Subscribe(handler session.Handler) {
	l.events.Subscribe(handler)
}

// SubscribeBatch registers a per-batch change handler.
func (l *List[T]) SubscribeBatch(handler session.BatchHandler) {
	l.events.SubscribeBatch(handler)
}

// IsEventRaising reports whether mutations are notified right away.
func (l *List[T]) IsEventRaising() bool {
	return l.events.IsEventRaising()
}

// SetEventRaising suppresses change notifications, or resumes them (see session.EventRaiser.SetEventRaising).
func (l *List[T]) SetEventRaising(ctx context.Context, enabled bool, analyze bool) error {
	return l.events.SetEventRaising(ctx, enabled, analyze)
}

// Add inserts items at position.
func (l *List[T]) Add(ctx context.Context, position int, items ...T) error {
	if err := l.events.CheckMutable(); err != nil {
		return err
	}

	if position < 0 || position > len(l.items) {
		return fmt.Errorf("%w: insert at %d, length %d", enumerable.ErrIndexOutOfBounds, position, len(l.items))
	}

	if len(items) == 0 {
		return nil
	}

	tail := len(l.items) - position
	l.items = slices.Insert(l.items, position, items...)

	if err := l.indexer.ShiftIndex(position, tail, len(items)); err != nil {
		return err
	}

	if err := l.indexer.UpdateIndex(position, len(items)); err != nil {
		return err
	}

	return l.events.Notify(ctx, enumerable.ActionAdd, toAny(items), position, nil, -1)
}

// Append adds items at the end.
func (l *List[T]) Append(ctx context.Context, items ...T) error {
	return l.Add(ctx, len(l.items), items...)
}

// Remove deletes count elements starting at position and returns them.
func (l *List[T]) Remove(ctx context.Context, position, count int) ([]T, error) {
	if err := l.events.CheckMutable(); err != nil {
		return nil, err
	}

	if err := l.checkWindow(position, count); err != nil {
		return nil, err
	}

	removed := slices.Clone(l.items[position : position+count])
	l.items = slices.Delete(l.items, position, position+count)

	if err := l.indexer.RemoveFromIndex(position, count); err != nil {
		return nil, err
	}

	if err := l.events.Notify(ctx, enumerable.ActionRemove, nil, -1, toAny(removed), position); err != nil {
		return nil, err
	}

	return removed, nil
}

// Replace overwrites the elements starting at position with items.
func (l *List[T]) Replace(ctx context.Context, position int, items ...T) error {
	if err := l.events.CheckMutable(); err != nil {
		return err
	}

	if err := l.checkWindow(position, len(items)); err != nil {
		return err
	}

	old := slices.Clone(l.items[position : position+len(items)])
	copy(l.items[position:], items)

	if err := l.indexer.UpdateIndex(position, len(items)); err != nil {
		return err
	}

	return l.events.Notify(ctx, enumerable.ActionReplace, toAny(items), position, toAny(old), position)
}

// Move relocates count elements starting at from. to is their position after they were taken out.
func (l *List[T]) Move(ctx context.Context, from, count, to int) error {
	if err := l.events.CheckMutable(); err != nil {
		return err
	}

	if err := l.checkWindow(from, count); err != nil {
		return err
	}

	rest := len(l.items) - count
	if to < 0 || to > rest {
		return fmt.Errorf("%w: move to %d, length %d", enumerable.ErrIndexOutOfBounds, to, rest)
	}

	moved := slices.Clone(l.items[from : from+count])
	l.items = slices.Insert(slices.Delete(l.items, from, from+count), to, moved...)

	if err := l.indexer.RemoveFromIndex(from, count); err != nil {
		return err
	}

	if err := l.indexer.ShiftIndex(to, rest-to, count); err != nil {
		return err
	}

	if err := l.indexer.UpdateIndex(to, count); err != nil {
		return err
	}

	return l.events.Notify(ctx, enumerable.ActionMove, toAny(moved), to, toAny(moved), from)
}

// Assign replaces the whole contents with items.
func (l *List[T]) Assign(ctx context.Context, items []T) error {
	if err := l.events.CheckMutable(); err != nil {
		return err
	}

	l.items = slices.Clone(items)
	l.indexer.ResetIndex()

	return l.events.Notify(ctx, enumerable.ActionReset, toAny(l.items), 0, nil, -1)
}

// Clear removes every element.
func (l *List[T]) Clear(ctx context.Context) error {
	return l.Assign(ctx, nil)
}

func (l *List[T]) checkWindow(position, count int) error {
	if position < 0 || count < 0 || position+count > len(l.items) {
		return fmt.Errorf("%w: window [%d, %d), length %d",
			enumerable.ErrIndexOutOfBounds, position, position+count, len(l.items))
	}

	return nil
}

// sequence exposes a List to its indexer.
type sequence[T any] struct {
	list *List[T]
}

func (s sequence[T]) Len() int {
	return s.list.Len()
}

func (s sequence[T]) At(position int) (any, error) {
	item, err := s.list.At(position)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func toAny[T any](items []T) []any {
	result := make([]any, len(items))
	for i, item := range items {
		result[i] = item
	}

	return result
}
