package session

import (
	"context"
	"time"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
)

// ItemsFunc returns the current elements of the owning collection, in order.
type ItemsFunc func() []any

// Handler receives every change record, one call per record.
// An error stops the dispatch and is returned to the caller that caused the change.
type Handler func(ctx context.Context, record diff.ChangeRecord) error

// BatchHandler receives one call per run of same-action records, after all records of the run were delivered.
// changed holds the elements the run added, replaced or moved, or the removed ones for a removal.
type BatchHandler func(ctx context.Context, action enumerable.Action, changed []any) error

// EventRaiser raises the change notifications of one collection, or suppresses them in a Session.
// It is not safe for concurrent use.
type EventRaiser struct {
	items            ItemsFunc
	contents         ContentsFunc
	engine           *diff.Engine
	logger           enumerable.Logger
	contextualLogger enumerable.ContextualLogger
	metricsCollector enumerable.MetricsCollector

	raising       bool
	session       *Session
	resetting     bool
	handlers      []Handler
	batchHandlers []BatchHandler
}

// New creates an EventRaiser for the collection whose elements items returns. Event raising starts enabled.
func New(items ItemsFunc, options ...Option) (*EventRaiser, error) {
	if items == nil {
		return nil, enumerable.ErrNilSource
	}

	r := &EventRaiser{
		items:    items,
		contents: enumerable.Snapshot,
		raising:  true,
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	if r.engine == nil {
		engine, err := diff.NewEngine()
		if err != nil {
			return nil, err
		}

		r.engine = engine
	}

	return r, nil
}

// Subscribe registers a per-record handler.
func (r *EventRaiser) Subscribe(handler Handler) {
	r.handlers = append(r.handlers, handler)
}

// SubscribeBatch registers a per-batch handler.
func (r *EventRaiser) SubscribeBatch(handler BatchHandler) {
	r.batchHandlers = append(r.batchHandlers, handler)
}

// IsEventRaising reports whether mutations are notified right away.
func (r *EventRaiser) IsEventRaising() bool {
	return r.raising
}

// Session returns the open suppression window, nil while events are raised.
func (r *EventRaiser) Session() *Session {
	return r.session
}

// CheckMutable fails with ErrReentrantResetBlocked while a reset is being dispatched.
// Collections call it before they mutate.
func (r *EventRaiser) CheckMutable() error {
	if r.resetting {
		return enumerable.ErrReentrantResetBlocked
	}

	return nil
}

// SetEventRaising switches between raising and suppressing.
//
// Disabling always opens a fresh Session holding the current contents, even if events were already suppressed.
// Enabling closes the open Session. With analyze the Session is diffed and the records are replayed;
// without it a single reset is dispatched.
func (r *EventRaiser) SetEventRaising(ctx context.Context, enabled bool, analyze bool) error {
	if !enabled {
		return r.suppress(ctx)
	}

	if r.raising {
		return nil
	}

	r.raising = true
	s := r.session
	r.session = nil

	if s == nil {
		return nil
	}

	after := r.snapshot()
	s.Finish(after)

	if !analyze {
		r.logOperation(ctx, logMsgSessionClosed, logAttrSessionID, s.ID.String())
		return r.dispatch(ctx, []diff.ChangeRecord{diff.NewResetRecord(after.Items)})
	}

	return r.replay(ctx, s)
}

// Notify reports one mutation of the collection.
// While events are suppressed it does nothing; during a reset dispatch it fails with ErrReentrantResetBlocked.
func (r *EventRaiser) Notify(
	ctx context.Context,
	action enumerable.Action,
	newItems []any,
	newItemsIndex int,
	oldItems []any,
	oldItemsIndex int,
) error {
	if err := r.CheckMutable(); err != nil {
		r.logWarn(ctx, logMsgMutationBlocked, logAttrAction, action.String())
		r.recordBlocked(ctx, action)

		return err
	}

	if !r.raising {
		return nil
	}

	return r.dispatch(ctx, []diff.ChangeRecord{{
		Action:        action,
		NewItems:      newItems,
		NewItemsIndex: newItemsIndex,
		OldItems:      oldItems,
		OldItemsIndex: oldItemsIndex,
	}})
}

func (r *EventRaiser) suppress(ctx context.Context) error {
	s, err := newSession(r.snapshot())
	if err != nil {
		return err
	}

	r.raising = false
	r.session = s
	r.logOperation(ctx, logMsgSessionOpened, logAttrSessionID, s.ID.String(), logAttrCount, len(s.Before.Items))

	return nil
}

func (r *EventRaiser) replay(ctx context.Context, s *Session) error {
	start := time.Now()

	records, err := s.Analyze(ctx, r.engine)
	if err != nil {
		r.logError(ctx, logMsgReplayFailed, err, logAttrSessionID, s.ID.String())
		return err
	}

	if err := r.dispatch(ctx, records); err != nil {
		return err
	}

	duration := time.Since(start)
	r.recordReplay(ctx, duration)
	r.logOperation(ctx, logMsgSessionReplayed,
		logAttrSessionID, s.ID.String(),
		logAttrRecordCount, len(records),
		logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func (r *EventRaiser) snapshot() diff.Snapshot {
	snapshot := diff.Snapshot{Items: r.items()}

	if r.contents != nil {
		snapshot.Contents = make([]any, len(snapshot.Items))
		for i, item := range snapshot.Items {
			snapshot.Contents[i] = r.contents(item)
		}
	}

	return snapshot
}

// dispatch delivers records to the handlers, closing every run of same-action records with a batch call.
func (r *EventRaiser) dispatch(ctx context.Context, records []diff.ChangeRecord) error {
	var changed []any

	for i, record := range records {
		if err := r.deliver(ctx, record); err != nil {
			return err
		}

		changed = append(changed, changedItems(record)...)

		if i+1 < len(records) && records[i+1].Action == record.Action {
			continue
		}

		if err := r.deliverBatch(ctx, record.Action, changed); err != nil {
			return err
		}

		changed = nil
	}

	return nil
}

func (r *EventRaiser) deliver(ctx context.Context, record diff.ChangeRecord) error {
	if record.Action == enumerable.ActionReset {
		r.resetting = true
		defer func() { r.resetting = false }()
	}

	r.logRecord(ctx, record)
	r.recordDispatched(ctx, record.Action)

	for _, handler := range r.handlers {
		if err := handler(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

func (r *EventRaiser) deliverBatch(ctx context.Context, action enumerable.Action, changed []any) error {
	for _, handler := range r.batchHandlers {
		if err := handler(ctx, action, changed); err != nil {
			return err
		}
	}

	return nil
}

func changedItems(record diff.ChangeRecord) []any {
	if record.Action == enumerable.ActionRemove {
		return record.OldItems
	}

	return record.NewItems
}
