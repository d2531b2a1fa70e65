package diff

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// Engine turns pairs of snapshots into change records.
// It holds configuration only, so one Engine can analyze any number of snapshot pairs.
type Engine struct {
	minIterationLimit int
	logger            enumerable.Logger
	contextualLogger  enumerable.ContextualLogger
	metricsCollector  enumerable.MetricsCollector
	tracingCollector  enumerable.TracingCollector
}

// NewEngine creates an Engine with optional configuration.
func NewEngine(options ...Option) (*Engine, error) {
	e := &Engine{minIterationLimit: DefaultMinIterationLimit}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Compute analyzes before and after with a default Engine.
func Compute(before, after Snapshot) ([]ChangeRecord, error) {
	e := Engine{minIterationLimit: DefaultMinIterationLimit}

	return e.Analyze(context.Background(), before, after)
}

// Analyze returns the records that turn before into after, in replay order.
// It fails with ErrEndlessCycleDetected if the safety counter is exhausted.
func (e *Engine) Analyze(ctx context.Context, before, after Snapshot) ([]ChangeRecord, error) {
	tracing, ctx := e.startAnalyzeTracing(ctx, before, after)
	metrics := e.startAnalyzeMetrics(ctx)
	start := time.Now()

	a := newAnalysis(before, after, e.iterationLimit(before, after))
	records, err := a.run()
	duration := time.Since(start)

	if err != nil {
		errorType := errorTypeAnalysis
		if errors.Is(err, enumerable.ErrEndlessCycleDetected) {
			errorType = errorTypeEndlessCycle
		}

		e.logError(ctx, logMsgAnalysisFailed, err, logAttrIterations, a.iterations)
		metrics.recordError(errorType, duration)
		tracing.finishError(errorType, duration)

		return nil, err
	}

	for _, record := range records {
		e.logRecord(ctx, record)
	}

	e.logOperation(ctx, logMsgAnalysisCompleted,
		logAttrRecordCount, len(records),
		logAttrIterations, a.iterations,
		logAttrDurationMS, toMilliseconds(duration))
	metrics.recordSuccess(len(records), a.iterations, duration)
	tracing.finishSuccess(len(records), a.iterations, duration)

	return records, nil
}

func (e *Engine) iterationLimit(before, after Snapshot) int {
	return max(e.minIterationLimit, groupCount*len(before.Items)*len(after.Items))
}

// groupCount is the number of change groups an analysis runs.
const groupCount = 4

// workingCopy is the collection state the records found so far have produced.
// targets holds, for every element, its position in the target snapshot.
type workingCopy struct {
	items    []any
	contents []any
	targets  []int
}

func (w *workingCopy) insert(at int, items, contents []any, targets []int) {
	w.items = slices.Insert(w.items, at, items...)
	w.targets = slices.Insert(w.targets, at, targets...)

	if w.contents != nil {
		w.contents = slices.Insert(w.contents, at, contents...)
	}
}

// cut removes [from, to) and returns what was removed.
func (w *workingCopy) cut(from, to int) (items, contents []any, targets []int) {
	items = slices.Clone(w.items[from:to])
	targets = slices.Clone(w.targets[from:to])
	w.items = slices.Delete(w.items, from, to)
	w.targets = slices.Delete(w.targets, from, to)

	if w.contents != nil {
		contents = slices.Clone(w.contents[from:to])
		w.contents = slices.Delete(w.contents, from, to)
	}

	return items, contents, targets
}

// groupChange is one maximal run found by a group scan.
// The run covers [start, endAt); offset is the shift its application causes for later positions.
type groupChange struct {
	start  int
	endAt  int
	offset int
}

type analysis struct {
	after      Snapshot
	work       workingCopy
	matched    *bitset.BitSet
	records    []ChangeRecord
	iterations int
	limit      int
}

func newAnalysis(before, after Snapshot, limit int) *analysis {
	a := &analysis{
		after:   after,
		matched: bitset.New(uint(len(after.Items))),
		limit:   limit,
		work: workingCopy{
			items:   slices.Clone(before.Items),
			targets: make([]int, len(before.Items)),
		},
	}

	if before.hasContents() && after.hasContents() {
		a.work.contents = slices.Clone(before.Contents)
	}

	return a
}

func (a *analysis) run() ([]ChangeRecord, error) {
	a.match()

	for _, group := range []func() error{a.removed, a.added, a.replaced, a.moved} {
		if err := group(); err != nil {
			return nil, err
		}
	}

	return a.records, nil
}

// tick counts one step of the state machine.
func (a *analysis) tick() error {
	a.iterations++
	if a.iterations > a.limit {
		return fmt.Errorf("%w: more than %d iterations", enumerable.ErrEndlessCycleDetected, a.limit)
	}

	return nil
}

// match pairs the Nth occurrence of every element in the working copy with its Nth unmatched occurrence in after.
// Unpaired elements get the target -1.
func (a *analysis) match() {
	queues := make(map[any][]int)
	var references []int

	for position, item := range a.after.Items {
		if enumerable.IsHashable(item) {
			queues[item] = append(queues[item], position)
		} else {
			references = append(references, position)
		}
	}

	for i, item := range a.work.items {
		a.work.targets[i] = -1

		if enumerable.IsHashable(item) {
			if queue := queues[item]; len(queue) > 0 {
				a.work.targets[i] = queue[0]
				a.matched.Set(uint(queue[0]))
				queues[item] = queue[1:]
			}

			continue
		}

		for _, position := range references {
			if !a.matched.Test(uint(position)) && enumerable.Same(a.after.Items[position], item) {
				a.work.targets[i] = position
				a.matched.Set(uint(position))

				break
			}
		}
	}
}

/***** removed *****/

func (a *analysis) removed() error {
	startFrom := 0

	for {
		if err := a.tick(); err != nil {
			return err
		}

		change, found := a.nextRemoved(startFrom)
		if !found {
			return nil
		}

		items, _, _ := a.work.cut(change.start, change.endAt)
		a.records = append(a.records, newRemoveRecord(items, change.start))
		startFrom = change.endAt + change.offset
	}
}

func (a *analysis) nextRemoved(startFrom int) (groupChange, bool) {
	start := slices.Index(a.work.targets[startFrom:], -1)
	if start < 0 {
		return groupChange{}, false
	}

	start += startFrom
	endAt := start + 1

	for endAt < len(a.work.targets) && a.work.targets[endAt] == -1 {
		endAt++
	}

	return groupChange{start: start, endAt: endAt, offset: start - endAt}, true
}

/***** added *****/

func (a *analysis) added() error {
	startFrom := 0

	for {
		if err := a.tick(); err != nil {
			return err
		}

		change, found := a.nextAdded(startFrom)
		if !found {
			return nil
		}

		items := slices.Clone(a.after.Items[change.start:change.endAt])
		targets := make([]int, 0, len(items))

		for position := change.start; position < change.endAt; position++ {
			targets = append(targets, position)
			a.matched.Set(uint(position))
		}

		var contents []any
		if a.work.contents != nil {
			contents = slices.Clone(a.after.Contents[change.start:change.endAt])
		}

		a.work.insert(change.start, items, contents, targets)
		a.records = append(a.records, newAddRecord(items, change.start))
		startFrom = change.endAt
	}
}

func (a *analysis) nextAdded(startFrom int) (groupChange, bool) {
	length := uint(len(a.after.Items))

	start, found := a.matched.NextClear(uint(startFrom))
	if !found || start >= length {
		return groupChange{}, false
	}

	endAt := start + 1
	for endAt < length && !a.matched.Test(endAt) {
		endAt++
	}

	return groupChange{start: int(start), endAt: int(endAt), offset: int(endAt - start)}, true
}

/***** replaced *****/

func (a *analysis) replaced() error {
	if a.work.contents == nil {
		return nil
	}

	startFrom := 0

	for {
		if err := a.tick(); err != nil {
			return err
		}

		change, found := a.nextReplaced(startFrom)
		if !found {
			return nil
		}

		oldItems := slices.Clone(a.work.items[change.start:change.endAt])
		newItems := make([]any, 0, len(oldItems))

		for i := change.start; i < change.endAt; i++ {
			target := a.work.targets[i]
			newItems = append(newItems, a.after.Items[target])
			a.work.items[i] = a.after.Items[target]
			a.work.contents[i] = a.after.Contents[target]
		}

		a.records = append(a.records, newReplaceRecord(oldItems, newItems, change.start))
		startFrom = change.endAt
	}
}

func (a *analysis) isReplaced(position int) bool {
	return !reflect.DeepEqual(a.work.contents[position], a.after.Contents[a.work.targets[position]])
}

func (a *analysis) nextReplaced(startFrom int) (groupChange, bool) {
	for start := startFrom; start < len(a.work.items); start++ {
		if !a.isReplaced(start) {
			continue
		}

		endAt := start + 1
		for endAt < len(a.work.items) && a.isReplaced(endAt) {
			endAt++
		}

		return groupChange{start: start, endAt: endAt}, true
	}

	return groupChange{}, false
}

/***** moved *****/

// moved sorts the working copy by target position.
// Elements on a longest increasing run of targets stay; the others are moved in runs of consecutive targets,
// smallest target first, each behind the settled element with the next smaller target.
func (a *analysis) moved() error {
	settled := longestIncreasingRun(a.work.targets)

	for {
		if err := a.tick(); err != nil {
			return err
		}

		change, found := a.nextMoved(settled)
		if !found {
			return nil
		}

		items, contents, targets := a.work.cut(change.start, change.endAt)
		settled = slices.Delete(settled, change.start, change.endAt)

		to := insertionPoint(a.work.targets, settled, targets[0])
		a.work.insert(to, items, contents, targets)
		settled = slices.Insert(settled, to, slices.Repeat([]bool{true}, len(items))...)

		a.records = append(a.records, newMoveRecord(items, change.start, to))
	}
}

func (a *analysis) nextMoved(settled []bool) (groupChange, bool) {
	start := -1

	for i, target := range a.work.targets {
		if !settled[i] && (start < 0 || target < a.work.targets[start]) {
			start = i
		}
	}

	if start < 0 {
		return groupChange{}, false
	}

	endAt := start + 1
	for endAt < len(a.work.targets) && !settled[endAt] && a.work.targets[endAt] == a.work.targets[endAt-1]+1 {
		endAt++
	}

	return groupChange{start: start, endAt: endAt}, true
}

// insertionPoint returns the position right behind the settled element with the greatest target below target.
func insertionPoint(targets []int, settled []bool, target int) int {
	to := 0
	best := -1

	for i, t := range targets {
		if settled[i] && t < target && t > best {
			best = t
			to = i + 1
		}
	}

	return to
}

// longestIncreasingRun marks the elements of one longest strictly increasing subsequence of values.
func longestIncreasingRun(values []int) []bool {
	tails := make([]int, 0, len(values))
	previous := make([]int, len(values))

	for i, value := range values {
		at, _ := slices.BinarySearchFunc(tails, value, func(tail int, v int) int {
			return values[tail] - v
		})

		if at > 0 {
			previous[i] = tails[at-1]
		} else {
			previous[i] = -1
		}

		if at == len(tails) {
			tails = append(tails, i)
		} else {
			tails[at] = i
		}
	}

	marked := make([]bool, len(values))
	if len(tails) == 0 {
		return marked
	}

	for i := tails[len(tails)-1]; i >= 0; i = previous[i] {
		marked[i] = true
	}

	return marked
}
