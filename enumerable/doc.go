// Package enumerable provides the pull-based enumerator protocol, source adapters and the shared
// value semantics used by the lazy pipeline, the property indexer, the structural diff engine and
// the event-raising session.
//
// The protocol is a cursor with four operations plus an error channel:
//   - Current: the element under the cursor (zero value before the first MoveNext and after exhaustion)
//   - CurrentIndex: the element's position for ordered sources, or its key for keyed sources
//   - MoveNext: advance the cursor, reporting whether an element is available
//   - Reset: rewind to the pre-iteration state
//   - Err: the error which stopped the iteration, nil on normal exhaustion
//
// Sources are one of three kinds (see SourceKind): ordered sequences (slices and arrays), keyed maps,
// and foreign values that already expose the AnyEnumerable capability.
//
// Common usage pattern:
//
//	items := enumerable.FromSlice([]string{"a", "b", "c"})
//
//	enumerator := items.GetEnumerator()
//	for enumerator.MoveNext() {
//		fmt.Println(enumerator.CurrentIndex(), enumerator.Current())
//	}
//	if err := enumerator.Err(); err != nil {
//		// handle error
//	}
//
//	src, err := enumerable.From(map[string]int{"x": 1})
//	if errors.Is(err, enumerable.ErrInvalidSourceType) {
//		// not a sequence, map or enumerable
//	}
package enumerable
