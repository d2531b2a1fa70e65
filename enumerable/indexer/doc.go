// Package indexer maintains secondary indices from property values to element positions.
//
// An Indexer sits on top of a positional Sequence and builds the index for a property on the first
// lookup. Collections report their structural mutations through UpdateIndex, ShiftIndex and
// RemoveFromIndex so the built indices stay correct without a full rebuild.
//
// An IndexedEnumerable offers the same lookups for any enumerable, building its index by traversal
// and patching it from the collection's change notifications.
package indexer
