// Package observable provides List, an ordered collection that reports its own structural changes.
//
// A List owns an indexer.Indexer, patched incrementally on every mutation, and a session.EventRaiser,
// which notifies subscribers or collects suppressed mutations for a later diff replay.
package observable
