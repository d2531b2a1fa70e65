// Package diff computes the minimal-ish sequence of positional change records that turns one snapshot of
// a collection into another.
//
// The engine runs four groups in a fixed order, removed, added, replaced and moved, and applies every
// record to a working copy before looking for the next one, so each record's positions are valid at the
// moment the record is replayed. Consecutive elements sharing the same change are collapsed into one
// record. Duplicate values are matched occurrence by occurrence: the Nth occurrence in the new snapshot is
// paired with the Nth occurrence in the old one.
//
// Replacement detection needs more than identity: when both snapshots carry Contents (one serialized
// state per element), an element kept by identity whose contents changed yields a replace record.
package diff
