// Package catalog loads the title catalog and exposes it as an immutable
// Snapshot.
//
// Rows come from a CSV export with one title per line. Missing text cells
// are replaced with defaults while loading (cast becomes NoData, the other
// text fields become empty) so nothing downstream has to handle absent
// values. Every item carries its 0-based row position as a stable ID.
//
// A Snapshot also answers the selection questions the browsing flows ask:
// which titles feature an actor, and which item a chosen title refers to.
package catalog
