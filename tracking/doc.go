// Package tracking reconciles live vehicle positions into marker operations.
//
// This package handles:
// - Validating vehicle records from a position feed (skip-and-log on bad records)
// - Filtering synthetic placeholder ids such as "init"
// - Diffing a snapshot against the committed marker collection
// - Committing the collection only after the presentation layer applied the operations
//
// Diff is pure. Reconciler owns the committed collection between ticks and
// serializes ticks, so a tick's operations are always computed against the
// collection left by the previous successful tick.
package tracking
