// Package registry maps template tree hashes to the puzzle shapes the classifier
// understands.
//
// A Registry is an explicit table rather than a cascade of hash comparisons. Adding a
// shape version is adding an entry; an existing hash is never re-bound. The nesting
// table (which shapes may appear inside which) is fixed and lives alongside it.
package registry
