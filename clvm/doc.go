// Package clvm implements the in-memory tree, binary codec, tree hash and curry
// decomposition for serialized puzzle programs.
//
// A program is a binary tree whose leaves are byte strings (atoms). Trees live in an
// Allocator arena and are addressed by NodePtr handles. Nothing in this package
// evaluates programs; it only reads, writes and hashes their structure.
//
// Identity:
//   - TreeHash depends only on tree content, never on the arena or on how the tree
//     was produced.
//   - Serialize emits the canonical encoding; Parse in Strict mode accepts only
//     canonical encodings, so bytes and tree hash identify each other.
package clvm
