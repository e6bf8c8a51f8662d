// Package model defines stable boundary types for API layers.
//
// Classification results are projected into these structs with every arena handle
// replaced by a hex string or a tree hash, so a report is independent of the
// allocator it came from. These structs are the only types intended for direct
// JSON serialization by consumers.
package model
