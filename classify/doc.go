// Package classify recognises known puzzle shapes in a puzzle/solution pair.
//
// Classification is structural: the puzzle is uncurried, its template is hashed and
// looked up in a registry.Registry, and wrapping shapes (the singleton top layer and
// the NFT state layer) are followed inward until a terminal shape is reached. Nothing
// is executed and nothing is retried. A result is either exactly one KnownSpend
// variant or a *Error naming the stage that failed.
package classify
