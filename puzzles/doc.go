// Package puzzles defines the typed parameter structures of the known puzzle
// families and their CLVM decoders and encoders.
//
// Curried puzzles decode into Curried[A], where A holds the bound arguments.
// Wrapping puzzles are generic in their inner puzzle, and their decoders compose:
//
//	dec := SingletonPuzzleOf(NFTStatePuzzleOf(NFTOwnershipPuzzleOf(Raw)))
//
// Decoders check structure only. Deciding which template a program is built from
// is the classifier's job, so nothing here compares template hashes.
package puzzles
