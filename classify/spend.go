package classify

import (
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/puzzles"
	"xdao.co/spendclass/registry"
)

// SpendKind names a KnownSpend variant.
type SpendKind string

const (
	SpendStandard SpendKind = "standard"
	SpendCAT      SpendKind = "cat"
	SpendNFT      SpendKind = "nft"
	SpendDID      SpendKind = "did"
)

// KnownSpend is a classified spend. The variants are *StandardSpend, *CATSpend,
// *NFTSpend and *DIDSpend; no other type implements it.
type KnownSpend interface {
	Kind() SpendKind
	// Layers returns the registry entries that matched, outermost first.
	Layers() []registry.Entry
	// Nodes returns the classified puzzle and solution.
	Nodes() (puzzle, solution clvm.NodePtr)
	isKnownSpend()
}

type layered struct {
	layers   []registry.Entry
	puzzle   clvm.NodePtr
	solution clvm.NodePtr
}

func (l *layered) Layers() []registry.Entry { return append([]registry.Entry(nil), l.layers...) }

func (l *layered) Nodes() (clvm.NodePtr, clvm.NodePtr) { return l.puzzle, l.solution }

func (l *layered) isKnownSpend() {}

type (
	CATPuzzle = puzzles.Curried[puzzles.CATArgs[clvm.NodePtr]]

	NFTOwnershipPuzzle = puzzles.Curried[puzzles.NFTOwnershipLayerArgs[clvm.NodePtr]]
	NFTStatePuzzle     = puzzles.Curried[puzzles.NFTStateLayerArgs[NFTOwnershipPuzzle]]
	NFTPuzzle          = puzzles.Curried[puzzles.SingletonArgs[NFTStatePuzzle]]
	NFTSolution        = puzzles.SingletonSolution[puzzles.LayerSolution[puzzles.LayerSolution[clvm.NodePtr]]]

	DIDInnerPuzzle = puzzles.Curried[puzzles.DIDArgs[clvm.NodePtr]]
	DIDPuzzle      = puzzles.Curried[puzzles.SingletonArgs[DIDInnerPuzzle]]
	DIDSolution    = puzzles.SingletonSolution[puzzles.DIDSolution]
)

var (
	decodeCATPuzzle = puzzles.CATPuzzleOf(puzzles.Raw)
	decodeNFTPuzzle = puzzles.SingletonPuzzleOf(
		puzzles.NFTStatePuzzleOf(puzzles.NFTOwnershipPuzzleOf(puzzles.Raw)))
	decodeNFTSolution = puzzles.SingletonSolutionOf(
		puzzles.LayerSolutionOf(puzzles.LayerSolutionOf(puzzles.Raw)))
	decodeDIDPuzzle   = puzzles.SingletonPuzzleOf(puzzles.DIDPuzzleOf(puzzles.Raw))
	decodeDIDSolution = puzzles.SingletonSolutionOf(puzzles.DecodeDIDSolution)
)

// StandardSpend is a standard transaction spend.
type StandardSpend struct {
	layered
	Puzzle   puzzles.StandardPuzzle
	Solution puzzles.StandardSolution
}

func (*StandardSpend) Kind() SpendKind { return SpendStandard }

// CATSpend is a CAT spend. Version tells which admissible CAT template matched.
type CATSpend struct {
	layered
	Version  registry.Version
	Puzzle   CATPuzzle
	Solution puzzles.CATSolution
}

func (*CATSpend) Kind() SpendKind { return SpendCAT }

// NFTSpend is a singleton wrapping an NFT state layer wrapping an ownership layer.
type NFTSpend struct {
	layered
	Puzzle   NFTPuzzle
	Solution NFTSolution
}

func (*NFTSpend) Kind() SpendKind { return SpendNFT }

// StateLayer returns the decoded NFT state layer.
func (s *NFTSpend) StateLayer() NFTStatePuzzle { return s.Puzzle.Args.InnerPuzzle }

// OwnershipLayer returns the decoded NFT ownership layer.
func (s *NFTSpend) OwnershipLayer() NFTOwnershipPuzzle {
	return s.Puzzle.Args.InnerPuzzle.Args.InnerPuzzle
}

// DIDSpend is a singleton wrapping a DID inner puzzle.
type DIDSpend struct {
	layered
	Puzzle   DIDPuzzle
	Solution DIDSolution
}

func (*DIDSpend) Kind() SpendKind { return SpendDID }
