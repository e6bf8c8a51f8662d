package classify

import (
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/keys"
	"xdao.co/spendclass/puzzles"
	"xdao.co/spendclass/registry"
)

// Templates are stand-in atoms; only their tree hashes matter to classification.
var (
	tplStandard  = []byte("standard template")
	tplCATV1     = []byte("cat v1 template")
	tplCATV2     = []byte("cat v2 template")
	tplSingleton = []byte("singleton template")
	tplDID       = []byte("did inner template")
	tplState     = []byte("nft state template")
	tplOwnership = []byte("nft ownership template")
	tplTransfer  = []byte("royalty transfer template")
)

func testRegistry() *registry.Registry {
	r := registry.New()
	for _, e := range []registry.Entry{
		{Hash: clvm.TreeHashAtom(tplStandard), Shape: registry.ShapeStandard},
		{Hash: clvm.TreeHashAtom(tplCATV1), Shape: registry.ShapeCAT, Version: registry.CATV1},
		{Hash: clvm.TreeHashAtom(tplCATV2), Shape: registry.ShapeCAT, Version: registry.CATV2},
		{Hash: clvm.TreeHashAtom(tplSingleton), Shape: registry.ShapeSingleton},
		{Hash: clvm.TreeHashAtom(tplDID), Shape: registry.ShapeDIDInner},
		{Hash: clvm.TreeHashAtom(tplState), Shape: registry.ShapeNFTStateLayer},
		{Hash: clvm.TreeHashAtom(tplOwnership), Shape: registry.ShapeNFTOwnershipLayer},
	} {
		r.MustRegister(e)
	}
	return r
}

func b32(c byte) clvm.Bytes32 {
	var out clvm.Bytes32
	for i := range out {
		out[i] = c
	}
	return out
}

func p2Puzzle(a *clvm.Allocator) clvm.NodePtr {
	return clvm.Curry(a, a.NewAtom(tplStandard), keys.ScalarPublicKey(5).Encode(a))
}

func conditions(a *clvm.Allocator) clvm.NodePtr {
	dest := b32(0x33)
	return a.NewList(a.NewList(a.NewUint(51), a.NewAtom(dest[:]), a.NewUint(1)))
}

func buildStandard(a *clvm.Allocator) (puzzle, solution clvm.NodePtr, args puzzles.StandardArgs) {
	args = puzzles.StandardArgs{SyntheticKey: keys.ScalarPublicKey(7)}
	puzzle = puzzles.CurryStandard(a, a.NewAtom(tplStandard), args)
	solution = puzzles.StandardSolution{
		DelegatedPuzzle: a.NewPair(a.One(), conditions(a)),
		Solution:        a.Nil(),
	}.Encode(a)
	return puzzle, solution, args
}

func buildCAT(a *clvm.Allocator, tpl []byte) (puzzle, solution clvm.NodePtr) {
	puzzle = puzzles.CurryCAT(a, a.NewAtom(tpl), puzzles.CATArgs[clvm.NodePtr]{
		ModHash:         clvm.TreeHashAtom(tpl),
		TailProgramHash: b32(0x77),
		InnerPuzzle:     p2Puzzle(a),
	})
	solution = puzzles.CATSolution{
		InnerSolution: a.NewList(a.Nil(), a.NewPair(a.One(), conditions(a)), a.Nil()),
		PrevCoinID:    b32(0x01),
		ThisCoin:      puzzles.Coin{ParentCoinInfo: b32(0x02), PuzzleHash: b32(0x03), Amount: 1000},
		NextCoinProof: puzzles.CoinProof{ParentCoinInfo: b32(0x04), InnerPuzzleHash: b32(0x05), Amount: 1000},
		PrevSubtotal:  0,
		ExtraDelta:    0,
	}.Encode(a)
	return puzzle, solution
}

func singletonStruct() puzzles.SingletonStruct {
	return puzzles.SingletonStruct{
		ModHash:            clvm.TreeHashAtom(tplSingleton),
		LauncherID:         b32(0x4c),
		LauncherPuzzleHash: puzzles.SingletonLauncherPuzzleHash,
	}
}

func transferProgram(a *clvm.Allocator) puzzles.TransferProgram {
	return puzzles.TransferProgram{
		Program: a.NewAtom(tplTransfer),
		Args: puzzles.RoyaltyTransferArgs{
			SingletonStruct:      singletonStruct(),
			RoyaltyPuzzleHash:    b32(0x52),
			TradePricePercentage: 500,
		},
	}
}

func nftMetadata() puzzles.NFTMetadata {
	h := b32(0x44)
	return puzzles.NFTMetadata{EditionNumber: 1, EditionTotal: 1, DataURIs: []string{"https://example.invalid/1.png"}, DataHash: &h}
}

// buildNFT builds singleton(state(ownership(p2))). ownershipTpl selects the template
// curried in the ownership position.
func buildNFT(a *clvm.Allocator, ownershipTpl []byte) (puzzle, solution clvm.NodePtr) {
	return buildNFTWithTransfer(a, ownershipTpl, transferProgram(a))
}

func buildNFTWithTransfer(a *clvm.Allocator, ownershipTpl []byte, transfer puzzles.TransferProgram) (puzzle, solution clvm.NodePtr) {
	owner := b32(0x0f)
	ownership := puzzles.CurryNFTOwnershipLayer(a, a.NewAtom(ownershipTpl), puzzles.NFTOwnershipLayerArgs[clvm.NodePtr]{
		ModHash:         clvm.TreeHashAtom(tplOwnership),
		CurrentOwner:    &owner,
		TransferProgram: transfer,
		InnerPuzzle:     p2Puzzle(a),
	})
	state := puzzles.CurryNFTStateLayer(a, a.NewAtom(tplState), puzzles.NFTStateLayerArgs[clvm.NodePtr]{
		ModHash:                   clvm.TreeHashAtom(tplState),
		Metadata:                  nftMetadata(),
		MetadataUpdaterPuzzleHash: puzzles.NFTMetadataUpdaterPuzzleHash,
		InnerPuzzle:               ownership,
	})
	puzzle = puzzles.CurrySingleton(a, a.NewAtom(tplSingleton), puzzles.SingletonArgs[clvm.NodePtr]{
		SingletonStruct: singletonStruct(),
		InnerPuzzle:     state,
	})
	inner := a.NewList(a.Nil(), a.NewPair(a.One(), conditions(a)), a.Nil())
	solution = puzzles.EncodeSingletonSolution(a, puzzles.SingletonSolution[clvm.NodePtr]{
		LineageProof: puzzles.Proof{Lineage: &puzzles.LineageProof{
			ParentParentCoinID:    b32(0x10),
			ParentInnerPuzzleHash: b32(0x11),
			ParentAmount:          1,
		}},
		Amount:        1,
		InnerSolution: puzzles.EncodeLayerSolution(a, puzzles.EncodeLayerSolution(a, inner)),
	})
	return puzzle, solution
}

// buildSingleton wraps an arbitrary inner puzzle in the singleton top layer.
func buildSingleton(a *clvm.Allocator, inner clvm.NodePtr) clvm.NodePtr {
	return puzzles.CurrySingleton(a, a.NewAtom(tplSingleton), puzzles.SingletonArgs[clvm.NodePtr]{
		SingletonStruct: singletonStruct(),
		InnerPuzzle:     inner,
	})
}

func buildDID(a *clvm.Allocator) (puzzle, solution clvm.NodePtr) {
	did := puzzles.CurryDID(a, a.NewAtom(tplDID), puzzles.DIDArgs[clvm.NodePtr]{
		InnerPuzzle:              p2Puzzle(a),
		NumVerificationsRequired: 0,
		SingletonStruct:          singletonStruct(),
		Metadata:                 a.NewList(a.NewPair(a.NewAtom([]byte("name")), a.NewAtom([]byte("alice")))),
	})
	puzzle = buildSingleton(a, did)
	solution = puzzles.EncodeSingletonSolution(a, puzzles.SingletonSolution[clvm.NodePtr]{
		LineageProof:  puzzles.Proof{Eve: &puzzles.EveProof{ParentCoinInfo: b32(0x12), Amount: 1}},
		Amount:        1,
		InnerSolution: puzzles.DIDSolution{Mode: puzzles.DIDInnerSpendMode, InnerSolution: a.NewList(a.Nil())}.Encode(a),
	})
	return puzzle, solution
}
