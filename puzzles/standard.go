package puzzles

import (
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/keys"
)

// StandardArgs are the arguments curried into the standard transaction puzzle.
type StandardArgs struct {
	SyntheticKey keys.PublicKey
}

// StandardPuzzle is the curried standard transaction puzzle.
type StandardPuzzle = Curried[StandardArgs]

// DecodeStandardPuzzle decodes a curried standard puzzle.
func DecodeStandardPuzzle(a *clvm.Allocator, n clvm.NodePtr) (StandardPuzzle, error) {
	return decodeCurried(a, n, 1, func(f *fields) StandardArgs {
		return StandardArgs{SyntheticKey: get(f, 0, "synthetic_key", keys.DecodePublicKey)}
	})
}

// CurryStandard binds args into mod.
func CurryStandard(a *clvm.Allocator, mod clvm.NodePtr, args StandardArgs) clvm.NodePtr {
	return clvm.Curry(a, mod, args.SyntheticKey.Encode(a))
}

// StandardSolution is (original_public_key delegated_puzzle solution).
// OriginalPublicKey is set only for spends that reveal a hidden puzzle.
type StandardSolution struct {
	OriginalPublicKey *keys.PublicKey
	DelegatedPuzzle   clvm.NodePtr
	Solution          clvm.NodePtr
}

func DecodeStandardSolution(a *clvm.Allocator, n clvm.NodePtr) (StandardSolution, error) {
	f, err := listFields(a, n, 3)
	if err != nil {
		return StandardSolution{}, err
	}
	s := StandardSolution{
		OriginalPublicKey: get(f, 0, "original_public_key", optionOf(keys.DecodePublicKey)),
		DelegatedPuzzle:   get(f, 1, "delegated_puzzle", Raw),
		Solution:          get(f, 2, "solution", Raw),
	}
	return s, f.err
}

func (s StandardSolution) Encode(a *clvm.Allocator) clvm.NodePtr {
	pk := a.Nil()
	if s.OriginalPublicKey != nil {
		pk = s.OriginalPublicKey.Encode(a)
	}
	return a.NewList(pk, s.DelegatedPuzzle, s.Solution)
}
