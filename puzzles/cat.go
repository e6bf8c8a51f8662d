package puzzles

import "xdao.co/spendclass/clvm"

// CATArgs are the arguments curried into a CAT outer puzzle.
type CATArgs[I any] struct {
	ModHash         clvm.Bytes32
	TailProgramHash clvm.Bytes32
	InnerPuzzle     I
}

// CATPuzzleOf returns a decoder for a CAT puzzle whose inner puzzle decodes with inner.
func CATPuzzleOf[I any](inner Decoder[I]) Decoder[Curried[CATArgs[I]]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (Curried[CATArgs[I]], error) {
		return decodeCurried(a, n, 3, func(f *fields) CATArgs[I] {
			return CATArgs[I]{
				ModHash:         get(f, 0, "mod_hash", clvm.DecodeBytes32),
				TailProgramHash: get(f, 1, "tail_program_hash", clvm.DecodeBytes32),
				InnerPuzzle:     get(f, 2, "inner_puzzle", inner),
			}
		})
	}
}

// CurryCAT binds args into mod.
func CurryCAT(a *clvm.Allocator, mod clvm.NodePtr, args CATArgs[clvm.NodePtr]) clvm.NodePtr {
	return clvm.Curry(a, mod, a.NewAtom(args.ModHash[:]), a.NewAtom(args.TailProgramHash[:]), args.InnerPuzzle)
}

// CATSolution is the seven-item CAT solution list.
type CATSolution struct {
	InnerSolution clvm.NodePtr
	LineageProof  *LineageProof
	PrevCoinID    clvm.Bytes32
	ThisCoin      Coin
	NextCoinProof CoinProof
	PrevSubtotal  int64
	ExtraDelta    int64
}

func DecodeCATSolution(a *clvm.Allocator, n clvm.NodePtr) (CATSolution, error) {
	f, err := listFields(a, n, 7)
	if err != nil {
		return CATSolution{}, err
	}
	s := CATSolution{
		InnerSolution: get(f, 0, "inner_puzzle_solution", Raw),
		LineageProof:  get(f, 1, "lineage_proof", optionOf(DecodeLineageProof)),
		PrevCoinID:    get(f, 2, "prev_coin_id", clvm.DecodeBytes32),
		ThisCoin:      get(f, 3, "this_coin_info", DecodeCoin),
		NextCoinProof: get(f, 4, "next_coin_proof", DecodeCoinProof),
		PrevSubtotal:  get(f, 5, "prev_subtotal", clvm.DecodeInt64),
		ExtraDelta:    get(f, 6, "extra_delta", clvm.DecodeInt64),
	}
	return s, f.err
}

func (s CATSolution) Encode(a *clvm.Allocator) clvm.NodePtr {
	lp := a.Nil()
	if s.LineageProof != nil {
		lp = s.LineageProof.Encode(a)
	}
	return a.NewList(
		s.InnerSolution,
		lp,
		a.NewAtom(s.PrevCoinID[:]),
		s.ThisCoin.Encode(a),
		s.NextCoinProof.Encode(a),
		a.NewInt(s.PrevSubtotal),
		a.NewInt(s.ExtraDelta),
	)
}
