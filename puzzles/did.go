package puzzles

import (
	"fmt"

	"xdao.co/spendclass/clvm"
)

// DIDArgs are the arguments curried into the DID inner puzzle.
type DIDArgs[I any] struct {
	InnerPuzzle              I
	RecoveryListHash         *clvm.Bytes32
	NumVerificationsRequired uint64
	SingletonStruct          SingletonStruct
	Metadata                 clvm.NodePtr
}

// DIDPuzzleOf returns a decoder for a DID inner puzzle whose own inner puzzle decodes
// with inner.
func DIDPuzzleOf[I any](inner Decoder[I]) Decoder[Curried[DIDArgs[I]]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (Curried[DIDArgs[I]], error) {
		return decodeCurried(a, n, 5, func(f *fields) DIDArgs[I] {
			return DIDArgs[I]{
				InnerPuzzle:              get(f, 0, "inner_puzzle", inner),
				RecoveryListHash:         get(f, 1, "recovery_list_hash", optionOf(clvm.DecodeBytes32)),
				NumVerificationsRequired: get(f, 2, "num_verifications_required", clvm.DecodeUint64),
				SingletonStruct:          get(f, 3, "singleton_struct", DecodeSingletonStruct),
				Metadata:                 get(f, 4, "metadata", Raw),
			}
		})
	}
}

// CurryDID binds args into mod.
func CurryDID(a *clvm.Allocator, mod clvm.NodePtr, args DIDArgs[clvm.NodePtr]) clvm.NodePtr {
	return clvm.Curry(a, mod,
		args.InnerPuzzle,
		encodeOptionBytes32(a, args.RecoveryListHash),
		a.NewUint(args.NumVerificationsRequired),
		args.SingletonStruct.Encode(a),
		args.Metadata,
	)
}

// DIDInnerSpendMode selects the DID puzzle's inner-spend path.
const DIDInnerSpendMode = 1

// DIDSolution is (mode inner_solution). Only the inner-spend mode is recognised.
type DIDSolution struct {
	Mode          uint8
	InnerSolution clvm.NodePtr
}

func DecodeDIDSolution(a *clvm.Allocator, n clvm.NodePtr) (DIDSolution, error) {
	f, err := listFields(a, n, 2)
	if err != nil {
		return DIDSolution{}, err
	}
	mode := get(f, 0, "mode", clvm.DecodeUint64)
	inner := get(f, 1, "inner_solution", Raw)
	if f.err != nil {
		return DIDSolution{}, f.err
	}
	if mode != DIDInnerSpendMode {
		return DIDSolution{}, &clvm.Error{
			Kind:    clvm.KindDecode,
			RuleID:  "PUZ-DID-001",
			Message: fmt.Sprintf("unsupported DID spend mode %d", mode),
		}
	}
	return DIDSolution{Mode: DIDInnerSpendMode, InnerSolution: inner}, nil
}

func (s DIDSolution) Encode(a *clvm.Allocator) clvm.NodePtr {
	return a.NewList(a.NewUint(uint64(s.Mode)), s.InnerSolution)
}
