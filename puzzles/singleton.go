package puzzles

import "xdao.co/spendclass/clvm"

// SingletonStruct identifies a singleton: (mod_hash . (launcher_id . launcher_puzzle_hash)).
type SingletonStruct struct {
	ModHash            clvm.Bytes32
	LauncherID         clvm.Bytes32
	LauncherPuzzleHash clvm.Bytes32
}

// NewSingletonStruct returns the struct for a mainnet singleton with the given launcher.
func NewSingletonStruct(launcherID clvm.Bytes32) SingletonStruct {
	return SingletonStruct{
		ModHash:            SingletonTopLayerPuzzleHash,
		LauncherID:         launcherID,
		LauncherPuzzleHash: SingletonLauncherPuzzleHash,
	}
}

func DecodeSingletonStruct(a *clvm.Allocator, n clvm.NodePtr) (SingletonStruct, error) {
	modHash, rest, ok := a.Pair(n)
	if !ok {
		return SingletonStruct{}, clvm.WithField("singleton_struct", &clvm.Error{Kind: clvm.KindDecode, RuleID: "CLVM-DEC-002", Message: "expected a pair"})
	}
	launcherID, launcherPH, ok := a.Pair(rest)
	if !ok {
		return SingletonStruct{}, clvm.WithField("singleton_struct", &clvm.Error{Kind: clvm.KindDecode, RuleID: "CLVM-DEC-002", Message: "expected a pair"})
	}
	f := &fields{a: a, items: []clvm.NodePtr{modHash, launcherID, launcherPH}}
	s := SingletonStruct{
		ModHash:            get(f, 0, "mod_hash", clvm.DecodeBytes32),
		LauncherID:         get(f, 1, "launcher_id", clvm.DecodeBytes32),
		LauncherPuzzleHash: get(f, 2, "launcher_puzzle_hash", clvm.DecodeBytes32),
	}
	return s, f.err
}

func (s SingletonStruct) Encode(a *clvm.Allocator) clvm.NodePtr {
	return a.NewPair(a.NewAtom(s.ModHash[:]), a.NewPair(a.NewAtom(s.LauncherID[:]), a.NewAtom(s.LauncherPuzzleHash[:])))
}

// SingletonArgs are the arguments curried into the singleton top layer.
type SingletonArgs[I any] struct {
	SingletonStruct SingletonStruct
	InnerPuzzle     I
}

// SingletonPuzzleOf returns a decoder for a singleton whose inner puzzle decodes with inner.
func SingletonPuzzleOf[I any](inner Decoder[I]) Decoder[Curried[SingletonArgs[I]]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (Curried[SingletonArgs[I]], error) {
		return decodeCurried(a, n, 2, func(f *fields) SingletonArgs[I] {
			return SingletonArgs[I]{
				SingletonStruct: get(f, 0, "singleton_struct", DecodeSingletonStruct),
				InnerPuzzle:     get(f, 1, "inner_puzzle", inner),
			}
		})
	}
}

// CurrySingleton binds args into mod.
func CurrySingleton(a *clvm.Allocator, mod clvm.NodePtr, args SingletonArgs[clvm.NodePtr]) clvm.NodePtr {
	return clvm.Curry(a, mod, args.SingletonStruct.Encode(a), args.InnerPuzzle)
}

// SingletonSolution is (lineage_proof amount inner_solution).
type SingletonSolution[S any] struct {
	LineageProof  Proof
	Amount        uint64
	InnerSolution S
}

// SingletonSolutionOf returns a decoder for a singleton solution whose inner solution
// decodes with inner.
func SingletonSolutionOf[S any](inner Decoder[S]) Decoder[SingletonSolution[S]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (SingletonSolution[S], error) {
		f, err := listFields(a, n, 3)
		if err != nil {
			return SingletonSolution[S]{}, err
		}
		s := SingletonSolution[S]{
			LineageProof:  get(f, 0, "lineage_proof", DecodeProof),
			Amount:        get(f, 1, "amount", clvm.DecodeUint64),
			InnerSolution: get(f, 2, "inner_solution", inner),
		}
		return s, f.err
	}
}

// EncodeSingletonSolution encodes a singleton solution around an encoded inner solution.
func EncodeSingletonSolution(a *clvm.Allocator, s SingletonSolution[clvm.NodePtr]) clvm.NodePtr {
	return a.NewList(s.LineageProof.Encode(a), a.NewUint(s.Amount), s.InnerSolution)
}

// LayerSolution is the single-item solution (inner_solution) shared by the NFT
// state and ownership layers.
type LayerSolution[S any] struct {
	InnerSolution S
}

func LayerSolutionOf[S any](inner Decoder[S]) Decoder[LayerSolution[S]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (LayerSolution[S], error) {
		f, err := listFields(a, n, 1)
		if err != nil {
			return LayerSolution[S]{}, err
		}
		s := LayerSolution[S]{InnerSolution: get(f, 0, "inner_solution", inner)}
		return s, f.err
	}
}

// EncodeLayerSolution wraps an encoded inner solution in a one-item list.
func EncodeLayerSolution(a *clvm.Allocator, inner clvm.NodePtr) clvm.NodePtr {
	return a.NewList(inner)
}
