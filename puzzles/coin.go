package puzzles

import (
	"fmt"

	"xdao.co/spendclass/clvm"
)

// Coin is (parent_coin_info puzzle_hash amount).
type Coin struct {
	ParentCoinInfo clvm.Bytes32
	PuzzleHash     clvm.Bytes32
	Amount         uint64
}

// DecodeCoin decodes a three-item coin list.
func DecodeCoin(a *clvm.Allocator, n clvm.NodePtr) (Coin, error) {
	f, err := listFields(a, n, 3)
	if err != nil {
		return Coin{}, err
	}
	c := Coin{
		ParentCoinInfo: get(f, 0, "parent_coin_info", clvm.DecodeBytes32),
		PuzzleHash:     get(f, 1, "puzzle_hash", clvm.DecodeBytes32),
		Amount:         get(f, 2, "amount", clvm.DecodeUint64),
	}
	return c, f.err
}

func (c Coin) Encode(a *clvm.Allocator) clvm.NodePtr {
	return a.NewList(a.NewAtom(c.ParentCoinInfo[:]), a.NewAtom(c.PuzzleHash[:]), a.NewUint(c.Amount))
}

// LineageProof proves a coin's parent was a coin of the same family.
type LineageProof struct {
	ParentParentCoinID    clvm.Bytes32
	ParentInnerPuzzleHash clvm.Bytes32
	ParentAmount          uint64
}

func DecodeLineageProof(a *clvm.Allocator, n clvm.NodePtr) (LineageProof, error) {
	f, err := listFields(a, n, 3)
	if err != nil {
		return LineageProof{}, err
	}
	p := LineageProof{
		ParentParentCoinID:    get(f, 0, "parent_parent_coin_id", clvm.DecodeBytes32),
		ParentInnerPuzzleHash: get(f, 1, "parent_inner_puzzle_hash", clvm.DecodeBytes32),
		ParentAmount:          get(f, 2, "parent_amount", clvm.DecodeUint64),
	}
	return p, f.err
}

func (p LineageProof) Encode(a *clvm.Allocator) clvm.NodePtr {
	return a.NewList(a.NewAtom(p.ParentParentCoinID[:]), a.NewAtom(p.ParentInnerPuzzleHash[:]), a.NewUint(p.ParentAmount))
}

// CoinProof is (parent_coin_info inner_puzzle_hash amount).
type CoinProof struct {
	ParentCoinInfo  clvm.Bytes32
	InnerPuzzleHash clvm.Bytes32
	Amount          uint64
}

func DecodeCoinProof(a *clvm.Allocator, n clvm.NodePtr) (CoinProof, error) {
	f, err := listFields(a, n, 3)
	if err != nil {
		return CoinProof{}, err
	}
	p := CoinProof{
		ParentCoinInfo:  get(f, 0, "parent_coin_info", clvm.DecodeBytes32),
		InnerPuzzleHash: get(f, 1, "inner_puzzle_hash", clvm.DecodeBytes32),
		Amount:          get(f, 2, "amount", clvm.DecodeUint64),
	}
	return p, f.err
}

func (p CoinProof) Encode(a *clvm.Allocator) clvm.NodePtr {
	return a.NewList(a.NewAtom(p.ParentCoinInfo[:]), a.NewAtom(p.InnerPuzzleHash[:]), a.NewUint(p.Amount))
}

// EveProof is the proof carried by the first spend after a launcher.
type EveProof struct {
	ParentCoinInfo clvm.Bytes32
	Amount         uint64
}

// Proof is a singleton lineage proof: exactly one of Lineage or Eve is set.
type Proof struct {
	Lineage *LineageProof
	Eve     *EveProof
}

// DecodeProof tells the two proof forms apart by list length.
func DecodeProof(a *clvm.Allocator, n clvm.NodePtr) (Proof, error) {
	items, err := clvm.DecodeList(a, n)
	if err != nil {
		return Proof{}, err
	}
	switch len(items) {
	case 3:
		lp, err := DecodeLineageProof(a, n)
		if err != nil {
			return Proof{}, err
		}
		return Proof{Lineage: &lp}, nil
	case 2:
		f := &fields{a: a, items: items}
		ep := EveProof{
			ParentCoinInfo: get(f, 0, "parent_coin_info", clvm.DecodeBytes32),
			Amount:         get(f, 1, "amount", clvm.DecodeUint64),
		}
		if f.err != nil {
			return Proof{}, f.err
		}
		return Proof{Eve: &ep}, nil
	default:
		return Proof{}, &clvm.Error{
			Kind:    clvm.KindDecode,
			RuleID:  "PUZ-PROOF-001",
			Message: fmt.Sprintf("proof must have 2 (eve) or 3 (lineage) items, got %d", len(items)),
		}
	}
}

func (p Proof) Encode(a *clvm.Allocator) clvm.NodePtr {
	if p.Lineage != nil {
		return p.Lineage.Encode(a)
	}
	if p.Eve != nil {
		return a.NewList(a.NewAtom(p.Eve.ParentCoinInfo[:]), a.NewUint(p.Eve.Amount))
	}
	return a.Nil()
}
