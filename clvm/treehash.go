package clvm

import (
	sha256 "github.com/minio/sha256-simd"
)

const (
	atomHashPrefix = 1
	pairHashPrefix = 2
)

// TreeHashAtom returns sha256(0x01 || atom).
func TreeHashAtom(atom []byte) Bytes32 {
	h := sha256.New()
	_, _ = h.Write([]byte{atomHashPrefix})
	_, _ = h.Write(atom)
	var out Bytes32
	h.Sum(out[:0])
	return out
}

// TreeHashPair returns sha256(0x02 || left || right).
func TreeHashPair(left, right Bytes32) Bytes32 {
	var buf [1 + 32 + 32]byte
	buf[0] = pairHashPrefix
	copy(buf[1:33], left[:])
	copy(buf[33:], right[:])
	return Bytes32(sha256.Sum256(buf[:]))
}

type hashOp struct {
	n    NodePtr
	cons bool
}

// TreeHash computes the structural hash of n. It depends only on the content of the
// tree, so two programs curried from the same template share the template's hash
// whatever arguments were bound.
func TreeHash(a *Allocator, n NodePtr) Bytes32 {
	ops := []hashOp{{n: n}}
	var vals []Bytes32
	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		if op.cons {
			right := vals[len(vals)-1]
			left := vals[len(vals)-2]
			vals = vals[:len(vals)-2]
			vals = append(vals, TreeHashPair(left, right))
			continue
		}
		if left, right, ok := a.Pair(op.n); ok {
			ops = append(ops, hashOp{cons: true}, hashOp{n: right}, hashOp{n: left})
			continue
		}
		atom, _ := a.Atom(op.n)
		vals = append(vals, TreeHashAtom(atom))
	}
	return vals[0]
}

// CurryTreeHash returns TreeHash(Curry(program, args...)) given only the hashes of
// program and args.
func CurryTreeHash(program Bytes32, args ...Bytes32) Bytes32 {
	quote := TreeHashAtom([]byte{opQuote})
	nilHash := TreeHashAtom(nil)
	list3 := func(op byte, second, third Bytes32) Bytes32 {
		return TreeHashPair(TreeHashAtom([]byte{op}), TreeHashPair(second, TreeHashPair(third, nilHash)))
	}
	env := quote
	for i := len(args) - 1; i >= 0; i-- {
		env = list3(opCons, TreeHashPair(quote, args[i]), env)
	}
	return list3(opApply, TreeHashPair(quote, program), env)
}
