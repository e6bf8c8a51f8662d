package clvm

import "bytes"

// NodePtr is a handle to a node inside an Allocator. It is only meaningful for the
// Allocator that produced it.
type NodePtr int32

type node struct {
	atom        []byte
	left, right NodePtr
	pair        bool
}

// Allocator is an append-only arena of tree nodes. Nodes are immutable once created.
//
// An Allocator is not safe for concurrent mutation. Once construction is finished it
// may be read from any number of goroutines.
type Allocator struct {
	nodes []node
}

const (
	nilPtr NodePtr = 0
	onePtr NodePtr = 1
)

// NewAllocator returns an arena holding only the nil atom and the atom 0x01.
func NewAllocator() *Allocator {
	a := &Allocator{nodes: make([]node, 2, 64)}
	a.nodes[nilPtr] = node{atom: []byte{}}
	a.nodes[onePtr] = node{atom: []byte{1}}
	return a
}

// Nil returns the empty atom.
func (a *Allocator) Nil() NodePtr { return nilPtr }

// One returns the atom 0x01 (the quote operator and the curried-environment marker).
func (a *Allocator) One() NodePtr { return onePtr }

// Len reports the number of nodes in the arena.
func (a *Allocator) Len() int { return len(a.nodes) }

// NewAtom copies b into the arena.
func (a *Allocator) NewAtom(b []byte) NodePtr {
	switch {
	case len(b) == 0:
		return nilPtr
	case len(b) == 1 && b[0] == 1:
		return onePtr
	}
	a.nodes = append(a.nodes, node{atom: bytes.Clone(b)})
	return NodePtr(len(a.nodes) - 1)
}

// NewPair returns the cons of left and right.
func (a *Allocator) NewPair(left, right NodePtr) NodePtr {
	a.nodes = append(a.nodes, node{left: left, right: right, pair: true})
	return NodePtr(len(a.nodes) - 1)
}

// NewList builds a proper (nil-terminated) list of items.
func (a *Allocator) NewList(items ...NodePtr) NodePtr {
	out := a.Nil()
	for i := len(items) - 1; i >= 0; i-- {
		out = a.NewPair(items[i], out)
	}
	return out
}

// NewUint returns the minimal two's complement atom for v.
func (a *Allocator) NewUint(v uint64) NodePtr {
	return a.NewAtom(encodeInt(0, v))
}

// NewInt returns the minimal two's complement atom for v.
func (a *Allocator) NewInt(v int64) NodePtr {
	var hi byte
	if v < 0 {
		hi = 0xff
	}
	return a.NewAtom(encodeInt(hi, uint64(v)))
}

func (a *Allocator) valid(n NodePtr) bool {
	return n >= 0 && int(n) < len(a.nodes)
}

// IsAtom reports whether n is an atom.
func (a *Allocator) IsAtom(n NodePtr) bool {
	return a.valid(n) && !a.nodes[n].pair
}

// IsPair reports whether n is a pair.
func (a *Allocator) IsPair(n NodePtr) bool {
	return a.valid(n) && a.nodes[n].pair
}

// Atom returns the bytes of an atom. The returned slice is owned by the arena and
// must not be modified.
func (a *Allocator) Atom(n NodePtr) ([]byte, bool) {
	if !a.IsAtom(n) {
		return nil, false
	}
	return a.nodes[n].atom, true
}

// Pair returns the children of a pair.
func (a *Allocator) Pair(n NodePtr) (left, right NodePtr, ok bool) {
	if !a.IsPair(n) {
		return 0, 0, false
	}
	nd := a.nodes[n]
	return nd.left, nd.right, true
}

// IsNil reports whether n is the empty atom.
func (a *Allocator) IsNil(n NodePtr) bool {
	b, ok := a.Atom(n)
	return ok && len(b) == 0
}

// atomEquals reports whether n is an atom with exactly the bytes want.
func (a *Allocator) atomEquals(n NodePtr, want ...byte) bool {
	b, ok := a.Atom(n)
	return ok && bytes.Equal(b, want)
}

func encodeInt(hi byte, v uint64) []byte {
	var buf [9]byte
	buf[0] = hi
	for i := 0; i < 8; i++ {
		buf[8-i] = byte(v >> (8 * i))
	}
	i := 0
	for i < 8 {
		redundantZero := buf[i] == 0x00 && buf[i+1]&0x80 == 0
		redundantOnes := buf[i] == 0xff && buf[i+1]&0x80 != 0
		if !redundantZero && !redundantOnes {
			break
		}
		i++
	}
	if i == 8 && buf[8] == 0 {
		return nil
	}
	return buf[i:]
}
