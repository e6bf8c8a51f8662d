package puzzles

import (
	"fmt"

	"xdao.co/spendclass/clvm"
)

// Curried is a curried program with typed bound arguments. Node is the curried
// program as decoded; it is nil for values built from typed arguments.
type Curried[A any] struct {
	Program clvm.NodePtr
	Args    A
	Node    clvm.NodePtr
}

// Decoder decodes a node into T.
type Decoder[T any] func(a *clvm.Allocator, n clvm.NodePtr) (T, error)

// Raw is the identity decoder, used where a field stays an untyped program.
func Raw(_ *clvm.Allocator, n clvm.NodePtr) (clvm.NodePtr, error) { return n, nil }

// fields reads list items in order and remembers the first failure, so decoders can
// fill a struct literal and check one error at the end.
type fields struct {
	a     *clvm.Allocator
	items []clvm.NodePtr
	err   error
}

func get[T any](f *fields, i int, name string, dec func(*clvm.Allocator, clvm.NodePtr) (T, error)) T {
	var zero T
	if f.err != nil {
		return zero
	}
	if i >= len(f.items) {
		f.err = clvm.WithField(name, fmt.Errorf("missing field %d", i))
		return zero
	}
	v, err := dec(f.a, f.items[i])
	if err != nil {
		f.err = clvm.WithField(name, err)
		return zero
	}
	return v
}

func listFields(a *clvm.Allocator, n clvm.NodePtr, count int) (*fields, error) {
	items, err := clvm.DecodeListN(a, n, count)
	if err != nil {
		return nil, err
	}
	return &fields{a: a, items: items}, nil
}

// decodeCurried uncurries n, requires exactly nargs bound arguments, and decodes
// them with build.
func decodeCurried[A any](a *clvm.Allocator, n clvm.NodePtr, nargs int, build func(*fields) A) (Curried[A], error) {
	prog, err := clvm.Uncurry(a, n)
	if err != nil {
		return Curried[A]{}, err
	}
	args, err := clvm.CurriedArgsN(a, prog.Args, nargs)
	if err != nil {
		return Curried[A]{}, err
	}
	f := &fields{a: a, items: args}
	v := build(f)
	if f.err != nil {
		return Curried[A]{}, f.err
	}
	return Curried[A]{Program: prog.Program, Args: v, Node: n}, nil
}

func optionOf[T any](dec func(*clvm.Allocator, clvm.NodePtr) (T, error)) func(*clvm.Allocator, clvm.NodePtr) (*T, error) {
	return func(a *clvm.Allocator, n clvm.NodePtr) (*T, error) {
		return clvm.DecodeOption(a, n, dec)
	}
}

func encodeOptionBytes32(a *clvm.Allocator, v *clvm.Bytes32) clvm.NodePtr {
	if v == nil {
		return a.Nil()
	}
	return a.NewAtom(v[:])
}
