package clvm

import "fmt"

const (
	opApply = 2
	opQuote = 1
	opCons  = 4
)

// CurriedProgram is a program split into its reusable template (Program) and the
// argument chain bound into it (Args).
type CurriedProgram struct {
	Program NodePtr
	Args    NodePtr
}

// Curry binds args into program, producing (a (q . program) (c (q . arg1) ... 1)).
func Curry(a *Allocator, program NodePtr, args ...NodePtr) NodePtr {
	env := a.One()
	apply := a.NewAtom([]byte{opApply})
	cons := a.NewAtom([]byte{opCons})
	for i := len(args) - 1; i >= 0; i-- {
		env = a.NewList(cons, a.NewPair(a.One(), args[i]), env)
	}
	return a.NewList(apply, a.NewPair(a.One(), program), env)
}

// Uncurry splits n into template and bound arguments.
//
// n must be the proper three-element list (2 (1 . PROGRAM) ARGS). The argument chain
// is returned undecoded; see CurriedArgs.
func Uncurry(a *Allocator, n NodePtr) (CurriedProgram, error) {
	items, err := properList(a, n, 3)
	if err != nil {
		return CurriedProgram{}, wrapError(KindCurry, "CLVM-CURRY-001", "program is not in curried form", err)
	}
	if !a.atomEquals(items[0], opApply) {
		return CurriedProgram{}, newError(KindCurry, "CLVM-CURRY-002", "curried program must start with the apply operator")
	}
	q, program, ok := a.Pair(items[1])
	if !ok || !a.atomEquals(q, opQuote) {
		return CurriedProgram{}, newError(KindCurry, "CLVM-CURRY-003", "curried template must be quoted")
	}
	return CurriedProgram{Program: program, Args: items[2]}, nil
}

// CurriedArgs walks an argument chain (c (q . X) REST) terminated by the atom 1.
func CurriedArgs(a *Allocator, args NodePtr) ([]NodePtr, error) {
	var out []NodePtr
	cur := args
	for !a.atomEquals(cur, opQuote) {
		items, err := properList(a, cur, 3)
		if err != nil {
			return nil, wrapError(KindCurry, "CLVM-CURRY-010",
				fmt.Sprintf("curried argument %d is malformed", len(out)), err)
		}
		if !a.atomEquals(items[0], opCons) {
			return nil, newError(KindCurry, "CLVM-CURRY-010",
				fmt.Sprintf("curried argument %d must use the cons operator", len(out)))
		}
		q, v, ok := a.Pair(items[1])
		if !ok || !a.atomEquals(q, opQuote) {
			return nil, newError(KindCurry, "CLVM-CURRY-010",
				fmt.Sprintf("curried argument %d must be quoted", len(out)))
		}
		out = append(out, v)
		cur = items[2]
	}
	return out, nil
}

// CurriedArgsN is CurriedArgs requiring exactly n arguments.
func CurriedArgsN(a *Allocator, args NodePtr, n int) ([]NodePtr, error) {
	out, err := CurriedArgs(a, args)
	if err != nil {
		return nil, err
	}
	if len(out) != n {
		return nil, newError(KindCurry, "CLVM-CURRY-011",
			fmt.Sprintf("expected %d curried arguments, got %d", n, len(out)))
	}
	return out, nil
}

// properList returns the items of a nil-terminated list of exactly n items.
func properList(a *Allocator, list NodePtr, n int) ([]NodePtr, error) {
	items := make([]NodePtr, 0, n)
	cur := list
	for len(items) < n {
		first, rest, ok := a.Pair(cur)
		if !ok {
			return nil, newError(KindDecode, "CLVM-DEC-007", fmt.Sprintf("expected a list of %d items, got %d", n, len(items)))
		}
		items = append(items, first)
		cur = rest
	}
	if !a.IsNil(cur) {
		return nil, newError(KindDecode, "CLVM-DEC-007", fmt.Sprintf("expected a list of %d items, got more", n))
	}
	return items, nil
}
