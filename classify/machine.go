package classify

import (
	"fmt"

	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/puzzles"
	"xdao.co/spendclass/registry"
)

type state int

const (
	stateAwaitingTopLevel state = iota
	stateAwaitingInnerSingleton
	stateAwaitingOwnershipLayer
	stateTerminal
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateAwaitingTopLevel:
		return "AwaitingTopLevel"
	case stateAwaitingInnerSingleton:
		return "AwaitingInnerSingleton"
	case stateAwaitingOwnershipLayer:
		return "AwaitingOwnershipLayer"
	case stateTerminal:
		return "Terminal"
	case stateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// machine walks one puzzle from the outside in. Each step consumes the curried
// program stored by the previous one and either moves to the next state or ends in
// Terminal or Failed.
type machine struct {
	reg      *registry.Registry
	a        *clvm.Allocator
	puzzle   clvm.NodePtr
	solution clvm.NodePtr

	state  state
	layers []registry.Entry
	// current is the curried program of the last matched wrapping layer.
	current clvm.CurriedProgram

	spend KnownSpend
	err   *Error
}

func newMachine(reg *registry.Registry, a *clvm.Allocator, puzzle, solution clvm.NodePtr) *machine {
	return &machine{reg: reg, a: a, puzzle: puzzle, solution: solution, state: stateAwaitingTopLevel}
}

func (m *machine) run() (KnownSpend, error) {
	for {
		switch m.state {
		case stateAwaitingTopLevel:
			m.topLevel()
		case stateAwaitingInnerSingleton:
			m.innerSingleton()
		case stateAwaitingOwnershipLayer:
			m.ownershipLayer()
		case stateTerminal:
			return m.spend, nil
		case stateFailed:
			return nil, m.err
		default:
			panic("classify: invalid state " + m.state.String())
		}
	}
}

func (m *machine) fail(kind Kind, stage Stage, ruleID, msg string, template clvm.Bytes32, cause error) {
	m.err = &Error{Kind: kind, Stage: stage, RuleID: ruleID, Message: msg, TemplateHash: template, Cause: cause}
	m.state = stateFailed
}

func (m *machine) finish(s KnownSpend) {
	m.spend = s
	m.state = stateTerminal
}

func (m *machine) base() layered {
	return layered{layers: m.layers, puzzle: m.puzzle, solution: m.solution}
}

func (m *machine) topLevel() {
	prog, err := clvm.Uncurry(m.a, m.puzzle)
	if err != nil {
		m.fail(KindDecomposition, StageTopLevel, RuleNotCurried, "puzzle is not a curried program", clvm.Bytes32{}, err)
		return
	}
	h := clvm.TreeHash(m.a, prog.Program)
	e, ok := m.reg.Lookup(h)
	if !ok {
		m.fail(KindUnknownShape, StageTopLevel, RuleUnknownTemplate, "no registered template "+h.String(), h, nil)
		return
	}
	if !registry.IsTopLevel(e.Shape) {
		m.fail(KindUnknownShape, StageTopLevel, RuleNotTopLevel,
			fmt.Sprintf("template %s (%s) only appears nested", h, e.Name), h, nil)
		return
	}
	m.layers = append(m.layers, e)

	switch e.Shape {
	case registry.ShapeStandard:
		m.decodeStandard(h)
	case registry.ShapeCAT:
		m.decodeCAT(h, e.Version)
	case registry.ShapeSingleton:
		m.current = prog
		m.state = stateAwaitingInnerSingleton
	default:
		m.fail(KindUnknownShape, StageTopLevel, RuleNotTopLevel, "unhandled top-level shape "+string(e.Shape), h, nil)
	}
}

func (m *machine) innerSingleton() {
	inner, err := m.innerArg(2, 1)
	if err != nil {
		m.fail(KindDecomposition, StageSingletonInner, RuleLayerArgs, "singleton arguments", clvm.Bytes32{}, err)
		return
	}
	prog, err := clvm.Uncurry(m.a, inner)
	if err != nil {
		m.fail(KindDecomposition, StageSingletonInner, RuleNotCurried, "singleton inner puzzle is not a curried program", clvm.Bytes32{}, err)
		return
	}
	h := clvm.TreeHash(m.a, prog.Program)
	e, ok := m.reg.Lookup(h)
	if !ok || !registry.CanWrap(registry.ShapeSingleton, e.Shape) {
		m.fail(KindUnknownShape, StageSingletonInner, RuleUnknownInner,
			"singleton wraps unrecognised inner template "+h.String(), h, nil)
		return
	}
	m.layers = append(m.layers, e)

	switch e.Shape {
	case registry.ShapeDIDInner:
		m.decodeDID(h)
	case registry.ShapeNFTStateLayer:
		m.current = prog
		m.state = stateAwaitingOwnershipLayer
	}
}

func (m *machine) ownershipLayer() {
	inner, err := m.innerArg(4, 3)
	if err != nil {
		m.fail(KindDecomposition, StageOwnershipLayer, RuleLayerArgs, "NFT state layer arguments", clvm.Bytes32{}, err)
		return
	}
	prog, err := clvm.Uncurry(m.a, inner)
	if err != nil {
		m.fail(KindDecomposition, StageOwnershipLayer, RuleNotCurried, "NFT state layer inner puzzle is not a curried program", clvm.Bytes32{}, err)
		return
	}
	h := clvm.TreeHash(m.a, prog.Program)
	e, ok := m.reg.Lookup(h)
	if !ok || !registry.CanWrap(registry.ShapeNFTStateLayer, e.Shape) {
		m.fail(KindUnknownNestedLayer, StageOwnershipLayer, RuleOwnershipMismatch,
			"NFT state layer wraps "+h.String()+", not an ownership layer", h, nil)
		return
	}
	m.layers = append(m.layers, e)
	m.decodeNFT(h)
}

// innerArg returns argument i of the current wrapping layer, which must have exactly
// n curried arguments.
func (m *machine) innerArg(n, i int) (clvm.NodePtr, error) {
	args, err := clvm.CurriedArgsN(m.a, m.current.Args, n)
	if err != nil {
		return 0, err
	}
	return args[i], nil
}

func (m *machine) decodeStandard(h clvm.Bytes32) {
	p, err := puzzles.DecodeStandardPuzzle(m.a, m.puzzle)
	if err != nil {
		m.failTyped(StageTopLevel, RuleTypedPuzzle, "standard puzzle", h, err)
		return
	}
	s, err := puzzles.DecodeStandardSolution(m.a, m.solution)
	if err != nil {
		m.failTyped(StageTopLevel, RuleTypedSolution, "standard solution", h, err)
		return
	}
	m.finish(&StandardSpend{layered: m.base(), Puzzle: p, Solution: s})
}

func (m *machine) decodeCAT(h clvm.Bytes32, v registry.Version) {
	p, err := decodeCATPuzzle(m.a, m.puzzle)
	if err != nil {
		m.failTyped(StageTopLevel, RuleTypedPuzzle, "CAT puzzle", h, err)
		return
	}
	s, err := puzzles.DecodeCATSolution(m.a, m.solution)
	if err != nil {
		m.failTyped(StageTopLevel, RuleTypedSolution, "CAT solution", h, err)
		return
	}
	m.finish(&CATSpend{layered: m.base(), Version: v, Puzzle: p, Solution: s})
}

func (m *machine) decodeDID(h clvm.Bytes32) {
	p, err := decodeDIDPuzzle(m.a, m.puzzle)
	if err != nil {
		m.failTyped(StageSingletonInner, RuleTypedPuzzle, "DID puzzle", h, err)
		return
	}
	s, err := decodeDIDSolution(m.a, m.solution)
	if err != nil {
		m.failTyped(StageSingletonInner, RuleTypedSolution, "DID solution", h, err)
		return
	}
	m.finish(&DIDSpend{layered: m.base(), Puzzle: p, Solution: s})
}

func (m *machine) decodeNFT(h clvm.Bytes32) {
	p, err := decodeNFTPuzzle(m.a, m.puzzle)
	if err != nil {
		m.failTyped(StageOwnershipLayer, RuleTypedPuzzle, "NFT puzzle", h, err)
		return
	}
	s, err := decodeNFTSolution(m.a, m.solution)
	if err != nil {
		m.failTyped(StageOwnershipLayer, RuleTypedSolution, "NFT solution", h, err)
		return
	}
	m.finish(&NFTSpend{layered: m.base(), Puzzle: p, Solution: s})
}

func (m *machine) failTyped(stage Stage, ruleID, what string, h clvm.Bytes32, err error) {
	msg := "decode " + what
	if id := clvm.RuleID(err); id != "" {
		msg += " (" + id + ")"
	}
	m.fail(KindTypedDecode, stage, ruleID, msg, h, err)
}
