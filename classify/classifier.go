package classify

import (
	"time"

	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/registry"
)

// Classifier classifies puzzle/solution pairs against a registry. It holds no
// per-call state and may be shared by goroutines.
type Classifier struct {
	reg     *registry.Registry
	metrics *Metrics
}

type Option func(*Classifier)

// WithMetrics records every classification outcome in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Classifier) { c.metrics = m }
}

// New returns a classifier over reg. A nil reg selects registry.Default().
func New(reg *registry.Registry, opts ...Option) *Classifier {
	if reg == nil {
		reg = registry.Default()
	}
	c := &Classifier{reg: reg}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Registry returns the registry the classifier looks templates up in.
func (c *Classifier) Registry() *registry.Registry { return c.reg }

// Classify decomposes puzzle and decodes solution. The allocator is only read.
func (c *Classifier) Classify(a *clvm.Allocator, puzzle, solution clvm.NodePtr) (KnownSpend, error) {
	start := time.Now()
	s, err := newMachine(c.reg, a, puzzle, solution).run()
	c.metrics.observe(s, err, time.Since(start))
	return s, err
}

// Result is a classified spend together with the arena its nodes live in.
type Result struct {
	Allocator *clvm.Allocator
	Spend     KnownSpend
}

// ClassifyBytes parses both serialized halves into a fresh arena and classifies them.
func (c *Classifier) ClassifyBytes(puzzle, solution []byte, opts clvm.ParseOptions) (*Result, error) {
	a := clvm.NewAllocator()
	p, err := clvm.Parse(a, puzzle, opts)
	if err != nil {
		return nil, c.inputError(RuleInputPuzzle, "parse puzzle", err)
	}
	s, err := clvm.Parse(a, solution, opts)
	if err != nil {
		return nil, c.inputError(RuleInputSolution, "parse solution", err)
	}
	spend, err := c.Classify(a, p, s)
	if err != nil {
		return nil, err
	}
	return &Result{Allocator: a, Spend: spend}, nil
}

// ClassifyPairBytes parses a serialized (puzzle . solution) pair and classifies it.
func (c *Classifier) ClassifyPairBytes(pair []byte, opts clvm.ParseOptions) (*Result, error) {
	a := clvm.NewAllocator()
	n, err := clvm.Parse(a, pair, opts)
	if err != nil {
		return nil, c.inputError(RuleInputPair, "parse spend", err)
	}
	p, s, ok := a.Pair(n)
	if !ok {
		return nil, c.inputError(RuleInputPair, "spend is not a (puzzle . solution) pair", nil)
	}
	spend, err := c.Classify(a, p, s)
	if err != nil {
		return nil, err
	}
	return &Result{Allocator: a, Spend: spend}, nil
}

func (c *Classifier) inputError(ruleID, msg string, cause error) error {
	err := &Error{Kind: KindInputDecode, Stage: StageInput, RuleID: ruleID, Message: msg, Cause: cause}
	c.metrics.observe(nil, err, 0)
	return err
}

var std = New(nil)

// Classify classifies with the mainnet registry.
func Classify(a *clvm.Allocator, puzzle, solution clvm.NodePtr) (KnownSpend, error) {
	return std.Classify(a, puzzle, solution)
}

// ClassifyBytes parses and classifies with the mainnet registry.
func ClassifyBytes(puzzle, solution []byte, opts clvm.ParseOptions) (*Result, error) {
	return std.ClassifyBytes(puzzle, solution, opts)
}
