package clvm

import (
	"encoding/hex"
	"fmt"
	"strings"

	"xdao.co/spendclass/compliance"
)

const (
	pairPrefix  = 0xff
	nilAtomByte = 0x80

	// maxAtomSize mirrors the reference deserializer: any length >= 2^34 is a bad
	// encoding regardless of how much input remains.
	maxAtomSize = 0x400000000

	// DefaultMaxNodes bounds the arena growth a single Parse call may cause.
	DefaultMaxNodes = 1 << 25
)

// ParseOptions controls codec strictness.
type ParseOptions struct {
	Mode compliance.ComplianceMode

	// MaxNodes bounds the number of atoms and pairs one Parse call may allocate.
	// Zero selects DefaultMaxNodes.
	MaxNodes int
}

func (o ParseOptions) maxNodes() int {
	if o.MaxNodes <= 0 {
		return DefaultMaxNodes
	}
	return o.MaxNodes
}

type parseOp uint8

const (
	parseSExp parseOp = iota
	parseCons
)

type parser struct {
	a    *Allocator
	b    []byte
	pos  int
	opts ParseOptions
}

// Parse deserializes one tree from b into a.
//
// The parse is iterative, so deeply nested input cannot exhaust the goroutine stack.
// In Strict mode the input must be exactly one canonically encoded node.
func Parse(a *Allocator, b []byte, opts ParseOptions) (NodePtr, error) {
	p := &parser{a: a, b: b, opts: opts}
	n, err := p.parse()
	if err != nil {
		return 0, err
	}
	if opts.Mode == compliance.Strict && p.pos != len(b) {
		return 0, newError(KindCanonical, "CLVM-CANON-001",
			fmt.Sprintf("%d trailing bytes after serialized node", len(b)-p.pos))
	}
	return n, nil
}

// ParseHex decodes hex text (surrounding whitespace and an optional 0x prefix are
// ignored) and parses the result.
func ParseHex(a *Allocator, s string, opts ParseOptions) (NodePtr, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return 0, err
	}
	return Parse(a, b, opts)
}

// DecodeHex decodes hex text in the form accepted by ParseHex.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindParse, "CLVM-HEX-001", "invalid hex input", err)
	}
	return b, nil
}

func (p *parser) parse() (NodePtr, error) {
	limit := p.opts.maxNodes()
	start := p.a.Len()

	ops := []parseOp{parseSExp}
	var vals []NodePtr
	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		if p.a.Len()-start > limit {
			return 0, newError(KindParse, "CLVM-SER-003", fmt.Sprintf("serialized tree exceeds %d nodes", limit))
		}

		switch op {
		case parseSExp:
			first, err := p.readByte()
			if err != nil {
				return 0, err
			}
			if first == pairPrefix {
				ops = append(ops, parseCons, parseSExp, parseSExp)
				continue
			}
			n, err := p.atom(first)
			if err != nil {
				return 0, err
			}
			vals = append(vals, n)
		case parseCons:
			right := vals[len(vals)-1]
			left := vals[len(vals)-2]
			vals = vals[:len(vals)-2]
			vals = append(vals, p.a.NewPair(left, right))
		}
	}
	if len(vals) != 1 {
		return 0, newError(KindInternal, "CLVM-INTERNAL-001", "parse stack not balanced")
	}
	return vals[0], nil
}

func (p *parser) readByte() (byte, error) {
	if p.pos >= len(p.b) {
		return 0, newError(KindParse, "CLVM-SER-001", "unexpected end of input")
	}
	c := p.b[p.pos]
	p.pos++
	return c, nil
}

func (p *parser) atom(first byte) (NodePtr, error) {
	if first == nilAtomByte {
		return p.a.Nil(), nil
	}
	if first <= 0x7f {
		return p.a.NewAtom([]byte{first}), nil
	}

	size, prefixLen, err := p.decodeSize(first)
	if err != nil {
		return 0, err
	}
	if uint64(len(p.b)-p.pos) < size {
		return 0, newError(KindParse, "CLVM-SER-001", "unexpected end of input")
	}
	blob := p.b[p.pos : p.pos+int(size)]
	p.pos += int(size)

	if p.opts.Mode == compliance.Strict {
		if size == 1 && blob[0] <= 0x7f {
			return 0, newError(KindCanonical, "CLVM-CANON-002", "single-byte atom must not carry a length prefix")
		}
		if prefixLen != sizePrefixLen(size) {
			return 0, newError(KindCanonical, "CLVM-CANON-002", "atom length prefix is not minimal")
		}
	}
	return p.a.NewAtom(blob), nil
}

// decodeSize reads the length prefix that begins with first. The number of leading
// one bits in first is the width of the prefix in bytes.
func (p *parser) decodeSize(first byte) (size uint64, prefixLen int, err error) {
	b := first
	mask := byte(0x80)
	for b&mask != 0 {
		prefixLen++
		b &^= mask
		mask >>= 1
	}
	if prefixLen > 6 {
		return 0, 0, newError(KindParse, "CLVM-SER-002", fmt.Sprintf("bad encoding: invalid prefix byte 0x%02x", first))
	}
	size = uint64(b)
	for i := 1; i < prefixLen; i++ {
		c, err := p.readByte()
		if err != nil {
			return 0, 0, err
		}
		size = size<<8 | uint64(c)
	}
	if size >= maxAtomSize {
		return 0, 0, newError(KindParse, "CLVM-SER-002", "bad encoding: atom length too large")
	}
	return size, prefixLen, nil
}

func sizePrefixLen(size uint64) int {
	switch {
	case size < 0x40:
		return 1
	case size < 0x2000:
		return 2
	case size < 0x100000:
		return 3
	case size < 0x8000000:
		return 4
	default:
		return 5
	}
}

// Serialize returns the canonical encoding of n.
func Serialize(a *Allocator, n NodePtr) []byte {
	var out []byte
	stack := []NodePtr{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if left, right, ok := a.Pair(cur); ok {
			out = append(out, pairPrefix)
			stack = append(stack, right, left)
			continue
		}
		atom, _ := a.Atom(cur)
		out = appendAtom(out, atom)
	}
	return out
}

func appendAtom(out, atom []byte) []byte {
	size := uint64(len(atom))
	switch {
	case size == 0:
		return append(out, nilAtomByte)
	case size == 1 && atom[0] <= 0x7f:
		return append(out, atom[0])
	case size < 0x40:
		out = append(out, 0x80|byte(size))
	case size < 0x2000:
		out = append(out, 0xc0|byte(size>>8), byte(size))
	case size < 0x100000:
		out = append(out, 0xe0|byte(size>>16), byte(size>>8), byte(size))
	case size < 0x8000000:
		out = append(out, 0xf0|byte(size>>24), byte(size>>16), byte(size>>8), byte(size))
	default:
		out = append(out, 0xf8|byte(size>>32), byte(size>>24), byte(size>>16), byte(size>>8), byte(size))
	}
	return append(out, atom...)
}
