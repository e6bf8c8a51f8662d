package registry

import "fmt"

// Shape names a puzzle layer the classifier can decompose.
type Shape string

const (
	ShapeStandard          Shape = "standard"
	ShapeCAT               Shape = "cat"
	ShapeSingleton         Shape = "singleton"
	ShapeDIDInner          Shape = "did_inner"
	ShapeNFTStateLayer     Shape = "nft_state_layer"
	ShapeNFTOwnershipLayer Shape = "nft_ownership_layer"
)

// Version distinguishes admissible hashes of one shape. Zero means unversioned.
type Version uint8

const (
	Unversioned Version = 0
	CATV1       Version = 1
	CATV2       Version = 2
)

func (v Version) String() string {
	if v == Unversioned {
		return ""
	}
	return fmt.Sprintf("v%d", uint8(v))
}

var shapes = []Shape{
	ShapeStandard,
	ShapeCAT,
	ShapeSingleton,
	ShapeDIDInner,
	ShapeNFTStateLayer,
	ShapeNFTOwnershipLayer,
}

// nesting lists, for each wrapping shape, the shapes its inner puzzle may have.
var nesting = map[Shape][]Shape{
	ShapeSingleton:     {ShapeDIDInner, ShapeNFTStateLayer},
	ShapeNFTStateLayer: {ShapeNFTOwnershipLayer},
}

// Shapes returns every known shape.
func Shapes() []Shape { return append([]Shape(nil), shapes...) }

// ParseShape validates a shape name.
func ParseShape(s string) (Shape, error) {
	for _, sh := range shapes {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Wraps returns the shapes that may appear as the inner puzzle of s.
func Wraps(s Shape) []Shape { return append([]Shape(nil), nesting[s]...) }

// TopLevel returns the shapes that may appear as the outermost puzzle.
func TopLevel() []Shape { return []Shape{ShapeStandard, ShapeCAT, ShapeSingleton} }

// IsTopLevel reports whether s may appear as the outermost puzzle.
func IsTopLevel(s Shape) bool {
	for _, t := range TopLevel() {
		if t == s {
			return true
		}
	}
	return false
}

// Terminal reports whether classification stops at s when it is reached at the top
// level. The DID inner puzzle ends classification one level down, and the ownership
// layer ends the NFT chain.
func Terminal(s Shape) bool {
	switch s {
	case ShapeStandard, ShapeCAT, ShapeDIDInner, ShapeNFTOwnershipLayer:
		return true
	}
	return false
}

// CanWrap reports whether inner may appear directly inside outer.
func CanWrap(outer, inner Shape) bool {
	for _, s := range nesting[outer] {
		if s == inner {
			return true
		}
	}
	return false
}
