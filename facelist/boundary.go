package facelist

import (
	"fmt"
	"strings"
)

// BoundaryMethod decides whether a face shared by two zones is interior
type BoundaryMethod uint8

const (
	// Strict cancels every shared face, materials are ignored
	Strict BoundaryMethod = iota
	// CleanOnly cancels a shared face only when both zones carry the same material
	CleanOnly
	// CleanOrMixedAsymmetric is CleanOnly, except that a face between a clean
	// zone and a mixed zone is exposed on the clean side only
	CleanOrMixedAsymmetric
	// CleanOrMixedSymmetric is CleanOnly, with faces between clean and mixed
	// zones exposed on both sides
	CleanOrMixedSymmetric
)

var BoundaryMethodNames = map[string]BoundaryMethod{
	"strict":     Strict,
	"topology":   Strict,
	"clean":      CleanOnly,
	"cleanonly":  CleanOnly,
	"asymmetric": CleanOrMixedAsymmetric,
	"symmetric":  CleanOrMixedSymmetric,
}

func (bm BoundaryMethod) String() string {
	switch bm {
	case Strict:
		return "Strict"
	case CleanOnly:
		return "CleanOnly"
	case CleanOrMixedAsymmetric:
		return "CleanOrMixedAsymmetric"
	case CleanOrMixedSymmetric:
		return "CleanOrMixedSymmetric"
	default:
		return "Invalid"
	}
}

// NewBoundaryMethod parses a method label, case insensitive
func NewBoundaryMethod(label string) (bm BoundaryMethod, err error) {
	var ok bool
	if bm, ok = BoundaryMethodNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("%w: unable to use boundary method named %q", ErrInvalidBoundaryMethod, label)
	}
	return
}

// NewBoundaryMethodFromCode accepts the legacy integer codes 0, 1, 2 and 4.
// Code 3 is reserved and every other value is rejected.
func NewBoundaryMethodFromCode(code int) (bm BoundaryMethod, err error) {
	switch code {
	case 0:
		bm = Strict
	case 1:
		bm = CleanOnly
	case 2:
		bm = CleanOrMixedAsymmetric
	case 4:
		bm = CleanOrMixedSymmetric
	default:
		err = fmt.Errorf("%w: code %d", ErrInvalidBoundaryMethod, code)
	}
	return
}

// Code returns the legacy integer code of the method
func (bm BoundaryMethod) Code() int {
	switch bm {
	case CleanOnly:
		return 1
	case CleanOrMixedAsymmetric:
		return 2
	case CleanOrMixedSymmetric:
		return 4
	default:
		return 0
	}
}

func (bm BoundaryMethod) valid() bool {
	return bm <= CleanOrMixedSymmetric
}

// UsesMaterials reports whether the method needs a per zone material list
func (bm BoundaryMethod) UsesMaterials() bool {
	return bm != Strict
}

// resolution is the outcome of a twin match
type resolution uint8

const (
	cancelBoth        resolution = iota // drop the stored face and the incoming one
	keepBoth                            // store the incoming face next to the existing one
	keepExisting                        // drop the incoming face only
	replaceByIncoming                   // drop the stored face, store the incoming one
)

// isMixed follows the mix-list convention: negative material ids index
// mixed material records, non-negative ids are clean zones
func isMixed(mat int) bool {
	return mat < 0
}

// resolve decides what happens when an incoming face owned by a zone of
// material incoming matches a stored face owned by a zone of material existing
func (bm BoundaryMethod) resolve(existing, incoming int) resolution {
	if bm == Strict || existing == incoming {
		return cancelBoth
	}
	if bm == CleanOrMixedAsymmetric {
		switch {
		case !isMixed(existing) && isMixed(incoming):
			return keepExisting
		case isMixed(existing) && !isMixed(incoming):
			return replaceByIncoming
		}
	}
	return keepBoth
}
