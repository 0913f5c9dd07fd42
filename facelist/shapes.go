package facelist

import (
	"fmt"
	"strings"
)

// ShapeType identifies the shape of every zone in a shape run
type ShapeType int

const (
	Other ShapeType = iota // unsupported, contributes no faces
	Beam
	Polygon
	Triangle
	Quad
	Polyhedron
	Tet
	Pyramid
	Prism
	Hex
)

var shapeNames = [...]string{"Other", "Beam", "Polygon", "Triangle", "Quad",
	"Polyhedron", "Tet", "Pyramid", "Prism", "Hex"}

func (s ShapeType) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "Invalid"
	}
	return shapeNames[s]
}

var ShapeNames = map[string]ShapeType{
	"other":       Other,
	"beam":        Beam,
	"line":        Beam,
	"polygon":     Polygon,
	"triangle":    Triangle,
	"tri":         Triangle,
	"quad":        Quad,
	"polyhedron":  Polyhedron,
	"tet":         Tet,
	"tetrahedron": Tet,
	"pyramid":     Pyramid,
	"prism":       Prism,
	"wedge":       Prism,
	"hex":         Hex,
	"hexahedron":  Hex,
}

func NewShapeType(label string) (st ShapeType, err error) {
	var ok bool
	if st, ok = ShapeNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use shape type named %s", label)
	}
	return
}

// Dimension is the topological dimension of a zone of this shape
func (s ShapeType) Dimension() int {
	switch s {
	case Beam:
		return 1
	case Polygon, Triangle, Quad:
		return 2
	case Polyhedron, Tet, Pyramid, Prism, Hex:
		return 3
	default:
		return 0
	}
}

// NumNodes returns the fixed node count of the shape, 0 when the count varies
func (s ShapeType) NumNodes() int {
	switch s {
	case Beam:
		return 2
	case Triangle:
		return 3
	case Quad, Tet:
		return 4
	case Pyramid:
		return 5
	case Prism:
		return 6
	case Hex:
		return 8
	default:
		return 0
	}
}

// ClassifySolid maps a per-zone node count onto one of the regular solids,
// returning Other for counts that name no solid
func ClassifySolid(size int) ShapeType {
	switch size {
	case 4:
		return Tet
	case 5:
		return Pyramid
	case 6:
		return Prism
	case 8:
		return Hex
	default:
		return Other
	}
}

// FaceTemplate lists local node offsets into a zone's node window, in the
// winding used for that face slot
type FaceTemplate []int

// Face templates for the regular solids. Every template is wound so that all
// faces of a positively oriented zone share one normal convention, which is
// what lets a shared face cancel against its reversed twin.
var faceTemplates = map[ShapeType][]FaceTemplate{
	Tet: {
		{0, 1, 2},
		{0, 2, 3},
		{0, 3, 1},
		{1, 3, 2},
	},
	Pyramid: {
		{0, 1, 2, 3},
		{0, 4, 1},
		{1, 4, 2},
		{2, 4, 3},
		{3, 4, 0},
	},
	Prism: {
		{0, 1, 2, 3},
		{3, 2, 5, 4},
		{4, 5, 1, 0},
		{3, 4, 0},
		{1, 5, 2},
	},
	Hex: {
		{0, 3, 2, 1},
		{1, 2, 6, 5},
		{5, 6, 7, 4},
		{4, 7, 3, 0},
		{0, 1, 5, 4},
		{3, 7, 6, 2},
	},
}

// Templates returns the face templates of a regular solid. Shapes whose faces
// come straight from the node window (polygons, beams, polyhedra) return nil.
func Templates(s ShapeType) []FaceTemplate {
	return faceTemplates[s]
}
