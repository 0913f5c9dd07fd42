package mesh

import (
	"github.com/notargets/facelist/facelist"
)

// ElementType represents the linear element types read from mesh files
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	if e < 0 || e > Pyramid {
		return "Invalid"
	}
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}[e]
}

// GetDimension returns the topological dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of corner nodes of the element
func (e ElementType) GetNumNodes() int {
	switch e {
	case Line:
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

// ShapeType is the face extraction shape of the element
func (e ElementType) ShapeType() facelist.ShapeType {
	switch e {
	case Line:
		return facelist.Beam
	case Triangle:
		return facelist.Triangle
	case Quad:
		return facelist.Quad
	case Tet:
		return facelist.Tet
	case Hex:
		return facelist.Hex
	case Prism:
		return facelist.Prism
	case Pyramid:
		return facelist.Pyramid
	default:
		return facelist.Other
	}
}

// Corner orders map the file convention, where the first face of a solid
// winds toward the rest of the element, onto the face extraction templates.
// Entry i is the file corner that becomes extraction corner i.
var cornerOrder = map[ElementType][]int{
	Tet:     {0, 2, 1, 3},
	Pyramid: {0, 3, 2, 1, 4},
	Prism:   {0, 3, 5, 2, 1, 4},
}

// ExtractionOrder returns the element corners in face extraction order
func (e ElementType) ExtractionOrder(vertices []int) (nodes []int) {
	nodes = make([]int, len(vertices))
	perm, ok := cornerOrder[e]
	if !ok || len(vertices) != len(perm) {
		copy(nodes, vertices)
		return
	}
	for i, c := range perm {
		nodes[i] = vertices[c]
	}
	return
}

// GetElementFaces returns the vertices of each face of an element, oriented
// outward. Two dimensional elements return their edges.
func GetElementFaces(elemType ElementType, vertices []int) [][]int {
	v := vertices
	switch elemType {
	case Tet:
		return [][]int{
			{v[0], v[2], v[1]}, // Face 0
			{v[0], v[1], v[3]}, // Face 1
			{v[1], v[2], v[3]}, // Face 2
			{v[0], v[3], v[2]}, // Face 3
		}
	case Hex:
		return [][]int{
			{v[0], v[3], v[2], v[1]}, // Face 0 (bottom)
			{v[4], v[5], v[6], v[7]}, // Face 1 (top)
			{v[0], v[1], v[5], v[4]}, // Face 2
			{v[1], v[2], v[6], v[5]}, // Face 3
			{v[2], v[3], v[7], v[6]}, // Face 4
			{v[3], v[0], v[4], v[7]}, // Face 5
		}
	case Prism:
		return [][]int{
			{v[0], v[2], v[1]},       // Face 0 (bottom tri)
			{v[3], v[4], v[5]},       // Face 1 (top tri)
			{v[0], v[1], v[4], v[3]}, // Face 2 (quad)
			{v[1], v[2], v[5], v[4]}, // Face 3 (quad)
			{v[2], v[0], v[3], v[5]}, // Face 4 (quad)
		}
	case Pyramid:
		return [][]int{
			{v[0], v[3], v[2], v[1]}, // Face 0 (base quad)
			{v[0], v[1], v[4]},       // Face 1 (tri)
			{v[1], v[2], v[4]},       // Face 2 (tri)
			{v[2], v[3], v[4]},       // Face 3 (tri)
			{v[3], v[0], v[4]},       // Face 4 (tri)
		}
	case Triangle:
		return [][]int{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[0]}}
	case Quad:
		return [][]int{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[3]}, {v[3], v[0]}}
	default:
		return [][]int{}
	}
}
