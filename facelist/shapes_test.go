package facelist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeType_Labels(t *testing.T) {
	for label, want := range ShapeNames {
		got, err := NewShapeType(label)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	st, err := NewShapeType("HEX")
	assert.NoError(t, err)
	assert.Equal(t, Hex, st)
	_, err = NewShapeType("octahedron")
	assert.Error(t, err)

	assert.Equal(t, "Prism", Prism.String())
	assert.Equal(t, "Invalid", ShapeType(42).String())
	assert.Equal(t, 3, Pyramid.Dimension())
	assert.Equal(t, 2, Quad.Dimension())
	assert.Equal(t, 1, Beam.Dimension())
	assert.Equal(t, 0, Other.Dimension())
	assert.Equal(t, 0, Polygon.NumNodes())
}

func TestClassifySolid(t *testing.T) {
	assert.Equal(t, Tet, ClassifySolid(4))
	assert.Equal(t, Pyramid, ClassifySolid(5))
	assert.Equal(t, Prism, ClassifySolid(6))
	assert.Equal(t, Hex, ClassifySolid(8))
	for _, size := range []int{0, 1, 2, 3, 7, 9, 20} {
		assert.Equal(t, Other, ClassifySolid(size), "size %d", size)
	}
}

// Every template set must describe a closed orientable surface: each edge is
// walked exactly once in each direction.
func TestTemplates_ClosedOrientedSurface(t *testing.T) {
	for _, st := range []ShapeType{Tet, Pyramid, Prism, Hex} {
		var (
			tmpls    = Templates(st)
			directed = make(map[[2]int]int)
		)
		require.NotEmpty(t, tmpls, st.String())
		for _, tmpl := range tmpls {
			for i := range tmpl {
				directed[[2]int{tmpl[i], tmpl[(i+1)%len(tmpl)]}]++
			}
		}
		for edge, count := range directed {
			assert.Equal(t, 1, count, "%s edge %v", st, edge)
			assert.Equal(t, 1, directed[[2]int{edge[1], edge[0]}], "%s edge %v has no reverse", st, edge)
		}
	}
	assert.Len(t, Templates(Tet), 4)
	assert.Len(t, Templates(Pyramid), 5)
	assert.Len(t, Templates(Prism), 5)
	assert.Len(t, Templates(Hex), 6)
	assert.Nil(t, Templates(Polygon))
}

func TestSingleZone_MatchesTemplate(t *testing.T) {
	for _, origin := range []int{0, 1} {
		for _, st := range []ShapeType{Tet, Pyramid, Prism, Hex} {
			t.Run(fmt.Sprintf("%s/origin%d", st, origin), func(t *testing.T) {
				var (
					n     = st.NumNodes()
					nodes = make([]int, n)
				)
				for i := range nodes {
					nodes[i] = 3*i + 7 + origin // distinct, not sorted by local index
				}
				nodes[0], nodes[n-1] = nodes[n-1], nodes[0]
				fl, err := ExtractBasic(nodes, 3*n+8, origin, []int{n}, []int{1}, nil, Strict)
				require.NoError(t, err)

				want := make(map[string]int)
				for _, tmpl := range Templates(st) {
					face := make([]int, len(tmpl))
					for i, off := range tmpl {
						face[i] = nodes[off]
					}
					want[faceKey(face, origin)]++
				}
				assert.Equal(t, want, faceMultiset(fl))
				assert.Equal(t, len(Templates(st)), fl.NumFaces)
				assert.Equal(t, repeat(origin, fl.NumFaces), fl.ZoneNumbers)
				assert.Equal(t, 3, fl.Dimension)
				assert.Equal(t, origin, fl.Origin)
			})
		}
	}
}

func TestEmitZoneFaces(t *testing.T) {
	{ // Solids follow the templates
		faces := EmitZoneFaces(Tet, []int{10, 11, 12, 13})
		assert.Equal(t, [][]int{{10, 11, 12}, {10, 12, 13}, {10, 13, 11}, {11, 13, 12}}, faces)
	}
	{ // Polygonal zones are their own face
		assert.Equal(t, [][]int{{4, 2, 9, 7, 1}}, EmitZoneFaces(Polygon, []int{4, 2, 9, 7, 1}))
		assert.Equal(t, [][]int{{3, 8}}, EmitZoneFaces(Beam, []int{3, 8}))
	}
	{ // Polyhedra decode their own face list
		window := []int{2, 3, 1, 2, 3, 4, 4, 3, 2, 1}
		assert.Equal(t, [][]int{{1, 2, 3}, {4, 3, 2, 1}}, EmitZoneFaces(Polyhedron, window))
	}
	{ // Unsupported shapes emit nothing
		assert.Empty(t, EmitZoneFaces(Other, []int{1, 2, 3}))
		assert.Empty(t, EmitZoneFaces(ShapeType(77), []int{1, 2, 3}))
	}
}
