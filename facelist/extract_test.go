package facelist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_TwoAdjacentHexes(t *testing.T) {
	nodes, nn := hexGrid(2, 1, 1, false, 0)
	fl, err := ExtractBasic(nodes, nn, 0, []int{8}, []int{2}, nil, Strict)
	require.NoError(t, err)
	assert.Equal(t, 10, fl.NumFaces)
	assert.Equal(t, 1, fl.NumShapes)
	assert.Equal(t, []int{4}, fl.ShapeSizes)
	assert.Equal(t, []int{10}, fl.ShapeCounts)
	assert.Equal(t, 40, fl.NumFlatNodes)
	assert.Len(t, fl.Nodes, 40)
	assert.Len(t, fl.ZoneNumbers, 10)
	// The x = 1 plane holds nodes 1, 4, 7 and 10
	assert.Equal(t, 0, copiesOf(fl, 1, 4, 7, 10))
	assert.Equal(t, map[int]int{4: 10}, fl.CountBySize())
}

func TestExtract_BlockOfHexes(t *testing.T) {
	nodes, nn := hexGrid(3, 2, 2, false, 0)
	fl, err := ExtractBasic(nodes, nn, 0, []int{8}, []int{12}, nil, Strict)
	require.NoError(t, err)
	assert.Equal(t, 2*(3*2+2*2+3*2), fl.NumFaces)
}

func TestExtract_ClosedMesh(t *testing.T) {
	{ // Periodic block, every face has a twin
		nodes, nn := hexGrid(3, 3, 3, true, 0)
		fl, err := ExtractBasic(nodes, nn, 0, []int{8}, []int{27}, repeat(5, 27), Strict)
		require.NoError(t, err)
		assert.Equal(t, 0, fl.NumFaces)
		assert.Equal(t, 0, fl.NumShapes)
		assert.Empty(t, fl.Nodes)
		assert.Empty(t, fl.ZoneNumbers)
		assert.Equal(t, 3, fl.Dimension)
	}
	{ // A hexahedron glued to its own mirror image
		nodes := []int{0, 1, 2, 3, 4, 5, 6, 7, 4, 5, 6, 7, 0, 1, 2, 3}
		fl, err := ExtractBasic(nodes, 8, 0, []int{8}, []int{2}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 0, fl.NumFaces)
	}
	{ // Uniform material gives the same answer under every method
		nodes, nn := hexGrid(3, 3, 3, true, 1)
		for _, bm := range []BoundaryMethod{CleanOnly, CleanOrMixedAsymmetric, CleanOrMixedSymmetric} {
			fl, err := ExtractBasic(nodes, nn+1, 1, []int{8}, []int{27}, repeat(2, 27), bm)
			require.NoError(t, err)
			assert.Equal(t, 0, fl.NumFaces, bm.String())
		}
	}
}

func TestExtract_OtherSolids(t *testing.T) {
	{ // Two tetrahedra sharing a triangle
		fl, err := ExtractBasic([]int{0, 1, 2, 3, 1, 2, 3, 4}, 5, 0, []int{4}, []int{2}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{3: 6}, fl.CountBySize())
		assert.Equal(t, 0, copiesOf(fl, 1, 2, 3))
	}
	{ // Two prisms sharing a quad
		fl, err := ExtractBasic([]int{0, 1, 2, 3, 4, 5, 3, 2, 6, 7, 4, 5}, 8, 0,
			[]int{6}, []int{2}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{3: 4, 4: 4}, fl.CountBySize())
		assert.Equal(t, 0, copiesOf(fl, 2, 3, 4, 5))
	}
	{ // Pyramid capping the top face of a hexahedron
		var (
			hex = []int{0, 1, 3, 2, 4, 5, 7, 6}
			pyr = []int{4, 6, 7, 5, 8}
		)
		fl, err := ExtractBasic(append(hex, pyr...), 9, 0, []int{8, 5}, []int{1, 1}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 9, fl.NumFaces)
		assert.Equal(t, 2, fl.NumShapes)
		assert.Equal(t, map[int]int{3: 4, 4: 5}, fl.CountBySize())
		assert.Equal(t, 0, copiesOf(fl, 4, 5, 6, 7))
		for i, f := range fl.Faces() {
			if len(f.Nodes) == 3 {
				assert.Equal(t, 1, f.Zone, "face %d", i)
			} else {
				assert.Equal(t, 0, f.Zone, "face %d", i)
			}
		}
	}
}

func TestExtract_GhostZones(t *testing.T) {
	var (
		core, _  = hexGrid(2, 1, 1, false, 0)
		ghost    = []int{100, 101, 102, 103, 104, 105, 106, 107}
		base, _  = ExtractBasic(core, 108, 0, []int{8}, []int{2}, nil, Strict)
		baseSet  = faceMultiset(base)
		hexTypes = []ShapeType{Hex}
	)
	{ // Trailing ghost zones that touch nothing
		nodes := append(append([]int(nil), core...), ghost...)
		fl, err := Extract(nodes, 108, 0, 1, 0, hexTypes, []int{8}, []int{3}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, baseSet, faceMultiset(fl))
	}
	{ // Leading ghost zones shift the traversal index only
		nodes := append(append([]int(nil), ghost...), core...)
		fl, err := Extract(nodes, 108, 1, 0, 0, hexTypes, []int{8}, []int{3}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, baseSet, shiftedZones(fl, -1))
	}
	{ // A ghost neighbor still cancels the real zone's face
		nodes, nn := hexGrid(3, 1, 1, false, 0)
		fl, err := Extract(nodes, nn, 0, 1, 0, hexTypes, []int{8}, []int{3}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 9, fl.NumFaces)
		for _, zone := range fl.ZoneNumbers {
			assert.Contains(t, []int{0, 1}, zone)
		}
	}
	{ // Ghosts on both sides leave only the four free sides of the middle zone
		nodes, nn := hexGrid(3, 1, 1, false, 1)
		fl, err := Extract(nodes, nn+1, 1, 1, 1, hexTypes, []int{8}, []int{3}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 4, fl.NumFaces)
		assert.Equal(t, []int{2, 2, 2, 2}, fl.ZoneNumbers)
	}
	{ // Every zone a ghost
		nodes, nn := hexGrid(2, 1, 1, false, 0)
		fl, err := Extract(nodes, nn, 1, 1, 0, hexTypes, []int{8}, []int{2}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 0, fl.NumFaces)
	}
}

// shiftedZones is faceMultiset with every zone number moved by d
func shiftedZones(fl *FaceList, d int) (set map[string]int) {
	set = make(map[string]int)
	for _, f := range fl.Faces() {
		set[faceKey(f.Nodes, f.Zone+d)]++
	}
	return
}

func TestExtract_MaterialBoundary(t *testing.T) {
	var (
		nodes, nn = hexGrid(2, 1, 1, false, 0)
		shared    = []int{1, 4, 7, 10}
	)
	type tc struct {
		method      BoundaryMethod
		copies, all int
	}
	cases := []tc{
		{Strict, 0, 10},
		{CleanOnly, 2, 12},
		{CleanOrMixedAsymmetric, 1, 11},
		{CleanOrMixedSymmetric, 2, 12},
	}
	for _, mats := range [][]int{{1, -1}, {-1, 1}} {
		cleanZone := 0
		if mats[0] < 0 {
			cleanZone = 1
		}
		for _, c := range cases {
			fl, err := ExtractBasic(nodes, nn, 0, []int{8}, []int{2}, mats, c.method)
			require.NoError(t, err)
			assert.Equal(t, c.copies, copiesOf(fl, shared...), "%s %v", c.method, mats)
			assert.Equal(t, c.all, fl.NumFaces, "%s %v", c.method, mats)
			if c.method != CleanOrMixedAsymmetric {
				continue
			}
			// The clean side owns the only copy
			for _, f := range fl.Faces() {
				if sameNodeSet(f.Nodes, shared) {
					assert.Equal(t, cleanZone, f.Zone, "%v", mats)
				}
			}
		}
	}
	{ // Two clean materials are never merged by the asymmetric method
		fl, err := ExtractBasic(nodes, nn, 0, []int{8}, []int{2}, []int{1, 2}, CleanOrMixedAsymmetric)
		require.NoError(t, err)
		assert.Equal(t, 2, copiesOf(fl, shared...))
	}
}

func sameNodeSet(a, b []int) bool {
	fl := &FaceList{NumFaces: 1, NumShapes: 1, Nodes: a, ShapeSizes: []int{len(a)},
		ShapeCounts: []int{1}, ZoneNumbers: []int{0}}
	return copiesOf(fl, b...) == 1
}

func TestExtract_OriginShift(t *testing.T) {
	var (
		n0, nn = hexGrid(2, 2, 1, false, 0)
		n1, _  = hexGrid(2, 2, 1, false, 1)
		mats   = []int{1, 1, -2, 3}
	)
	for _, bm := range []BoundaryMethod{Strict, CleanOnly, CleanOrMixedAsymmetric, CleanOrMixedSymmetric} {
		fl0, err := ExtractBasic(n0, nn, 0, []int{8}, []int{4}, mats, bm)
		require.NoError(t, err)
		fl1, err := ExtractBasic(n1, nn+1, 1, []int{8}, []int{4}, mats, bm)
		require.NoError(t, err)
		assert.Equal(t, fl0.NumFaces, fl1.NumFaces)
		assert.Equal(t, fl0.CountBySize(), fl1.CountBySize())
		assert.Equal(t, shiftedMultiset(fl0, 1), faceMultiset(fl1), bm.String())
		assert.Equal(t, 1, fl1.Origin)
	}
}

func TestExtract_PolygonalZones(t *testing.T) {
	{ // Planar zones are exposed whole
		fl, err := Extract([]int{0, 1, 2, 1, 3, 4, 2}, 5, 0, 0, 0,
			[]ShapeType{Triangle, Quad}, []int{3, 4}, []int{1, 1}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 2, fl.NumFaces)
		assert.Equal(t, 2, fl.Dimension)
		assert.Equal(t, map[int]int{3: 1, 4: 1}, fl.CountBySize())
	}
	{ // The same polygon seen from both sides cancels
		fl, err := Extract([]int{5, 2, 8, 1, 6, 6, 1, 8, 2, 5}, 9, 0, 0, 0,
			[]ShapeType{Polygon}, []int{5}, []int{2}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 0, fl.NumFaces)
	}
	{ // Beams over the same node pair cancel regardless of direction
		fl, err := Extract([]int{3, 8, 3, 8, 8, 9}, 10, 0, 0, 0,
			[]ShapeType{Beam}, []int{2}, []int{3}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 1, fl.NumFaces)
		assert.Equal(t, []int{8, 9}, fl.Nodes)
		assert.Equal(t, []int{2}, fl.ZoneNumbers)
		assert.Equal(t, 2, fl.Dimension)
	}
}

func TestExtract_Polyhedron(t *testing.T) {
	var (
		grid, nn = hexGrid(2, 1, 1, false, 0)
		enc      = []int{6}
	)
	for _, f := range EmitZoneFaces(Hex, grid[:8]) {
		enc = append(enc, len(f))
		enc = append(enc, f...)
	}
	nodes := append(append([]int(nil), enc...), grid[8:]...)
	for _, size := range []int{len(enc), 0} {
		fl, err := Extract(nodes, nn, 0, 0, 0, []ShapeType{Polyhedron, Hex},
			[]int{size, 8}, []int{1, 1}, nil, Strict)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, 10, fl.NumFaces)
		assert.Equal(t, 0, copiesOf(fl, 1, 4, 7, 10))
		assert.Equal(t, 3, fl.Dimension)
	}
	{ // Truncated encoding
		_, err := Extract(enc[:10], nn, 0, 0, 0, []ShapeType{Polyhedron}, []int{0}, []int{1}, nil, Strict)
		assert.True(t, errors.Is(err, ErrShortNodeList))
	}
}

func TestExtract_UnsupportedShapes(t *testing.T) {
	var (
		hex, nn = hexGrid(1, 1, 1, false, 0)
		nodes   = append([]int{3, 2, 1}, hex...)
		types   = []ShapeType{Other, Hex}
	)
	{ // Skipped, the cursor still advances over the zone
		fl, err := Extract(nodes, nn, 0, 0, 0, types, []int{3, 8}, []int{1, 1}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 6, fl.NumFaces)
		assert.Equal(t, repeat(1, 6), fl.ZoneNumbers)
	}
	{ // Unknown tags behave like Other
		fl, err := Extract(nodes, nn, 0, 0, 0, []ShapeType{ShapeType(99), Hex},
			[]int{3, 8}, []int{1, 1}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 6, fl.NumFaces)
	}
	{ // Basic form sends unknown sizes to Other
		fl, err := ExtractBasic(append([]int{9, 9, 9, 9, 9, 9, 9}, hex...), nn+10, 0,
			[]int{7, 8}, []int{1, 1}, nil, Strict)
		require.NoError(t, err)
		assert.Equal(t, 6, fl.NumFaces)
	}
	{ // Strict extractor refuses them
		ex := NewExtractor(Options{Unsupported: FailUnsupported})
		_, err := ex.General(nodes, nn, 0, 0, 0, types, []int{3, 8}, []int{1, 1}, nil, Strict)
		assert.True(t, errors.Is(err, ErrUnsupportedShape))
	}
}

func TestExtract_Empty(t *testing.T) {
	fl, err := ExtractBasic(nil, 0, 0, nil, nil, nil, Strict)
	require.NoError(t, err)
	require.NotNil(t, fl)
	assert.Equal(t, 0, fl.NumFaces)
	assert.Equal(t, 0, fl.NumShapes)
	assert.Equal(t, 0, fl.NumFlatNodes)
	assert.Empty(t, fl.Faces())

	fl, err = ExtractBasic(nil, 0, 1, []int{8}, []int{0}, nil, CleanOnly)
	require.NoError(t, err)
	assert.Equal(t, 0, fl.NumFaces)
}

func TestExtract_InvalidInput(t *testing.T) {
	hex, nn := hexGrid(1, 1, 1, false, 0)
	type tc struct {
		name string
		run  func() error
		want error
	}
	cases := []tc{
		{"catalog lengths", func() error {
			_, err := ExtractBasic(hex, nn, 0, []int{8}, []int{1, 1}, nil, Strict)
			return err
		}, ErrInvalidCatalog},
		{"general lengths", func() error {
			_, err := Extract(hex, nn, 0, 0, 0, []ShapeType{Hex, Tet}, []int{8}, []int{1}, nil, Strict)
			return err
		}, ErrInvalidCatalog},
		{"short hex", func() error {
			_, err := Extract(hex, nn, 0, 0, 0, []ShapeType{Hex}, []int{6}, []int{1}, nil, Strict)
			return err
		}, ErrInvalidCatalog},
		{"negative count", func() error {
			_, err := ExtractBasic(hex, nn, 0, []int{8}, []int{-1}, nil, Strict)
			return err
		}, ErrInvalidCatalog},
		{"short node list", func() error {
			_, err := ExtractBasic(hex, nn, 0, []int{8}, []int{2}, nil, Strict)
			return err
		}, ErrShortNodeList},
		{"origin", func() error {
			_, err := ExtractBasic(hex, nn, 2, []int{8}, []int{1}, nil, Strict)
			return err
		}, ErrInvalidOrigin},
		{"ghost range", func() error {
			_, err := Extract(hex, nn, 1, 1, 0, []ShapeType{Hex}, []int{8}, []int{1}, nil, Strict)
			return err
		}, ErrInvalidGhostRange},
		{"negative ghost offset", func() error {
			_, err := Extract(hex, nn, -1, 0, 0, []ShapeType{Hex}, []int{8}, []int{1}, nil, Strict)
			return err
		}, ErrInvalidGhostRange},
		{"materials", func() error {
			_, err := ExtractBasic(hex, nn, 0, []int{8}, []int{1}, nil, CleanOnly)
			return err
		}, ErrMissingMaterials},
		{"method out of range", func() error {
			_, err := ExtractBasic(hex, nn, 0, []int{8}, []int{1}, nil, BoundaryMethod(7))
			return err
		}, ErrInvalidBoundaryMethod},
	}
	for _, c := range cases {
		err := c.run()
		assert.True(t, errors.Is(err, c.want), "%s: got %v", c.name, err)
	}
}
