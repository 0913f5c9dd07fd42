package mesh

// testElement is an element given by vertex index, tagged with a group
type testElement struct {
	etype ElementType
	verts []int
	tag   int
}

func buildTestMesh(coords [][]float64, elems []testElement) (m *Mesh) {
	m = NewMesh()
	for i, c := range coords {
		m.AddNode(i+1, c)
	}
	for _, e := range elems {
		ids := make([]int, len(e.verts))
		for i, v := range e.verts {
			ids[i] = v + 1
		}
		if err := m.AddElement(e.etype, []int{e.tag}, ids); err != nil {
			panic(err)
		}
	}
	m.BuildConnectivity()
	return
}

var cubeCoords = [][]float64{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	{2, 0, 0}, {2, 1, 0}, {2, 0, 1}, {2, 1, 1},
	{0.5, 0.5, 2},
}

// hexAndPrisms is a unit hexahedron at x in [0,1] next to a unit cube at
// x in [1,2] split along its xy diagonal into two prisms
func hexAndPrisms() *Mesh {
	return buildTestMesh(cubeCoords, []testElement{
		{Hex, []int{0, 1, 2, 3, 4, 5, 6, 7}, 1},
		{Prism, []int{1, 8, 9, 5, 10, 11}, 2},
		{Prism, []int{1, 9, 2, 5, 11, 6}, 2},
	})
}

// hexAndPyramid caps the top of the unit hexahedron with a pyramid
func hexAndPyramid() *Mesh {
	return buildTestMesh(cubeCoords, []testElement{
		{Hex, []int{0, 1, 2, 3, 4, 5, 6, 7}, 1},
		{Pyramid, []int{4, 5, 6, 7, 12}, 1},
	})
}

// twoTets share the face opposite the origin corner
func twoTets() *Mesh {
	return buildTestMesh([][]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
	}, []testElement{
		{Tet, []int{0, 1, 2, 3}, 0},
		{Tet, []int{1, 2, 3, 4}, 0},
	})
}
