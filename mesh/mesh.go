package mesh

import (
	"fmt"
	"io"
	"sort"
)

// Face represents a face of an element
type Face struct {
	Vertices []int // Sorted vertex indices
	Element  int   // Parent element
	LocalID  int   // Local face ID within element
}

// ElementGroup is a named set of elements sharing a physical tag
type ElementGroup struct {
	Dimension  int
	Tag        int
	Name       string
	MaterialID int
	Flags      []int
	Elements   []int
}

// BoundaryElement is a lower dimensional element carried by a boundary tag
type BoundaryElement struct {
	ElementType   ElementType
	Nodes         []int
	ParentElement int // -1 when the file does not record it
	ParentFace    int
}

// Mesh represents a complete unstructured mesh with all connectivity
type Mesh struct {
	// Geometry
	Vertices  [][]float64 // Vertex coordinates [nvertices][3]
	NodeIDMap map[int]int // File node ID to vertex index

	// Element data
	EtoV          [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes  []ElementType // Element type for each element
	ElementTags   [][]int       // Physical group/tag for each element
	Materials     []int         // Per element material, nil when the file has none
	ElementGroups map[int]*ElementGroup

	// Connectivity (built during initialization)
	EToE [][]int // Element to element connectivity [nelems][nfaces_per_elem]
	EToF [][]int // Element to face connectivity [nelems][nfaces_per_elem]

	// Face data
	Faces            []Face         // All unique faces in mesh
	FaceMap          map[string]int // Map from sorted vertex string to face ID
	BoundaryTags     map[int]string // Boundary condition tags
	BoundaryElements map[string][]BoundaryElement

	// Mesh statistics
	NumElements int
	NumVertices int
	NumFaces    int
}

// NewMesh creates an empty mesh ready for a reader to fill
func NewMesh() *Mesh {
	return &Mesh{
		NodeIDMap:        make(map[int]int),
		ElementGroups:    make(map[int]*ElementGroup),
		FaceMap:          make(map[string]int),
		BoundaryTags:     make(map[int]string),
		BoundaryElements: make(map[string][]BoundaryElement),
	}
}

// AddNode appends a vertex known to the file as nodeID
func (m *Mesh) AddNode(nodeID int, coords []float64) {
	m.NodeIDMap[nodeID] = len(m.Vertices)
	m.Vertices = append(m.Vertices, coords)
	m.NumVertices = len(m.Vertices)
}

// GetNodeIndex maps a file node ID to its vertex index
func (m *Mesh) GetNodeIndex(nodeID int) (idx int, ok bool) {
	idx, ok = m.NodeIDMap[nodeID]
	return
}

// AddElement appends an element whose corners are given as file node IDs
func (m *Mesh) AddElement(etype ElementType, tags []int, nodeIDs []int) (err error) {
	if len(nodeIDs) != etype.GetNumNodes() {
		return fmt.Errorf("element %d of type %s has %d nodes, need %d",
			len(m.EtoV), etype, len(nodeIDs), etype.GetNumNodes())
	}
	nodes := make([]int, len(nodeIDs))
	for i, id := range nodeIDs {
		idx, ok := m.NodeIDMap[id]
		if !ok {
			return fmt.Errorf("element %d references unknown node %d", len(m.EtoV), id)
		}
		nodes[i] = idx
	}
	if len(tags) == 0 {
		tags = []int{0}
	}
	m.EtoV = append(m.EtoV, nodes)
	m.ElementTypes = append(m.ElementTypes, etype)
	m.ElementTags = append(m.ElementTags, tags)
	m.NumElements = len(m.EtoV)
	return
}

// AddBoundaryElement files a boundary element under its tag name
func (m *Mesh) AddBoundaryElement(tag string, be BoundaryElement) {
	m.BoundaryElements[tag] = append(m.BoundaryElements[tag], be)
}

// GetMeshDimension is the highest element dimension present
func (m *Mesh) GetMeshDimension() (dim int) {
	for _, et := range m.ElementTypes {
		if d := et.GetDimension(); d > dim {
			dim = d
		}
	}
	return
}

// MaterialList returns the material of every element. Explicit Materials
// win, then the MaterialID of the element's group, then 0.
func (m *Mesh) MaterialList() (mats []int) {
	mats = make([]int, m.NumElements)
	if len(m.Materials) == m.NumElements {
		copy(mats, m.Materials)
		return
	}
	for i := range mats {
		if len(m.ElementTags[i]) == 0 {
			continue
		}
		if group, ok := m.ElementGroups[m.ElementTags[i][0]]; ok {
			mats[i] = group.MaterialID
		}
	}
	return
}

func faceKey(verts []int) (sorted []int, key string) {
	sorted = make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	key = fmt.Sprintf("%v", sorted)
	return
}

// BuildConnectivity builds element-to-element and face connectivity. A face
// shared by more than two elements keeps its first two owners.
func (m *Mesh) BuildConnectivity() {
	m.NumElements = len(m.EtoV)
	m.NumVertices = len(m.Vertices)
	m.EToE = make([][]int, m.NumElements)
	m.EToF = make([][]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[string]int)
	owners := make(map[int]int) // number of elements seen per face

	for elemID := 0; elemID < m.NumElements; elemID++ {
		faceVertices := GetElementFaces(m.ElementTypes[elemID], m.EtoV[elemID])

		m.EToE[elemID] = make([]int, len(faceVertices))
		m.EToF[elemID] = make([]int, len(faceVertices))
		for i := range m.EToE[elemID] {
			m.EToE[elemID][i] = -1
			m.EToF[elemID][i] = -1
		}

		for localFaceID, faceVerts := range faceVertices {
			sorted, key := faceKey(faceVerts)
			if faceID, exists := m.FaceMap[key]; exists {
				m.EToF[elemID][localFaceID] = faceID
				owners[faceID]++
				if owners[faceID] > 2 {
					continue
				}
				face := &m.Faces[faceID]
				m.EToE[elemID][localFaceID] = face.Element
				m.EToE[face.Element][face.LocalID] = elemID
				continue
			}
			faceID := len(m.Faces)
			m.Faces = append(m.Faces, Face{
				Vertices: sorted,
				Element:  elemID,
				LocalID:  localFaceID,
			})
			m.FaceMap[key] = faceID
			m.EToF[elemID][localFaceID] = faceID
			owners[faceID] = 1
		}
	}
	m.NumFaces = len(m.Faces)
}

// NumBoundaryFaces counts element faces with no neighbor
func (m *Mesh) NumBoundaryFaces() (n int) {
	for i := range m.EToE {
		for _, neighbor := range m.EToE[i] {
			if neighbor < 0 {
				n++
			}
		}
	}
	return
}

// PrintStatistics writes a summary of the mesh to w
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Faces: %d\n", m.NumFaces)

	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	fmt.Fprintf(w, "  Element types:\n")
	for t := Line; t <= Pyramid; t++ {
		if count := typeCounts[t]; count > 0 {
			fmt.Fprintf(w, "    %s: %d\n", t, count)
		}
	}
	if len(m.ElementGroups) > 0 {
		fmt.Fprintf(w, "  Element groups: %d\n", len(m.ElementGroups))
	}
	if m.EToE != nil {
		fmt.Fprintf(w, "  Boundary faces: %d\n", m.NumBoundaryFaces())
	}
}
