package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/facelist/mesh"
)

// gmshElementType22 maps the linear Gmsh element types to our ElementType
var gmshElementType22 = map[int]mesh.ElementType{
	1: mesh.Line,
	2: mesh.Triangle,
	3: mesh.Quad,
	4: mesh.Tet,
	5: mesh.Hex,
	6: mesh.Prism,
	7: mesh.Pyramid,
}

type gmshElement struct {
	etype   mesh.ElementType
	tags    []int
	nodeIDs []int
}

// ReadGmsh22 reads an ASCII Gmsh MSH file format version 2.2. Elements of
// lower dimension than the mesh become boundary elements named after their
// physical group.
func ReadGmsh22(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		scanner  = bufio.NewScanner(file)
		msh      = mesh.NewMesh()
		elements []gmshElement
		version  string
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue

		case "$MeshFormat":
			if version, err = readMeshFormat22(scanner); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err = readPhysicalNames(scanner, msh); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err = readNodes22(scanner, msh); err != nil {
				return nil, err
			}

		case "$Elements":
			if elements, err = readElements22(scanner); err != nil {
				return nil, err
			}

		default:
			// Skip data and any other section
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				skipSection(scanner, "$End"+line[1:])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if version == "" {
		return nil, fmt.Errorf("could not find $MeshFormat section")
	}

	dim := 0
	for _, e := range elements {
		if d := e.etype.GetDimension(); d > dim {
			dim = d
		}
	}
	for _, e := range elements {
		if e.etype.GetDimension() < dim {
			if err = addBoundaryElement22(msh, e); err != nil {
				return nil, err
			}
			continue
		}
		if err = msh.AddElement(e.etype, e.tags, e.nodeIDs); err != nil {
			return nil, err
		}
	}
	for i, tags := range msh.ElementTags {
		if group, ok := msh.ElementGroups[tags[0]]; ok {
			group.Elements = append(group.Elements, i)
		}
	}

	msh.BuildConnectivity()
	return msh, nil
}

func skipSection(scanner *bufio.Scanner, endMarker string) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return
		}
	}
}

// readMeshFormat22 reads the MeshFormat section, refusing anything but
// ASCII version 2
func readMeshFormat22(scanner *bufio.Scanner) (version string, err error) {
	if !scanner.Scan() {
		return "", fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return "", fmt.Errorf("invalid MeshFormat line")
	}
	version = parts[0]
	if !strings.HasPrefix(version, "2.") {
		return "", fmt.Errorf("unsupported Gmsh format version: %s", version)
	}
	if parts[1] != "0" {
		return "", fmt.Errorf("binary Gmsh files are not supported")
	}
	skipSection(scanner, "$EndMeshFormat")
	return
}

// readPhysicalNames reads physical group names
func readPhysicalNames(scanner *bufio.Scanner, msh *mesh.Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}
	numNames, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid PhysicalNames count: %v", err)
	}
	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			continue
		}
		dimension, _ := strconv.Atoi(parts[0])
		tag, _ := strconv.Atoi(parts[1])
		name := strings.Trim(strings.Join(parts[2:], " "), "\"")
		// The physical tag doubles as the material of its elements
		msh.ElementGroups[tag] = &mesh.ElementGroup{
			Dimension:  dimension,
			Tag:        tag,
			Name:       name,
			MaterialID: tag,
			Elements:   []int{},
		}
	}
	skipSection(scanner, "$EndPhysicalNames")
	return nil
}

// readNodes22 reads nodes in v2.2 format
func readNodes22(scanner *bufio.Scanner, msh *mesh.Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid Nodes count: %v", err)
	}
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %v", err)
		}
		coords := make([]float64, 3)
		for j := range coords {
			if coords[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return fmt.Errorf("node %d: invalid coordinate: %v", nodeID, err)
			}
		}
		msh.AddNode(nodeID, coords)
	}
	skipSection(scanner, "$EndNodes")
	return nil
}

// readElements22 reads elements in v2.2 format, skipping element types
// without a linear counterpart
func readElements22(scanner *bufio.Scanner) (elements []gmshElement, err error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in Elements")
	}
	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("invalid Elements count: %v", err)
	}
	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		head, err := atoiAll(parts[:3])
		if err != nil {
			return nil, fmt.Errorf("invalid element line: %v", err)
		}
		elemID, elemType, numTags := head[0], head[1], head[2]
		etype, ok := gmshElementType22[elemType]
		if !ok {
			continue
		}
		nodeStart := 3 + numTags
		if len(parts) < nodeStart+etype.GetNumNodes() {
			return nil, fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, etype.GetNumNodes(), len(parts)-nodeStart)
		}
		e := gmshElement{etype: etype}
		if e.tags, err = atoiAll(parts[3:nodeStart]); err != nil {
			return nil, fmt.Errorf("element %d tags: %v", elemID, err)
		}
		if e.nodeIDs, err = atoiAll(parts[nodeStart : nodeStart+etype.GetNumNodes()]); err != nil {
			return nil, fmt.Errorf("element %d nodes: %v", elemID, err)
		}
		elements = append(elements, e)
	}
	skipSection(scanner, "$EndElements")
	return
}

func addBoundaryElement22(msh *mesh.Mesh, e gmshElement) error {
	nodes := make([]int, len(e.nodeIDs))
	for i, id := range e.nodeIDs {
		idx, ok := msh.GetNodeIndex(id)
		if !ok {
			return fmt.Errorf("boundary element references unknown node %d", id)
		}
		nodes[i] = idx
	}
	var physicalTag int
	if len(e.tags) > 0 {
		physicalTag = e.tags[0]
	}
	tagName := fmt.Sprintf("boundary_%d", physicalTag)
	if group, ok := msh.ElementGroups[physicalTag]; ok {
		tagName = group.Name
	}
	msh.AddBoundaryElement(tagName, mesh.BoundaryElement{
		ElementType:   e.etype,
		Nodes:         nodes,
		ParentElement: -1, // Not tracked in v2.2
		ParentFace:    -1,
	})
	return nil
}
