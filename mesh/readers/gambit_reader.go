package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/facelist/mesh"
)

// gambitElementTypeMap maps Gambit NTYPE codes to our ElementType
var gambitElementTypeMap = map[int]mesh.ElementType{
	1: mesh.Line,     // Edge
	2: mesh.Quad,     // Quadrilateral
	3: mesh.Triangle, // Triangle
	4: mesh.Hex,      // Brick
	5: mesh.Prism,    // Wedge
	6: mesh.Tet,      // Tetrahedron
	7: mesh.Pyramid,  // Pyramid
}

// Gambit numbers brick and pyramid corners lexicographically, entry i is the
// Gambit corner that becomes corner i in file order
var gambitCornerOrder = map[mesh.ElementType][]int{
	mesh.Hex:     {0, 1, 3, 2, 4, 5, 7, 6},
	mesh.Pyramid: {0, 1, 3, 2, 4},
}

// ReadGambitNeutral reads a Gambit neutral file (.neu)
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	msh := mesh.NewMesh()
	scanner := bufio.NewScanner(file)

	// Control variables from header
	var numnp, nelem, ngrps, nbsets int
	var hasControl bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(scanner.Text())
			if len(values) < 4 {
				return nil, fmt.Errorf("invalid control info: %s", scanner.Text())
			}
			ints, err := atoiAll(values[:4])
			if err != nil {
				return nil, fmt.Errorf("invalid control info: %v", err)
			}
			numnp, nelem, ngrps, nbsets = ints[0], ints[1], ints[2], ints[3]
			hasControl = true
			break
		}
	}
	if !hasControl {
		return nil, fmt.Errorf("missing CONTROL INFO section")
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "ENDOFSECTION":
			continue

		case strings.Contains(line, "NODAL COORDINATES"):
			if err = readGambitNodes(scanner, msh, numnp); err != nil {
				return nil, err
			}

		case strings.Contains(line, "ELEMENTS/CELLS"):
			if err = readGambitElements(scanner, msh, nelem); err != nil {
				return nil, err
			}

		case strings.Contains(line, "ELEMENT GROUP"):
			if err = readGambitGroup(scanner, msh); err != nil {
				return nil, err
			}

		case strings.Contains(line, "BOUNDARY CONDITIONS"):
			readGambitBoundary(scanner, msh, len(msh.BoundaryTags))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if len(msh.ElementGroups) > ngrps || len(msh.BoundaryTags) > nbsets {
		return nil, fmt.Errorf("found %d groups and %d boundary sets, header declares %d and %d",
			len(msh.ElementGroups), len(msh.BoundaryTags), ngrps, nbsets)
	}

	// Group materials become the element materials
	if len(msh.ElementGroups) > 0 {
		msh.Materials = msh.MaterialList()
	}
	msh.BuildConnectivity()
	return msh, nil
}

func atoiAll(fields []string) (ints []int, err error) {
	ints = make([]int, len(fields))
	for i, f := range fields {
		if ints[i], err = strconv.Atoi(f); err != nil {
			return
		}
	}
	return
}

func readGambitNodes(scanner *bufio.Scanner, msh *mesh.Mesh, numnp int) (err error) {
	for i := 0; i < numnp; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		var nodeID int
		if nodeID, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("invalid node ID: %v", err)
		}
		coords := make([]float64, 3)
		for j := 1; j < len(fields) && j <= 3; j++ {
			if coords[j-1], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return fmt.Errorf("node %d: invalid coordinate: %v", nodeID, err)
			}
		}
		msh.AddNode(nodeID, coords)
	}
	return
}

func readGambitElements(scanner *bufio.Scanner, msh *mesh.Mesh, nelem int) (err error) {
	for i := 0; i < nelem; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		head, err := atoiAll(fields[:3])
		if err != nil {
			return fmt.Errorf("invalid element line: %v", err)
		}
		elemID, gambitType, numNodes := head[0], head[1], head[2]
		// Long node lists continue on the following lines
		for len(fields) < 3+numNodes {
			if !scanner.Scan() {
				return fmt.Errorf("unexpected EOF reading element %d", elemID)
			}
			fields = append(fields, strings.Fields(scanner.Text())...)
		}
		etype, ok := gambitElementTypeMap[gambitType]
		if !ok || numNodes != etype.GetNumNodes() {
			return fmt.Errorf("element %d: unsupported type %d with %d nodes", elemID, gambitType, numNodes)
		}
		nodeIDs, err := atoiAll(fields[3 : 3+numNodes])
		if err != nil {
			return fmt.Errorf("element %d: invalid node ID: %v", elemID, err)
		}
		if order, ok := gambitCornerOrder[etype]; ok {
			reordered := make([]int, numNodes)
			for j, c := range order {
				reordered[j] = nodeIDs[c]
			}
			nodeIDs = reordered
		}
		if err = msh.AddElement(etype, nil, nodeIDs); err != nil {
			return err
		}
	}
	return
}

// readGambitGroup reads one ELEMENT GROUP section
func readGambitGroup(scanner *bufio.Scanner, msh *mesh.Mesh) (err error) {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading element group")
	}
	var groupID, numElems, materialID, nflags int
	parts := strings.Fields(scanner.Text())
	for i := 0; i+1 < len(parts); i++ {
		v, _ := strconv.Atoi(parts[i+1])
		switch parts[i] {
		case "GROUP:":
			groupID = v
		case "ELEMENTS:":
			numElems = v
		case "MATERIAL:":
			materialID = v
		case "NFLAGS:":
			nflags = v
		}
	}

	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading group %d name", groupID)
	}
	group := &mesh.ElementGroup{
		Dimension:  3,
		Tag:        groupID,
		Name:       strings.TrimSpace(scanner.Text()),
		MaterialID: materialID,
		Elements:   []int{},
	}
	if nflags > 0 {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading group %d flags", groupID)
		}
		if group.Flags, err = atoiAll(strings.Fields(scanner.Text())); err != nil {
			return fmt.Errorf("group %d flags: %v", groupID, err)
		}
	}
	msh.ElementGroups[groupID] = group

	for len(group.Elements) < numElems {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading group %d elements", groupID)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "ENDOFSECTION" {
			break
		}
		for _, field := range strings.Fields(line) {
			elemID, err := strconv.Atoi(field)
			if err != nil || elemID < 1 || elemID > msh.NumElements {
				return fmt.Errorf("group %d: invalid element %q", groupID, field)
			}
			// Elements are 1-indexed in file, 0-indexed in mesh
			msh.ElementTags[elemID-1] = []int{groupID}
			group.Elements = append(group.Elements, elemID-1)
		}
	}
	return
}

// readGambitBoundary reads one BOUNDARY CONDITIONS section. Element/face
// entries become boundary elements, nodal entries are skipped.
func readGambitBoundary(scanner *bufio.Scanner, msh *mesh.Mesh, bcIdx int) {
	if !scanner.Scan() {
		return
	}
	// NAME ITYPE NENTRY NVALUES IBCODE1...
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return
	}
	bcName := parts[0]
	itype, _ := strconv.Atoi(parts[1])
	nentry, _ := strconv.Atoi(parts[2])
	msh.BoundaryTags[bcIdx] = bcName

	for i := 0; i < nentry; i++ {
		if !scanner.Scan() {
			return
		}
		if itype != 1 {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		elemID, _ := strconv.Atoi(fields[0])
		faceID, _ := strconv.Atoi(fields[2])
		elemIdx := elemID - 1
		if elemIdx < 0 || elemIdx >= msh.NumElements {
			continue
		}
		faceVerts := mesh.GetElementFaces(msh.ElementTypes[elemIdx], msh.EtoV[elemIdx])
		if faceID < 1 || faceID > len(faceVerts) {
			continue
		}
		nodes := faceVerts[faceID-1]
		btype := mesh.Triangle
		if len(nodes) == 4 {
			btype = mesh.Quad
		} else if len(nodes) == 2 {
			btype = mesh.Line
		}
		msh.AddBoundaryElement(bcName, mesh.BoundaryElement{
			ElementType:   btype,
			Nodes:         nodes,
			ParentElement: elemIdx,
			ParentFace:    faceID - 1,
		})
	}
}
