package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/facelist/mesh"
)

// su2ElementTypeMap maps SU2/VTK element type identifiers to our ElementType
var su2ElementTypeMap = map[int]mesh.ElementType{
	3:  mesh.Line,     // VTK_LINE
	5:  mesh.Triangle, // VTK_TRIANGLE
	9:  mesh.Quad,     // VTK_QUAD
	10: mesh.Tet,      // VTK_TETRA
	12: mesh.Hex,      // VTK_HEXAHEDRON
	13: mesh.Prism,    // VTK_WEDGE
	14: mesh.Pyramid,  // VTK_PYRAMID
}

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	msh := mesh.NewMesh()
	scanner := bufio.NewScanner(file)

	var (
		ndime              int
		hasNDIME, hasNPOIN bool
	)
	nextLine := func() (line string, ok bool) {
		for scanner.Scan() {
			line = strings.TrimSpace(scanner.Text())
			// Skip comments (text after %)
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = strings.TrimSpace(line[:idx])
			}
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			if ndime, err = headerValue(line, "NDIME="); err != nil {
				return nil, err
			}
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}

		case strings.HasPrefix(line, "NPOIN="):
			hasNPOIN = true
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= section before NDIME=")
			}
			var npoin int
			if npoin, err = headerValue(line, "NPOIN="); err != nil {
				return nil, err
			}
			for i := 0; i < npoin; i++ {
				if line, ok = nextLine(); !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(line)
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				coords := make([]float64, 3) // Always store 3D coordinates
				for j := 0; j < ndime; j++ {
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
				// Node ID is implicit (0-based), a trailing index is ignored
				msh.AddNode(i, coords)
			}

		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			if nelem, err = headerValue(line, "NELEM="); err != nil {
				return nil, err
			}
			for i := 0; i < nelem; i++ {
				if line, ok = nextLine(); !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				etype, nodes, err := parseSU2Element(line)
				if err != nil {
					return nil, fmt.Errorf("element %d: %v", i, err)
				}
				if err = msh.AddElement(etype, nil, nodes); err != nil {
					return nil, err
				}
			}

		case strings.HasPrefix(line, "NMARK="):
			var nmark int
			if nmark, err = headerValue(line, "NMARK="); err != nil {
				return nil, err
			}
			for i := 0; i < nmark; i++ {
				if err = readSU2Marker(nextLine, msh, i); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}

	msh.BuildConnectivity()
	return msh, nil
}

func headerValue(line, prefix string) (v int, err error) {
	fields := strings.Fields(strings.TrimPrefix(line, prefix))
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing value in %q", line)
	}
	if v, err = strconv.Atoi(fields[0]); err != nil {
		return 0, fmt.Errorf("invalid value in %q: %v", line, err)
	}
	return
}

func parseSU2Element(line string) (etype mesh.ElementType, nodes []int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		err = fmt.Errorf("invalid element line")
		return
	}
	su2Type, err := strconv.Atoi(fields[0])
	if err != nil {
		err = fmt.Errorf("invalid element type: %v", err)
		return
	}
	etype, ok := su2ElementTypeMap[su2Type]
	if !ok {
		err = fmt.Errorf("unknown element type: %d", su2Type)
		return
	}
	numNodes := etype.GetNumNodes()
	if len(fields) < numNodes+1 {
		err = fmt.Errorf("element type %v expects %d nodes, got %d fields",
			etype, numNodes, len(fields)-1)
		return
	}
	nodes = make([]int, numNodes)
	for j := 0; j < numNodes; j++ {
		if nodes[j], err = strconv.Atoi(fields[1+j]); err != nil {
			err = fmt.Errorf("invalid node index: %v", err)
			return
		}
	}
	return
}

func readSU2Marker(nextLine func() (string, bool), msh *mesh.Mesh, i int) (err error) {
	markerLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("unexpected EOF reading marker %d", i)
	}
	if !strings.HasPrefix(markerLine, "MARKER_TAG=") {
		return fmt.Errorf("expected MARKER_TAG=, got: %s", markerLine)
	}
	tagName := strings.TrimSpace(strings.TrimPrefix(markerLine, "MARKER_TAG="))

	elemLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("unexpected EOF reading marker elements for %s", tagName)
	}
	if !strings.HasPrefix(elemLine, "MARKER_ELEMS=") {
		return fmt.Errorf("invalid MARKER_ELEMS line: %s", elemLine)
	}
	nMarkerElems, err := headerValue(elemLine, "MARKER_ELEMS=")
	if err != nil {
		return
	}
	msh.BoundaryTags[i] = tagName

	for j := 0; j < nMarkerElems; j++ {
		line, ok := nextLine()
		if !ok {
			return fmt.Errorf("unexpected EOF reading boundary elements")
		}
		btype, nodes, err := parseSU2Element(line)
		if err != nil {
			return fmt.Errorf("marker %s element %d: %v", tagName, j, err)
		}
		if btype.GetDimension() > 2 {
			return fmt.Errorf("marker %s element %d has volume type %s", tagName, j, btype)
		}
		for k, id := range nodes {
			if nodes[k], ok = msh.GetNodeIndex(id); !ok {
				return fmt.Errorf("marker %s references unknown node %d", tagName, id)
			}
		}
		msh.AddBoundaryElement(tagName, mesh.BoundaryElement{
			ElementType:   btype,
			Nodes:         nodes,
			ParentElement: -1, // Not tracked in SU2 format
			ParentFace:    -1,
		})
	}
	return
}
