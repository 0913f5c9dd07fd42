package facelist

import (
	"fmt"
)

// ShapeRun is a contiguous group of zones sharing one shape
type ShapeRun struct {
	Type  ShapeType
	Size  int // Nodes per zone, polyhedra count every entry of their encoding
	Count int // Number of zones in the run
}

// ZoneList is the zone connectivity of a mesh, segmented into shape runs
type ZoneList struct {
	Nodes      []int // Flat node identifiers, offset by Origin
	NumNodes   int   // Size of the node index space
	Origin     int   // 0 or 1
	LowOffset  int   // Number of leading ghost zones
	HighOffset int   // Number of trailing ghost zones
	Runs       []ShapeRun
}

// NewZoneList assembles a zone list from the aligned shape arrays of the
// general entry point
func NewZoneList(nodes []int, numNodes, lowOffset, highOffset, origin int,
	types []ShapeType, sizes, counts []int) (zl *ZoneList, err error) {
	if len(types) != len(sizes) || len(sizes) != len(counts) {
		err = fmt.Errorf("%w: %d shape types, %d shape sizes, %d shape counts",
			ErrInvalidCatalog, len(types), len(sizes), len(counts))
		return
	}
	zl = &ZoneList{
		Nodes:      nodes,
		NumNodes:   numNodes,
		Origin:     origin,
		LowOffset:  lowOffset,
		HighOffset: highOffset,
		Runs:       make([]ShapeRun, len(types)),
	}
	for i := range types {
		zl.Runs[i] = ShapeRun{Type: types[i], Size: sizes[i], Count: counts[i]}
	}
	return
}

// NumZones is the total zone count over all runs, ghosts included
func (zl *ZoneList) NumZones() (nz int) {
	for _, run := range zl.Runs {
		nz += run.Count
	}
	return
}

// IsGhost reports whether the zone at traversal index zone lies outside the
// real zone range [LowOffset, NumZones-HighOffset-1]
func (zl *ZoneList) IsGhost(zone int) bool {
	return zone < zl.LowOffset || zone > zl.NumZones()-zl.HighOffset-1
}

func (zl *ZoneList) validate() (err error) {
	if zl.Origin != 0 && zl.Origin != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrigin, zl.Origin)
	}
	for i, run := range zl.Runs {
		if run.Size < 0 || run.Count < 0 {
			return fmt.Errorf("%w: run %d has size %d and count %d",
				ErrInvalidCatalog, i, run.Size, run.Count)
		}
		if fixed := run.Type.NumNodes(); run.Type.Dimension() == 3 && fixed != 0 && run.Size < fixed {
			return fmt.Errorf("%w: run %d of %s zones has %d nodes per zone, need %d",
				ErrInvalidCatalog, i, run.Type, run.Size, fixed)
		}
	}
	nz := zl.NumZones()
	if zl.LowOffset < 0 || zl.HighOffset < 0 || zl.LowOffset+zl.HighOffset > nz {
		return fmt.Errorf("%w: low %d, high %d for %d zones",
			ErrInvalidGhostRange, zl.LowOffset, zl.HighOffset, nz)
	}
	return
}

// zoneWindow locates one zone inside the flat node list
type zoneWindow struct {
	Zone       int
	Shape      ShapeType
	Start, End int
}

// windows walks the catalog once with an explicit cursor, calling fn with
// the node window of every zone in traversal order
func (zl *ZoneList) windows(fn func(w zoneWindow) error) (err error) {
	var (
		cursor int
		zone   int
		nn     = len(zl.Nodes)
	)
	for r, run := range zl.Runs {
		for i := 0; i < run.Count; i++ {
			size := run.Size
			if run.Type == Polyhedron && size == 0 {
				if size, err = polyhedronLength(zl.Nodes, cursor); err != nil {
					return fmt.Errorf("run %d zone %d: %w", r, zone, err)
				}
			}
			if cursor+size > nn {
				return fmt.Errorf("%w: run %d zone %d needs nodes [%d,%d), have %d",
					ErrShortNodeList, r, zone, cursor, cursor+size, nn)
			}
			if err = fn(zoneWindow{Zone: zone, Shape: run.Type, Start: cursor, End: cursor + size}); err != nil {
				return
			}
			cursor += size
			zone++
		}
	}
	return
}

// polyhedronLength measures a self describing polyhedron encoding starting
// at cursor: face count, then per face a node count followed by its nodes
func polyhedronLength(nodes []int, cursor int) (length int, err error) {
	var (
		nn = len(nodes)
		p  = cursor
	)
	if p >= nn {
		err = ErrShortNodeList
		return
	}
	nf := nodes[p]
	p++
	for f := 0; f < nf; f++ {
		if p >= nn || nodes[p] < 0 {
			err = ErrShortNodeList
			return
		}
		p += 1 + nodes[p]
	}
	if p > nn {
		err = ErrShortNodeList
		return
	}
	length = p - cursor
	return
}
