package mesh

import (
	"fmt"

	"github.com/notargets/facelist/facelist"
)

// ToZoneList lays the elements out as a zone list in element order,
// one shape run per stretch of equal element types. Node identifiers are
// vertex indices shifted by origin.
func (m *Mesh) ToZoneList(origin int) (zl *facelist.ZoneList, err error) {
	return m.SubsetZoneList(allElements(m.NumElements), 0, 0, origin)
}

// SubsetZoneList builds the zone list of the listed elements, in the order
// given, marking the first lowOffset and last highOffset of them as ghosts
func (m *Mesh) SubsetZoneList(elements []int, lowOffset, highOffset, origin int) (zl *facelist.ZoneList, err error) {
	if origin != 0 && origin != 1 {
		err = fmt.Errorf("%w: got %d", facelist.ErrInvalidOrigin, origin)
		return
	}
	zl = &facelist.ZoneList{
		NumNodes:   m.NumVertices + origin,
		Origin:     origin,
		LowOffset:  lowOffset,
		HighOffset: highOffset,
	}
	for _, e := range elements {
		if e < 0 || e >= m.NumElements {
			err = fmt.Errorf("element %d out of range [0,%d)", e, m.NumElements)
			return nil, err
		}
		var (
			et    = m.ElementTypes[e]
			st    = et.ShapeType()
			nruns = len(zl.Runs)
		)
		if nruns > 0 && zl.Runs[nruns-1].Type == st && zl.Runs[nruns-1].Size == len(m.EtoV[e]) {
			zl.Runs[nruns-1].Count++
		} else {
			zl.Runs = append(zl.Runs, facelist.ShapeRun{Type: st, Size: len(m.EtoV[e]), Count: 1})
		}
		for _, v := range et.ExtractionOrder(m.EtoV[e]) {
			zl.Nodes = append(zl.Nodes, v+origin)
		}
	}
	return
}

func allElements(n int) (elements []int) {
	elements = make([]int, n)
	for i := range elements {
		elements[i] = i
	}
	return
}

// ExternalFaces extracts the external faces of the whole mesh. Materials
// come from MaterialList when the method needs them.
func (m *Mesh) ExternalFaces(ex *facelist.Extractor, origin int, method facelist.BoundaryMethod) (fl *facelist.FaceList, err error) {
	var zl *facelist.ZoneList
	if zl, err = m.ToZoneList(origin); err != nil {
		return
	}
	var materials []int
	if method.UsesMaterials() {
		materials = m.MaterialList()
	}
	if ex == nil {
		ex = facelist.NewExtractor(facelist.Options{})
	}
	return ex.ExtractZoneList(zl, materials, method)
}
