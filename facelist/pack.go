package facelist

// FaceList is the packed set of external faces, grouped into shape runs by
// node count
type FaceList struct {
	NumFaces     int
	NumFlatNodes int   // len(Nodes)
	NumShapes    int   // number of distinct face sizes
	Nodes        []int // flattened face nodes, run by run
	ShapeSizes   []int // nodes per face of each shape run
	ShapeCounts  []int // faces in each shape run
	ZoneNumbers  []int // owning zone of each face, origin adjusted
	Dimension    int   // 2 or 3
	Origin       int
}

// Face is a face recovered from a FaceList
type Face struct {
	Nodes []int
	Zone  int // origin adjusted zone number
}

// pack groups the surviving faces by node count. Runs appear in the order
// their first face was drained, all faces of one size land in one run.
func pack(faces []*face, origin, dimension int) (fl *FaceList) {
	var (
		nflat int
	)
	for _, f := range faces {
		nflat += len(f.nodes)
	}
	fl = &FaceList{
		NumFaces:     len(faces),
		NumFlatNodes: nflat,
		Nodes:        make([]int, 0, nflat),
		ZoneNumbers:  make([]int, 0, len(faces)),
		Dimension:    dimension,
		Origin:       origin,
	}
	remaining := faces
	for len(remaining) > 0 {
		var (
			size  = len(remaining[0].nodes)
			count int
			rest  []*face
		)
		for _, f := range remaining {
			if len(f.nodes) != size {
				rest = append(rest, f)
				continue
			}
			fl.Nodes = append(fl.Nodes, f.nodes...)
			fl.ZoneNumbers = append(fl.ZoneNumbers, f.zone+origin)
			count++
		}
		fl.ShapeSizes = append(fl.ShapeSizes, size)
		fl.ShapeCounts = append(fl.ShapeCounts, count)
		fl.NumShapes++
		remaining = rest
	}
	return
}

// Faces re-expands the shape runs into individual faces
func (fl *FaceList) Faces() (faces []Face) {
	var (
		p, f int
	)
	faces = make([]Face, 0, fl.NumFaces)
	for s := 0; s < fl.NumShapes; s++ {
		size := fl.ShapeSizes[s]
		for i := 0; i < fl.ShapeCounts[s]; i++ {
			faces = append(faces, Face{
				Nodes: fl.Nodes[p : p+size : p+size],
				Zone:  fl.ZoneNumbers[f],
			})
			p += size
			f++
		}
	}
	return
}

// CountBySize returns the number of faces per node count
func (fl *FaceList) CountBySize() (counts map[int]int) {
	counts = make(map[int]int, fl.NumShapes)
	for s := 0; s < fl.NumShapes; s++ {
		counts[fl.ShapeSizes[s]] += fl.ShapeCounts[s]
	}
	return
}
