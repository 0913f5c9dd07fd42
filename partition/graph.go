package partition

import (
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/notargets/facelist/mesh"
)

// Graph is the dual graph of a mesh in the compressed row layout METIS
// takes: the neighbors of zone i are Adjncy[Xadj[i]:Xadj[i+1]]
type Graph struct {
	Xadj   []int32
	Adjncy []int32
	Adjwgt []int32 // Number of nodes shared with each neighbor
}

// NumZones is the number of graph vertices
func (g *Graph) NumZones() int {
	return len(g.Xadj) - 1
}

// Neighbors returns the neighbors of zone i
func (g *Graph) Neighbors(i int) []int32 {
	return g.Adjncy[g.Xadj[i]:g.Xadj[i+1]]
}

// DualGraph connects every pair of zones sharing at least ncommon nodes. The
// shared node counts are the entries of ZToV * ZToV^T.
func DualGraph(m *mesh.Mesh, ncommon int) (g *Graph) {
	var (
		ne = m.NumElements
		nv = m.NumVertices
	)
	g = &Graph{Xadj: make([]int32, ne+1)}
	if ne == 0 || nv == 0 {
		return
	}
	if ncommon < 1 {
		ncommon = 1
	}
	zToVTmp := sparse.NewDOK(ne, nv)
	for e, verts := range m.EtoV {
		for _, v := range verts {
			zToVTmp.Set(e, v, 1)
		}
	}
	shared := sparse.NewCSR(ne, ne, nil, nil, nil)
	zToV := zToVTmp.ToCSR()
	shared.Mul(zToV, zToV.T())
	raw := shared.RawMatrix()

	type nbr struct{ zone, count int32 }
	for i := 0; i < ne; i++ {
		var row []nbr
		for idx := raw.Indptr[i]; idx < raw.Indptr[i+1]; idx++ {
			j, count := raw.Ind[idx], int(raw.Data[idx])
			if j != i && count >= ncommon {
				row = append(row, nbr{int32(j), int32(count)})
			}
		}
		sort.Slice(row, func(a, b int) bool { return row[a].zone < row[b].zone })
		for _, n := range row {
			g.Adjncy = append(g.Adjncy, n.zone)
			g.Adjwgt = append(g.Adjwgt, n.count)
		}
		g.Xadj[i+1] = int32(len(g.Adjncy))
	}
	return
}
