package facelist

import (
	"fmt"
	"sort"
)

// hexGrid builds the connectivity of an nx*ny*nz block of hexahedra with
// corner order (i,j,k), (i+1,j,k), (i+1,j+1,k), (i,j+1,k) then the same at k+1.
// With periodic set the node indices wrap in every direction, which closes
// the mesh onto itself.
func hexGrid(nx, ny, nz int, periodic bool, origin int) (nodes []int, numNodes int) {
	var (
		px, py, pz = nx + 1, ny + 1, nz + 1
	)
	if periodic {
		px, py, pz = nx, ny, nz
	}
	id := func(i, j, k int) int {
		return i%px + px*(j%py+py*(k%pz)) + origin
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				nodes = append(nodes,
					id(i, j, k), id(i+1, j, k), id(i+1, j+1, k), id(i, j+1, k),
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j+1, k+1), id(i, j+1, k+1))
			}
		}
	}
	numNodes = px * py * pz
	return
}

func faceKey(nodes []int, zone int) string {
	return fmt.Sprintf("%v@%d", Canonical(nodes), zone)
}

// faceMultiset counts every (canonical nodes, zone number) pair of a face list
func faceMultiset(fl *FaceList) (set map[string]int) {
	set = make(map[string]int)
	for _, f := range fl.Faces() {
		set[faceKey(f.Nodes, f.Zone)]++
	}
	return
}

// shiftedMultiset is faceMultiset with every node and zone number moved by d
func shiftedMultiset(fl *FaceList, d int) (set map[string]int) {
	set = make(map[string]int)
	for _, f := range fl.Faces() {
		nodes := make([]int, len(f.Nodes))
		for i, n := range f.Nodes {
			nodes[i] = n + d
		}
		set[faceKey(nodes, f.Zone+d)]++
	}
	return
}

// copiesOf counts the faces of fl covering the given node set, any order
func copiesOf(fl *FaceList, nodes ...int) (count int) {
	want := append([]int(nil), nodes...)
	sort.Ints(want)
	for _, f := range fl.Faces() {
		got := append([]int(nil), f.Nodes...)
		sort.Ints(got)
		if fmt.Sprint(got) == fmt.Sprint(want) {
			count++
		}
	}
	return
}

func repeat(v, n int) (s []int) {
	s = make([]int, n)
	for i := range s {
		s[i] = v
	}
	return
}
