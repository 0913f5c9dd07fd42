package partition

import (
	"fmt"
	"sort"

	"github.com/notargets/facelist/facelist"
	"github.com/notargets/facelist/mesh"
)

// Domain is the share of a mesh owned by one partition, laid out as a zone
// list of low ghosts, owned zones and high ghosts. Ghosts are the face
// neighbors owned by other partitions.
type Domain struct {
	ID         int
	Elements   []int // Global element of each zone, in zone order
	NumOwned   int
	LowGhosts  int // Ghosts whose global index is below the first owned element
	HighGhosts int
	ZoneList   *facelist.ZoneList
	Materials  []int // Per zone, taken from the mesh
}

// Decompose splits the mesh into one Domain per partition of etop
func Decompose(m *mesh.Mesh, etop []int, nparts, origin int) (domains []*Domain, err error) {
	if err = checkAssignment(m, etop, nparts); err != nil {
		return
	}
	owned := make([][]int, nparts)
	for e, part := range etop {
		owned[part] = append(owned[part], e)
	}
	materials := m.MaterialList()

	domains = make([]*Domain, nparts)
	for part := range domains {
		var (
			d     = &Domain{ID: part, NumOwned: len(owned[part])}
			seen  = make(map[int]bool)
			ghost []int
		)
		for _, e := range owned[part] {
			for _, nbr := range m.EToE[e] {
				if nbr >= 0 && etop[nbr] != part && !seen[nbr] {
					seen[nbr] = true
					ghost = append(ghost, nbr)
				}
			}
		}
		sort.Ints(ghost)
		var low, high []int
		for _, g := range ghost {
			if len(owned[part]) > 0 && g < owned[part][0] {
				low = append(low, g)
			} else {
				high = append(high, g)
			}
		}
		d.LowGhosts, d.HighGhosts = len(low), len(high)
		d.Elements = append(append(append(d.Elements, low...), owned[part]...), high...)
		if d.ZoneList, err = m.SubsetZoneList(d.Elements, d.LowGhosts, d.HighGhosts, origin); err != nil {
			return nil, fmt.Errorf("domain %d: %w", part, err)
		}
		d.Materials = make([]int, len(d.Elements))
		for i, e := range d.Elements {
			d.Materials[i] = materials[e]
		}
		domains[part] = d
	}
	return
}

// Extract computes the external faces of the domain's owned zones. Faces an
// owned zone shares with a ghost cancel, so only physical boundary faces
// remain. Zone numbers are global element indices, origin adjusted.
func (d *Domain) Extract(ex *facelist.Extractor, method facelist.BoundaryMethod) (fl *facelist.FaceList, err error) {
	if ex == nil {
		ex = facelist.NewExtractor(facelist.Options{})
	}
	if fl, err = ex.ExtractZoneList(d.ZoneList, d.Materials, method); err != nil {
		return
	}
	origin := d.ZoneList.Origin
	for i, zone := range fl.ZoneNumbers {
		fl.ZoneNumbers[i] = d.Elements[zone-origin] + origin
	}
	return
}
