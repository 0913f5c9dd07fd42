package facelist

import (
	"sort"
)

// MaxTableSize bounds the bucket count of the face registry
const MaxTableSize = 1048573

// face is one registered face, stored in canonical orientation
type face struct {
	nodes []int // rotated so the minimum node is first, winding preserved
	zone  int   // traversal index of the owning zone
	slot  int   // face slot within the owning zone
}

// registry holds every face seen so far whose reversed twin has not arrived.
// Each bucket chain is owned by the registry; the newest entry is the head,
// stored last in the slice.
type registry struct {
	size      int
	buckets   map[int][]*face
	method    BoundaryMethod
	materials []int

	emitted, cancelled int
}

// TableSize is the bucket count used for a node index space of numNodes
func TableSize(numNodes int) int {
	switch {
	case numNodes < 1:
		return 1
	case numNodes > MaxTableSize:
		return MaxTableSize
	default:
		return numNodes
	}
}

func newRegistry(numNodes int, method BoundaryMethod, materials []int) *registry {
	return &registry{
		size:      TableSize(numNodes),
		buckets:   make(map[int][]*face),
		method:    method,
		materials: materials,
	}
}

func (rg *registry) bucket(minNode int) int {
	return (minNode%rg.size + rg.size) % rg.size
}

// minPosition is the index of the first minimum valued node
func minPosition(nodes []int) (m int) {
	for i := 1; i < len(nodes); i++ {
		if nodes[i] < nodes[m] {
			m = i
		}
	}
	return
}

// Canonical returns nodes rotated so that the minimum node comes first
func Canonical(nodes []int) (c []int) {
	var (
		n = len(nodes)
		m = minPosition(nodes)
	)
	c = make([]int, n)
	for i := 0; i < n; i++ {
		c[i] = nodes[(m+i)%n]
	}
	return
}

// isTwin reports whether the incoming face, whose minimum sits at position m,
// walks the stored canonical face backwards from the shared minimum node
func isTwin(stored *face, nodes []int, m int) bool {
	var (
		n = len(nodes)
	)
	if len(stored.nodes) != n || stored.nodes[0] != nodes[m] {
		return false
	}
	for i := 1; i < n; i++ {
		if stored.nodes[i] != nodes[(m+n-i)%n] {
			return false
		}
	}
	return true
}

func (rg *registry) material(zone int) (mat int) {
	if rg.method.UsesMaterials() {
		mat = rg.materials[zone]
	}
	return
}

// insert either cancels a stored twin or registers the face as a new entry
func (rg *registry) insert(zone, slot int, nodes []int) {
	var (
		m     = minPosition(nodes)
		key   = rg.bucket(nodes[m])
		chain = rg.buckets[key]
	)
	rg.emitted++
	for i := len(chain) - 1; i >= 0; i-- {
		existing := chain[i]
		if !isTwin(existing, nodes, m) {
			continue
		}
		switch rg.method.resolve(rg.material(existing.zone), rg.material(zone)) {
		case cancelBoth:
			rg.remove(key, i)
			rg.cancelled += 2
			return
		case keepExisting:
			rg.cancelled++
			return
		case replaceByIncoming:
			rg.remove(key, i)
			rg.cancelled++
			rg.push(key, zone, slot, nodes, m)
			return
		case keepBoth:
			rg.push(key, zone, slot, nodes, m)
			return
		}
	}
	rg.push(key, zone, slot, nodes, m)
}

// push stores a copy of nodes in canonical orientation at the chain head
func (rg *registry) push(key, zone, slot int, nodes []int, m int) {
	var (
		n = len(nodes)
		f = &face{nodes: make([]int, n), zone: zone, slot: slot}
	)
	for i := 0; i < n; i++ {
		f.nodes[i] = nodes[(m+i)%n]
	}
	rg.buckets[key] = append(rg.buckets[key], f)
}

func (rg *registry) remove(key, i int) {
	chain := rg.buckets[key]
	chain = append(chain[:i], chain[i+1:]...)
	if len(chain) == 0 {
		delete(rg.buckets, key)
		return
	}
	rg.buckets[key] = chain
}

// len is the number of faces currently registered
func (rg *registry) len() (n int) {
	for _, chain := range rg.buckets {
		n += len(chain)
	}
	return
}

// drain empties the registry in bucket order, head first within a chain,
// keeping only faces whose owner passes keep
func (rg *registry) drain(keep func(zone int) bool) (faces []*face) {
	keys := make([]int, 0, len(rg.buckets))
	for key := range rg.buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	for _, key := range keys {
		chain := rg.buckets[key]
		for i := len(chain) - 1; i >= 0; i-- {
			if keep(chain[i].zone) {
				faces = append(faces, chain[i])
			}
		}
		delete(rg.buckets, key)
	}
	return
}
