package facelist

import (
	"fmt"
)

// UnsupportedPolicy selects what happens to zones whose shape emits no faces
type UnsupportedPolicy uint8

const (
	// SkipUnsupported advances over the zone and emits nothing
	SkipUnsupported UnsupportedPolicy = iota
	// FailUnsupported stops the extraction with ErrUnsupportedShape
	FailUnsupported
)

// faceFunc receives one emitted face. The nodes slice is only valid for the
// duration of the call.
type faceFunc func(zone, slot int, nodes []int) error

// emitter turns zone windows into faces, reusing one scratch buffer
type emitter struct {
	nodes       []int
	unsupported UnsupportedPolicy
	buf         []int
	solids      bool // set once any three dimensional zone has been emitted
}

func newEmitter(nodes []int, unsupported UnsupportedPolicy) *emitter {
	return &emitter{
		nodes:       nodes,
		unsupported: unsupported,
		buf:         make([]int, 0, 8),
	}
}

// emitZone emits all faces of one zone in template order
func (em *emitter) emitZone(w zoneWindow, fn faceFunc) (err error) {
	var (
		window = em.nodes[w.Start:w.End]
	)
	switch w.Shape {
	case Tet, Pyramid, Prism, Hex:
		em.solids = true
		for slot, tmpl := range faceTemplates[w.Shape] {
			em.buf = em.buf[:0]
			for _, off := range tmpl {
				em.buf = append(em.buf, window[off])
			}
			if err = fn(w.Zone, slot, em.buf); err != nil {
				return
			}
		}
	case Polygon, Triangle, Quad, Beam:
		if len(window) == 0 {
			return
		}
		return fn(w.Zone, 0, window)
	case Polyhedron:
		em.solids = true
		return emitPolyhedron(w, window, fn)
	default:
		if em.unsupported == FailUnsupported {
			return fmt.Errorf("%w: zone %d has shape %s", ErrUnsupportedShape, w.Zone, w.Shape)
		}
	}
	return
}

// emitPolyhedron decodes (nfaces, {n, node ids...}...) and emits each face
// as given
func emitPolyhedron(w zoneWindow, window []int, fn faceFunc) (err error) {
	if len(window) == 0 {
		return
	}
	var (
		nf = window[0]
		p  = 1
	)
	for slot := 0; slot < nf; slot++ {
		if p >= len(window) {
			return fmt.Errorf("%w: polyhedron zone %d face %d", ErrShortNodeList, w.Zone, slot)
		}
		n := window[p]
		p++
		if n < 0 || p+n > len(window) {
			return fmt.Errorf("%w: polyhedron zone %d face %d has %d nodes",
				ErrShortNodeList, w.Zone, slot, n)
		}
		if n > 0 {
			if err = fn(w.Zone, slot, window[p:p+n]); err != nil {
				return
			}
		}
		p += n
	}
	return
}

// EmitZoneFaces returns the faces of a single zone given its shape and node
// window, in emission order and winding
func EmitZoneFaces(shape ShapeType, window []int) (faces [][]int) {
	em := newEmitter(window, SkipUnsupported)
	_ = em.emitZone(zoneWindow{Shape: shape, End: len(window)}, func(zone, slot int, nodes []int) error {
		faces = append(faces, append([]int(nil), nodes...))
		return nil
	})
	return
}
