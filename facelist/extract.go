package facelist

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/notargets/facelist/utils"
)

// Options tune an Extractor. The zero value is the serial, permissive
// extractor.
type Options struct {
	Unsupported UnsupportedPolicy
	Workers     int // Values above 1 shard the face registry across goroutines
}

// Extractor computes external face lists of zone lists
type Extractor struct {
	Options
	log *logrus.Entry
}

func NewExtractor(opts Options) *Extractor {
	return &Extractor{
		Options: opts,
		log:     utils.NamedLogger("facelist"),
	}
}

var defaultExtractor = NewExtractor(Options{})

// ExtractBasic computes the external faces of a mesh made of the regular
// solids only. Shape sizes 4, 5, 6 and 8 are read as tetrahedra, pyramids,
// prisms and hexahedra; zones of any other size contribute no faces.
func ExtractBasic(nodes []int, numNodes, origin int, sizes, counts, materials []int,
	method BoundaryMethod) (*FaceList, error) {
	return defaultExtractor.Basic(nodes, numNodes, origin, sizes, counts, materials, method)
}

// Extract computes the external faces of a general zone list with explicit
// shape types and ghost zone offsets
func Extract(nodes []int, numNodes, lowOffset, highOffset, origin int,
	types []ShapeType, sizes, counts, materials []int, method BoundaryMethod) (*FaceList, error) {
	return defaultExtractor.General(nodes, numNodes, lowOffset, highOffset, origin,
		types, sizes, counts, materials, method)
}

func (ex *Extractor) Basic(nodes []int, numNodes, origin int, sizes, counts, materials []int,
	method BoundaryMethod) (fl *FaceList, err error) {
	if len(sizes) != len(counts) {
		err = fmt.Errorf("%w: %d shape sizes, %d shape counts", ErrInvalidCatalog, len(sizes), len(counts))
		return
	}
	types := make([]ShapeType, len(sizes))
	for i, size := range sizes {
		types[i] = ClassifySolid(size)
	}
	return ex.General(nodes, numNodes, 0, 0, origin, types, sizes, counts, materials, method)
}

func (ex *Extractor) General(nodes []int, numNodes, lowOffset, highOffset, origin int,
	types []ShapeType, sizes, counts, materials []int, method BoundaryMethod) (fl *FaceList, err error) {
	var zl *ZoneList
	if zl, err = NewZoneList(nodes, numNodes, lowOffset, highOffset, origin, types, sizes, counts); err != nil {
		return
	}
	return ex.ExtractZoneList(zl, materials, method)
}

// ExtractZoneList runs the whole pipeline: emit, register, drain with the
// ghost filter, pack. Nothing is returned on error.
func (ex *Extractor) ExtractZoneList(zl *ZoneList, materials []int, method BoundaryMethod) (fl *FaceList, err error) {
	if !method.valid() {
		err = fmt.Errorf("%w: %d", ErrInvalidBoundaryMethod, int(method))
		return
	}
	if err = zl.validate(); err != nil {
		return
	}
	var (
		nz       = zl.NumZones()
		lastReal = nz - zl.HighOffset - 1
		keep     = func(zone int) bool { return zone >= zl.LowOffset && zone <= lastReal }
		res      *registryResult
	)
	if method.UsesMaterials() && len(materials) < nz {
		err = fmt.Errorf("%w: %d materials for %d zones", ErrMissingMaterials, len(materials), nz)
		return
	}
	if ex.Workers > 1 {
		res, err = ex.runSharded(zl, materials, method, keep)
	} else {
		res, err = ex.runSerial(zl, materials, method, keep)
	}
	if err != nil {
		return
	}
	dimension := 2
	if res.solids {
		dimension = 3
	}
	fl = pack(res.faces, zl.Origin, dimension)
	ex.log.WithFields(logrus.Fields{
		"zones":     nz,
		"emitted":   res.emitted,
		"cancelled": res.cancelled,
		"external":  fl.NumFaces,
		"shapes":    fl.NumShapes,
		"method":    method,
	}).Debug("external faces extracted")
	return
}

// registryResult is what a registry run hands to the packer
type registryResult struct {
	faces              []*face
	solids             bool
	emitted, cancelled int
}

func (ex *Extractor) runSerial(zl *ZoneList, materials []int, method BoundaryMethod,
	keep func(zone int) bool) (res *registryResult, err error) {
	var (
		rg = newRegistry(zl.NumNodes, method, materials)
		em = newEmitter(zl.Nodes, ex.Unsupported)
	)
	insert := func(zone, slot int, nodes []int) error {
		rg.insert(zone, slot, nodes)
		return nil
	}
	if err = zl.windows(func(w zoneWindow) error { return em.emitZone(w, insert) }); err != nil {
		return
	}
	res = &registryResult{
		faces:     rg.drain(keep),
		solids:    em.solids,
		emitted:   rg.emitted,
		cancelled: rg.cancelled,
	}
	return
}
