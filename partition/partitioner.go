package partition

import (
	"fmt"
	"strings"

	metis "github.com/notargets/go-metis"
	"github.com/sirupsen/logrus"

	"github.com/notargets/facelist/mesh"
	"github.com/notargets/facelist/utils"
)

// Method selects how zones are assigned to partitions
type Method uint8

const (
	Metis Method = iota // k-way graph partitioning of the dual graph
	Block               // contiguous runs of zones in element order
)

var MethodNames = map[string]Method{
	"metis": Metis,
	"block": Block,
}

func (m Method) String() string {
	switch m {
	case Metis:
		return "metis"
	case Block:
		return "block"
	default:
		return "invalid"
	}
}

func NewMethod(label string) (m Method, err error) {
	var ok bool
	if m, ok = MethodNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use partition method named %s", label)
	}
	return
}

// Config holds configuration for mesh partitioning
type Config struct {
	NumPartitions    int32
	ImbalanceFactor  float32 // e.g., 1.05 for 5% imbalance
	UseEdgeWeights   bool
	UseVertexWeights bool
	Objective        string // "cut" or "vol"
	Method           Method
	NCommon          int // Shared nodes that make two zones neighbors, 0 picks the mesh dimension
}

// DefaultConfig returns default partitioning configuration
func DefaultConfig(nparts int32) *Config {
	return &Config{
		NumPartitions:    nparts,
		ImbalanceFactor:  1.05,
		UseEdgeWeights:   true,
		UseVertexWeights: true,
		Objective:        "vol", // minimize communication volume
		Method:           Metis,
	}
}

// Partitioner assigns the zones of a mesh to partitions
type Partitioner struct {
	mesh   *mesh.Mesh
	config *Config
	log    *logrus.Entry

	// Relative compute cost of one zone
	computeCost func(et mesh.ElementType) int32
}

var baseCost = map[mesh.ElementType]int32{
	mesh.Tet:     1,
	mesh.Hex:     8, // Hex has 8 vertices vs 4 for tet
	mesh.Prism:   6,
	mesh.Pyramid: 5,
}

func NewPartitioner(m *mesh.Mesh, config *Config) *Partitioner {
	return &Partitioner{
		mesh:   m,
		config: config,
		log:    utils.NamedLogger("partition"),
		computeCost: func(et mesh.ElementType) int32 {
			if c, ok := baseCost[et]; ok {
				return c
			}
			return int32(et.GetNumNodes())
		},
	}
}

func (p *Partitioner) ncommon() int {
	if p.config.NCommon > 0 {
		return p.config.NCommon
	}
	if dim := p.mesh.GetMeshDimension(); dim > 0 {
		return dim
	}
	return 1
}

// Partition returns the partition of every element
func (p *Partitioner) Partition() (etop []int, err error) {
	var (
		ne     = p.mesh.NumElements
		nparts = int(p.config.NumPartitions)
	)
	if nparts < 1 || nparts > ne {
		err = fmt.Errorf("cannot split %d elements into %d partitions", ne, nparts)
		return
	}
	p.log.WithFields(logrus.Fields{
		"elements":   ne,
		"partitions": nparts,
		"method":     p.config.Method,
	}).Info("partitioning mesh")

	etop = make([]int, ne)
	switch {
	case nparts == 1:
	case p.config.Method == Block:
		pm := utils.NewPartitionMap(nparts, ne)
		for e := range etop {
			etop[e], _, _ = pm.GetBucket(e)
		}
	case p.config.Method == Metis:
		if etop, err = p.partitionMetis(); err != nil {
			return nil, err
		}
	default:
		err = fmt.Errorf("unknown partition method %d", p.config.Method)
		return nil, err
	}
	return
}

func (p *Partitioner) partitionMetis() (etop []int, err error) {
	g := DualGraph(p.mesh, p.ncommon())

	opts := make([]int32, metis.NoOptions)
	if err = metis.SetDefaultOptions(opts); err != nil {
		return nil, fmt.Errorf("failed to set METIS options: %w", err)
	}
	if p.config.Objective == "vol" {
		opts[metis.OptionObjType] = metis.ObjTypeVol
	} else {
		opts[metis.OptionObjType] = metis.ObjTypeCut
	}
	ubvec := []float32{p.config.ImbalanceFactor}

	var vwgt, adjwgt []int32
	if p.config.UseVertexWeights {
		vwgt = make([]int32, p.mesh.NumElements)
		for e, et := range p.mesh.ElementTypes {
			vwgt[e] = p.computeCost(et)
		}
	}
	if p.config.UseEdgeWeights {
		adjwgt = g.Adjwgt
	}

	part, objval, err := metis.PartGraphKwayWeighted(
		g.Xadj, g.Adjncy, vwgt, adjwgt,
		p.config.NumPartitions, nil, ubvec, opts,
	)
	if err != nil {
		return nil, fmt.Errorf("METIS partitioning failed: %w", err)
	}
	p.log.WithField("objective", objval).Debug("METIS done")

	etop = make([]int, p.mesh.NumElements)
	for e := range etop {
		etop[e] = int(part[e])
	}
	return
}
