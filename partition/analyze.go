package partition

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/facelist/mesh"
)

// Stats holds statistics for a single partition
type Stats struct {
	ID           int
	NumElements  int
	ComputeLoad  int64
	ElementTypes map[mesh.ElementType]int
	NumNeighbors map[int]int // neighbor partition -> shared faces
}

// Report describes the quality of a partitioning
type Report struct {
	Partitions     []Stats
	CutFaces       int
	CommVolume     int64 // Face vertices summed over cut faces
	MeanLoad       float64
	StdDevLoad     float64
	MinLoad        float64
	MaxLoad        float64
	Imbalance      float64 // MaxLoad/MeanLoad - 1
	InterfaceFaces map[[2]int]int
}

// Analyze computes partition quality metrics for the assignment etop
func (p *Partitioner) Analyze(etop []int) (r *Report, err error) {
	var (
		m      = p.mesh
		nparts = int(p.config.NumPartitions)
	)
	if err = checkAssignment(m, etop, nparts); err != nil {
		return
	}
	r = &Report{
		Partitions:     make([]Stats, nparts),
		InterfaceFaces: make(map[[2]int]int),
	}
	for i := range r.Partitions {
		r.Partitions[i] = Stats{
			ID:           i,
			ElementTypes: make(map[mesh.ElementType]int),
			NumNeighbors: make(map[int]int),
		}
	}
	for elem := 0; elem < m.NumElements; elem++ {
		stats := &r.Partitions[etop[elem]]
		stats.NumElements++
		stats.ElementTypes[m.ElementTypes[elem]]++
		stats.ComputeLoad += int64(p.computeCost(m.ElementTypes[elem]))
	}

	for elem := 0; elem < m.NumElements; elem++ {
		elemPart := etop[elem]
		for faceIdx, neighbor := range m.EToE[elem] {
			// Count each face once
			if neighbor <= elem || etop[neighbor] == elemPart {
				continue
			}
			neighborPart := etop[neighbor]
			r.CutFaces++
			p1, p2 := elemPart, neighborPart
			if p1 > p2 {
				p1, p2 = p2, p1
			}
			r.InterfaceFaces[[2]int{p1, p2}]++
			face := m.Faces[m.EToF[elem][faceIdx]]
			r.CommVolume += int64(len(face.Vertices))
			r.Partitions[elemPart].NumNeighbors[neighborPart]++
			r.Partitions[neighborPart].NumNeighbors[elemPart]++
		}
	}

	loads := make([]float64, nparts)
	for i, stats := range r.Partitions {
		loads[i] = float64(stats.ComputeLoad)
	}
	r.MeanLoad, r.StdDevLoad = stat.MeanStdDev(loads, nil)
	r.MinLoad, r.MaxLoad = floats.Min(loads), floats.Max(loads)
	if r.MeanLoad > 0 {
		r.Imbalance = r.MaxLoad/r.MeanLoad - 1
	}
	return
}

func checkAssignment(m *mesh.Mesh, etop []int, nparts int) error {
	if len(etop) != m.NumElements {
		return fmt.Errorf("assignment covers %d elements, mesh has %d", len(etop), m.NumElements)
	}
	if m.EToE == nil && m.NumElements > 0 {
		return fmt.Errorf("mesh connectivity has not been built")
	}
	for e, part := range etop {
		if part < 0 || part >= nparts {
			return fmt.Errorf("element %d assigned to partition %d of %d", e, part, nparts)
		}
	}
	return nil
}

// Log reports the statistics at info level
func (r *Report) Log(log *logrus.Entry) {
	log.WithFields(logrus.Fields{
		"cutFaces":   r.CutFaces,
		"commVolume": r.CommVolume,
		"imbalance":  fmt.Sprintf("%.2f%%", r.Imbalance*100),
		"load":       fmt.Sprintf("[%.0f, %.0f] avg %.1f sd %.1f", r.MinLoad, r.MaxLoad, r.MeanLoad, r.StdDevLoad),
	}).Info("partition analysis")
	for _, stats := range r.Partitions {
		log.WithFields(logrus.Fields{
			"partition": stats.ID,
			"elements":  stats.NumElements,
			"load":      stats.ComputeLoad,
			"neighbors": len(stats.NumNeighbors),
		}).Info("partition")
	}
}
