package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type ExtractParameters struct {
	Title           string `json:"Title"`
	BoundaryMethod  string `json:"BoundaryMethod"` // strict, cleanonly, asymmetric, symmetric
	Origin          int    `json:"Origin"`
	LowGhostOffset  int    `json:"LowGhostOffset"`
	HighGhostOffset int    `json:"HighGhostOffset"`
	Strict          bool   `json:"Strict"` // Fail on shapes with no face templates
	Workers         int    `json:"Workers"`
	Partitions      int    `json:"Partitions"`
	PartitionMethod string `json:"PartitionMethod"`
}

// NewExtractParameters returns the parameters used when no file is given
func NewExtractParameters() *ExtractParameters {
	return &ExtractParameters{
		Title:           "External faces",
		BoundaryMethod:  "strict",
		Workers:         1,
		Partitions:      1,
		PartitionMethod: "metis",
	}
}

func (ip *ExtractParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *ExtractParameters) Validate() error {
	if ip.Origin != 0 && ip.Origin != 1 {
		return fmt.Errorf("Origin must be 0 or 1, got %d", ip.Origin)
	}
	if ip.LowGhostOffset < 0 || ip.HighGhostOffset < 0 {
		return fmt.Errorf("ghost offsets must not be negative")
	}
	if ip.Partitions > 1 && (ip.LowGhostOffset != 0 || ip.HighGhostOffset != 0) {
		return fmt.Errorf("ghost offsets are derived from the partitioning when Partitions > 1")
	}
	return nil
}

func (ip *ExtractParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t\t= Boundary Method\n", ip.BoundaryMethod)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Origin\n", ip.Origin)
	fmt.Fprintf(w, "[%d,%d]\t\t\t= Ghost Offsets (low, high)\n", ip.LowGhostOffset, ip.HighGhostOffset)
	fmt.Fprintf(w, "[%v]\t\t\t= Strict\n", ip.Strict)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Workers\n", ip.Workers)
	fmt.Fprintf(w, "[%d %s]\t\t\t= Partitions\n", ip.Partitions, ip.PartitionMethod)
}
