/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/notargets/facelist/mesh"
	"github.com/notargets/facelist/mesh/readers"
	"github.com/notargets/facelist/partition"
	"github.com/notargets/facelist/utils"
)

type PartitionModel struct {
	MeshFile   string
	OutputFile string
	Config     *partition.Config
}

// PartitionCmd represents the partition command
var PartitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Partition a mesh and report the partition quality",
	Long:  `Partition a mesh with METIS or in contiguous blocks and report the load balance and communication cost`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		pm := &PartitionModel{}
		if pm.MeshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			return
		}
		if len(pm.MeshFile) == 0 {
			return fmt.Errorf("must supply a mesh file (-F, --meshFile) in .neu, .su2 or .msh format")
		}
		pm.OutputFile, _ = cmd.Flags().GetString("output")
		nparts, _ := cmd.Flags().GetInt32("partitions")
		pm.Config = partition.DefaultConfig(nparts)
		label, _ := cmd.Flags().GetString("method")
		if pm.Config.Method, err = partition.NewMethod(label); err != nil {
			return
		}
		pm.Config.Objective, _ = cmd.Flags().GetString("objective")
		pm.Config.ImbalanceFactor, _ = cmd.Flags().GetFloat32("imbalance")
		pm.Config.NCommon, _ = cmd.Flags().GetInt("ncommon")
		_, err = RunPartition(pm, os.Stdout)
		return
	},
}

func init() {
	rootCmd.AddCommand(PartitionCmd)
	PartitionCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read in Gambit (.neu), SU2 (.su2) or Gmsh (.msh) format")
	PartitionCmd.Flags().StringP("output", "o", "", "YAML file to write the element partition assignment to")
	PartitionCmd.Flags().Int32P("partitions", "p", 2, "number of partitions")
	PartitionCmd.Flags().StringP("method", "m", "metis", "partition method: metis or block")
	PartitionCmd.Flags().String("objective", "vol", "METIS objective: vol (communication volume) or cut (edge cut)")
	PartitionCmd.Flags().Float32("imbalance", 1.05, "allowed load imbalance factor")
	PartitionCmd.Flags().Int("ncommon", 0, "shared nodes that make two elements neighbors, 0 uses the mesh dimension")
}

// RunPartition partitions the mesh and prints a per partition table to w
func RunPartition(pm *PartitionModel, w io.Writer) (etop []int, err error) {
	var (
		m      *mesh.Mesh
		report *partition.Report
	)
	if m, err = readers.ReadMeshFile(pm.MeshFile); err != nil {
		return
	}
	m.PrintStatistics(w)
	p := partition.NewPartitioner(m, pm.Config)
	if etop, err = p.Partition(); err != nil {
		return
	}
	if report, err = p.Analyze(etop); err != nil {
		return nil, err
	}
	report.Log(utils.NamedLogger("cmd"))
	fmt.Fprintf(w, "%s partitioning into %d, cut faces %d, comm volume %d, imbalance %.2f%%\n",
		pm.Config.Method, pm.Config.NumPartitions, report.CutFaces, report.CommVolume, report.Imbalance*100)
	for _, stats := range report.Partitions {
		fmt.Fprintf(w, "\tpartition %d: %d elements, load %d, %d neighbors\n",
			stats.ID, stats.NumElements, stats.ComputeLoad, len(stats.NumNeighbors))
	}
	if len(pm.OutputFile) != 0 {
		var data []byte
		if data, err = yaml.Marshal(map[string][]int{"ElementPartitions": etop}); err != nil {
			return nil, err
		}
		if err = ioutil.WriteFile(pm.OutputFile, data, 0644); err != nil {
			return nil, err
		}
	}
	return
}
