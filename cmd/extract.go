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
	"sort"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/facelist/InputParameters"
	"github.com/notargets/facelist/facelist"
	"github.com/notargets/facelist/mesh"
	"github.com/notargets/facelist/mesh/readers"
	"github.com/notargets/facelist/partition"
)

type ExtractModel struct {
	MeshFile   string
	InputFile  string
	OutputFile string
}

// DomainFaces is the extraction result of one partition
type DomainFaces struct {
	Domain     int
	Elements   int
	LowGhosts  int
	HighGhosts int
	Faces      *facelist.FaceList
}

// ExtractResult is what the extract command writes to its output file
type ExtractResult struct {
	Title          string
	MeshFile       string
	BoundaryMethod string
	Faces          *facelist.FaceList `json:",omitempty"`
	Domains        []DomainFaces      `json:",omitempty"`
}

// ExtractCmd represents the extract command
var ExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the external faces of a mesh",
	Long: `Extract the faces on the external and material boundaries of a mesh, optionally
after partitioning it into domains, one face list per domain.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		em := &ExtractModel{}
		if em.MeshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			return
		}
		em.InputFile, _ = cmd.Flags().GetString("inputParametersFile")
		em.OutputFile, _ = cmd.Flags().GetString("output")
		var ip *InputParameters.ExtractParameters
		if ip, err = processExtractInput(em); err != nil {
			return
		}
		_, err = RunExtract(em, ip, os.Stdout)
		return
	},
}

func init() {
	rootCmd.AddCommand(ExtractCmd)
	ExtractCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read in Gambit (.neu), SU2 (.su2) or Gmsh (.msh) format")
	ExtractCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- BoundaryMethod\n\t- Partitions")
	ExtractCmd.Flags().StringP("output", "o", "", "YAML file to write the face lists to")
	ExtractCmd.Flags().StringP("method", "m", "strict", "boundary method: strict, cleanonly, asymmetric or symmetric")
	ExtractCmd.Flags().Int("origin", 0, "node and zone numbering origin, 0 or 1")
	ExtractCmd.Flags().IntP("workers", "w", 1, "goroutines sharing the face registry")
	ExtractCmd.Flags().Bool("strict", false, "fail on zones with no face templates")
	ExtractCmd.Flags().IntP("partitions", "p", 1, "number of domains to extract separately")
	ExtractCmd.Flags().String("partitionMethod", "metis", "partition method: metis or block")
	for key, flag := range map[string]string{
		"extract.method":          "method",
		"extract.origin":          "origin",
		"extract.workers":         "workers",
		"extract.strict":          "strict",
		"extract.partitions":      "partitions",
		"extract.partitionMethod": "partitionMethod",
	} {
		_ = viper.BindPFlag(key, ExtractCmd.Flags().Lookup(flag))
	}
}

// processExtractInput layers the parameters: defaults, then the input
// file, then config file, environment and flag values
func processExtractInput(em *ExtractModel) (ip *InputParameters.ExtractParameters, err error) {
	if len(em.MeshFile) == 0 {
		err = fmt.Errorf("must supply a mesh file (-F, --meshFile) in .neu, .su2 or .msh format")
		return
	}
	ip = InputParameters.NewExtractParameters()
	if len(em.InputFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(em.InputFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
	}
	if viper.IsSet("extract.method") {
		ip.BoundaryMethod = viper.GetString("extract.method")
	}
	if viper.IsSet("extract.origin") {
		ip.Origin = viper.GetInt("extract.origin")
	}
	if viper.IsSet("extract.workers") {
		ip.Workers = viper.GetInt("extract.workers")
	}
	if viper.IsSet("extract.strict") {
		ip.Strict = viper.GetBool("extract.strict")
	}
	if viper.IsSet("extract.partitions") {
		ip.Partitions = viper.GetInt("extract.partitions")
	}
	if viper.IsSet("extract.partitionMethod") {
		ip.PartitionMethod = viper.GetString("extract.partitionMethod")
	}
	err = ip.Validate()
	return
}

// RunExtract reads the mesh, extracts its face lists and prints a summary to w
func RunExtract(em *ExtractModel, ip *InputParameters.ExtractParameters, w io.Writer) (res *ExtractResult, err error) {
	var (
		m      *mesh.Mesh
		method facelist.BoundaryMethod
	)
	if method, err = facelist.NewBoundaryMethod(ip.BoundaryMethod); err != nil {
		return
	}
	if m, err = readers.ReadMeshFile(em.MeshFile); err != nil {
		return
	}
	ip.Print(w)
	opts := facelist.Options{Workers: ip.Workers}
	if ip.Strict {
		opts.Unsupported = facelist.FailUnsupported
	}
	ex := facelist.NewExtractor(opts)
	res = &ExtractResult{
		Title:          ip.Title,
		MeshFile:       em.MeshFile,
		BoundaryMethod: method.String(),
	}
	if ip.Partitions > 1 {
		if res.Domains, err = extractDomains(m, ex, ip, method); err != nil {
			return nil, err
		}
		for _, df := range res.Domains {
			fmt.Fprintf(w, "Domain %d: %d elements, ghosts [%d,%d]\n",
				df.Domain, df.Elements, df.LowGhosts, df.HighGhosts)
			printFaceSummary(w, df.Faces)
		}
	} else {
		if res.Faces, err = extractMesh(m, ex, ip, method); err != nil {
			return nil, err
		}
		printFaceSummary(w, res.Faces)
	}
	if len(em.OutputFile) != 0 {
		var data []byte
		if data, err = yaml.Marshal(res); err != nil {
			return nil, err
		}
		if err = ioutil.WriteFile(em.OutputFile, data, 0644); err != nil {
			return nil, err
		}
	}
	return
}

func extractMesh(m *mesh.Mesh, ex *facelist.Extractor, ip *InputParameters.ExtractParameters,
	method facelist.BoundaryMethod) (fl *facelist.FaceList, err error) {
	if ip.LowGhostOffset == 0 && ip.HighGhostOffset == 0 {
		return m.ExternalFaces(ex, ip.Origin, method)
	}
	var zl *facelist.ZoneList
	if zl, err = m.ToZoneList(ip.Origin); err != nil {
		return
	}
	zl.LowOffset, zl.HighOffset = ip.LowGhostOffset, ip.HighGhostOffset
	var materials []int
	if method.UsesMaterials() {
		materials = m.MaterialList()
	}
	return ex.ExtractZoneList(zl, materials, method)
}

func extractDomains(m *mesh.Mesh, ex *facelist.Extractor, ip *InputParameters.ExtractParameters,
	method facelist.BoundaryMethod) (dfs []DomainFaces, err error) {
	config := partition.DefaultConfig(int32(ip.Partitions))
	if config.Method, err = partition.NewMethod(ip.PartitionMethod); err != nil {
		return
	}
	var (
		etop    []int
		domains []*partition.Domain
	)
	if etop, err = partition.NewPartitioner(m, config).Partition(); err != nil {
		return
	}
	if domains, err = partition.Decompose(m, etop, ip.Partitions, ip.Origin); err != nil {
		return
	}
	for _, d := range domains {
		var fl *facelist.FaceList
		if fl, err = d.Extract(ex, method); err != nil {
			return nil, err
		}
		dfs = append(dfs, DomainFaces{
			Domain:     d.ID,
			Elements:   d.NumOwned,
			LowGhosts:  d.LowGhosts,
			HighGhosts: d.HighGhosts,
			Faces:      fl,
		})
	}
	return
}

func printFaceSummary(w io.Writer, fl *facelist.FaceList) {
	fmt.Fprintf(w, "%d external faces, dimension %d\n", fl.NumFaces, fl.Dimension)
	counts := fl.CountBySize()
	sizes := make([]int, 0, len(counts))
	for size := range counts {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		fmt.Fprintf(w, "\t%d faces with %d nodes\n", counts[size], size)
	}
}
