package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/parser"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a raw genotype export and report statistics",
		Long: `Parse a 23andMe raw genotype export and report what was read. The cache is
bypassed so the statistics always describe the text file.`,
		Example: `  dnatraits parse genome_Jane_Doe_v5_Full.txt
  dnatraits parse --json genome.zip`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd.OutOrStdout(), args[0])
		},
	}
}

type parseResult struct {
	File        string        `json:"file"`
	SNPs        int           `json:"snps"`
	First       string        `json:"first_rsid"`
	Last        string        `json:"last_rsid"`
	YChromosome bool          `json:"y_chromosome"`
	LoadFactor  float64       `json:"load_factor"`
	Stats       *parser.Stats `json:"stats"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

func (a *app) runParse(w io.Writer, path string) error {
	opts, err := a.parseOptions()
	if err != nil {
		return err
	}

	start := time.Now()
	g, stats, err := parser.ParseFile(path, opts)
	if err != nil {
		return err
	}

	res := parseResult{
		File:        path,
		SNPs:        g.Len(),
		YChromosome: g.YChromosome(),
		LoadFactor:  g.LoadFactor(),
		Stats:       stats,
		Elapsed:     time.Since(start),
	}
	if g.Len() > 0 {
		res.First = dna.FormatRSID(g.First())
		res.Last = dna.FormatRSID(g.Last())
	}

	if a.jsonOut {
		return printJSON(w, res)
	}

	fmt.Fprintf(w, "File:          %s\n", res.File)
	fmt.Fprintf(w, "SNPs:          %d\n", res.SNPs)
	fmt.Fprintf(w, "First rsid:    %s\n", res.First)
	fmt.Fprintf(w, "Last rsid:     %s\n", res.Last)
	fmt.Fprintf(w, "Y chromosome:  %t\n", res.YChromosome)
	fmt.Fprintf(w, "Load factor:   %.3f\n", res.LoadFactor)
	fmt.Fprintf(w, "Lines:         %d (%d comments)\n", stats.Lines, stats.Comments)
	fmt.Fprintf(w, "Skipped:       %d malformed, %d internal, %d mitochondrial\n",
		stats.Skipped, stats.Internal, stats.Mitochondrial)
	fmt.Fprintf(w, "Duplicates:    %d\n", stats.Duplicates)
	fmt.Fprintf(w, "Elapsed:       %s\n", res.Elapsed.Round(time.Microsecond))
	return nil
}
