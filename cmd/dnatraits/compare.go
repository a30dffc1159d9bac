package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
)

func newCompareCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "compare <file-a> <file-b>",
		Short: "Compare two genomes",
		Long: `Load two genomes concurrently and report how many rsids they share and how
many of the shared rsids carry the same genotype.`,
		Example: `  dnatraits compare mother.txt child.txt
  dnatraits compare --list --json a.dnt b.txt`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd.OutOrStdout(), args[0], args[1], list)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List rsids whose genotypes differ")
	return cmd
}

type comparison struct {
	A           string   `json:"a"`
	B           string   `json:"b"`
	SNPsA       int      `json:"snps_a"`
	SNPsB       int      `json:"snps_b"`
	Shared      int      `json:"shared"`
	Identical   int      `json:"identical"`
	Concordance float64  `json:"concordance"`
	Different   []string `json:"different,omitempty"`
}

func (a *app) runCompare(w io.Writer, pathA, pathB string, list bool) error {
	l, err := a.newLoader()
	if err != nil {
		return err
	}

	var ga, gb *genome.Genome
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		ga, err = l.load(pathA)
		return err
	})
	eg.Go(func() error {
		var err error
		gb, err = l.load(pathB)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	shared := genome.IntersectRSID(ga, gb)
	identical := genome.IntersectSNP(ga, gb)

	res := comparison{
		A:           pathA,
		B:           pathB,
		SNPsA:       ga.Len(),
		SNPsB:       gb.Len(),
		Shared:      len(shared),
		Identical:   len(identical),
		Concordance: genome.Concordance(ga, gb),
	}

	if list {
		same := make(map[dna.RSID]struct{}, len(identical))
		for _, id := range identical {
			same[id] = struct{}{}
		}
		slices.Sort(shared)
		for _, id := range shared {
			if _, ok := same[id]; !ok {
				res.Different = append(res.Different, dna.FormatRSID(id))
			}
		}
	}

	if a.jsonOut {
		return printJSON(w, res)
	}

	fmt.Fprintf(w, "A:            %s (%d SNPs)\n", res.A, res.SNPsA)
	fmt.Fprintf(w, "B:            %s (%d SNPs)\n", res.B, res.SNPsB)
	fmt.Fprintf(w, "Shared rsids: %d\n", res.Shared)
	fmt.Fprintf(w, "Identical:    %d\n", res.Identical)
	fmt.Fprintf(w, "Concordance:  %.4f\n", res.Concordance)
	if list {
		for _, id := range res.Different {
			rsid, _ := dna.ParseRSID(id)
			fmt.Fprintf(w, "%s\t%s\t%s\n", id, ga.Get(rsid).Genotype, gb.Get(rsid).Genotype)
		}
	}
	return nil
}
