package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inodb/dnatraits/internal/report"
)

func newSummaryCmd(a *app) *cobra.Command {
	var traits bool
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print gender, eye and skin color inferences",
		Example: `  dnatraits summary genome.txt
  dnatraits summary --traits genome.dnt`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSummary(cmd.OutOrStdout(), args[0], traits)
		},
	}
	cmd.Flags().BoolVar(&traits, "traits", false, "Also report single-SNP trait lookups")
	return cmd
}

type summaryResult struct {
	report.Summary
	Traits []report.Result `json:"traits,omitempty"`
}

func (a *app) runSummary(w io.Writer, path string, traits bool) error {
	g, err := a.loadGenome(path)
	if err != nil {
		return err
	}

	res := summaryResult{Summary: report.Summarize(g)}
	if traits {
		res.Traits = report.Evaluate(g)
	}

	if a.jsonOut {
		return printJSON(w, res)
	}

	blue := "No"
	if res.BlueEyes {
		blue = "Yes"
	}

	fmt.Fprintf(w, "SUMMARY\n\n")
	fmt.Fprintf(w, "  Gender:     %s (has Y-chromosome: %t)\n", res.Gender, g.YChromosome())
	fmt.Fprintf(w, "  Blue eyes?  %s (based on criteria gs237)\n", blue)
	fmt.Fprintf(w, "  Skin color: %s (based on rs1426654)\n", res.SkinColor)
	fmt.Fprintf(w, "  SNPs:       %d\n", res.SNPs)

	if traits {
		fmt.Fprintf(w, "\nTRAITS\n\n")
		for _, t := range res.Traits {
			fmt.Fprintf(w, "  %-24s %-11s %s  %s\n", t.Name, t.RSID, t.Genotype, t.Phenotype)
		}
	}
	return nil
}
