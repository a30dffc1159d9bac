package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/duckdb"
)

type exportFlags struct {
	db     string
	sample string
	list   bool
	delete string
	verify bool
}

func newExportCmd(a *app) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a genome into a DuckDB database",
		Long: `Export a genome into a DuckDB database for SQL queries. SNPs go to the
"snps" table keyed by (sample, rsid); per-sample summary fields go to the
"samples" table. Exporting a sample name again replaces it.`,
		Example: `  dnatraits export genome_Jane_Doe.txt --sample jane
  dnatraits export --list
  dnatraits export --delete jane
  duckdb ~/.dnatraits/genomes.duckdb "SELECT * FROM snps WHERE rsid = 12913832"`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.db == "" {
				f.db = a.v.GetString("export.database")
			}
			w := cmd.OutOrStdout()
			switch {
			case f.list:
				return a.runExportList(w, f)
			case f.delete != "":
				return a.runExportDelete(w, f)
			case len(args) == 1:
				return a.runExport(w, args[0], f)
			}
			return &usageError{err: fmt.Errorf("a genome file, --list or --delete is required")}
		},
	}
	cmd.Flags().StringVar(&f.db, "db", "", "DuckDB database path (default from export.database)")
	cmd.Flags().StringVar(&f.sample, "sample", "", "Sample name (default: file name without extension)")
	cmd.Flags().BoolVar(&f.list, "list", false, "List exported samples")
	cmd.Flags().StringVar(&f.delete, "delete", "", "Remove an exported sample")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Read the sample back and compare it with the source")
	return cmd
}

func sampleName(path string) string {
	base := filepath.Base(path)
	for ext := filepath.Ext(base); ext != ""; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func (a *app) runExport(w io.Writer, path string, f exportFlags) error {
	g, err := a.loadGenome(path)
	if err != nil {
		return err
	}

	sample := f.sample
	if sample == "" {
		sample = sampleName(path)
	}

	store, err := duckdb.Open(f.db)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WriteGenome(sample, g); err != nil {
		return fmt.Errorf("export %s: %w", sample, err)
	}
	if f.verify {
		back, err := store.LoadGenome(sample)
		if err != nil {
			return fmt.Errorf("verify %s: %w", sample, err)
		}
		if !g.Equal(back) {
			return fmt.Errorf("verify %s: exported genome differs from source", sample)
		}
	}
	a.logger.Debug("exported genome",
		zap.String("sample", sample),
		zap.String("db", f.db),
		zap.Int("snps", g.Len()))

	if a.jsonOut {
		return printJSON(w, map[string]any{"sample": sample, "db": f.db, "snps": g.Len()})
	}
	fmt.Fprintf(w, "Exported %d SNPs as %q to %s\n", g.Len(), sample, f.db)
	return nil
}

type sampleRow struct {
	Sample      string `json:"sample"`
	SNPs        int64  `json:"snps"`
	YChromosome bool   `json:"y_chromosome"`
	First       string `json:"first_rsid"`
	Last        string `json:"last_rsid"`
}

func (a *app) runExportList(w io.Writer, f exportFlags) error {
	store, err := duckdb.Open(f.db)
	if err != nil {
		return err
	}
	defer store.Close()

	samples, err := store.Samples()
	if err != nil {
		return err
	}

	rows := make([]sampleRow, 0, len(samples))
	for _, s := range samples {
		r := sampleRow{Sample: s.Name, SNPs: s.SNPs, YChromosome: s.YChromosome}
		if s.SNPs > 0 {
			r.First = dna.FormatRSID(s.First)
			r.Last = dna.FormatRSID(s.Last)
		}
		rows = append(rows, r)
	}

	if a.jsonOut {
		return printJSON(w, rows)
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d SNPs\tY=%t\t%s..%s\n", r.Sample, r.SNPs, r.YChromosome, r.First, r.Last)
	}
	return nil
}

func (a *app) runExportDelete(w io.Writer, f exportFlags) error {
	store, err := duckdb.Open(f.db)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSample(f.delete); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted %q from %s\n", f.delete, f.db)
	return nil
}
