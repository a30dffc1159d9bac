package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/duckdb"
	"github.com/inodb/dnatraits/internal/genome"
)

func newGetCmd(a *app) *cobra.Command {
	var sample, db string
	cmd := &cobra.Command{
		Use:   "get <file> <rsid>...",
		Short: "Look up SNPs by rsid",
		Long: `Look up one or more SNPs by rsid. Ids may be written with or without the
"rs" prefix. Missing ids are reported, not treated as errors.

With --sample, the ids are looked up in a sample previously exported to
DuckDB and no file argument is given.`,
		Example: `  dnatraits get genome.txt rs12913832
  dnatraits get --json genome.dnt 1426654 rs4778241
  dnatraits get --sample jane rs12913832`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sample != "" {
				if db == "" {
					db = a.v.GetString("export.database")
				}
				return a.runGetSample(cmd.OutOrStdout(), db, sample, args)
			}
			if len(args) < 2 {
				return &usageError{err: fmt.Errorf("requires a genome file and at least one rsid")}
			}
			return a.runGet(cmd.OutOrStdout(), args[0], args[1:])
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "", "Look up in this exported DuckDB sample")
	cmd.Flags().StringVar(&db, "db", "", "DuckDB database path (default from export.database)")
	return cmd
}

type lookup struct {
	RSID       string `json:"rsid"`
	Found      bool   `json:"found"`
	Chromosome string `json:"chromosome,omitempty"`
	Position   uint32 `json:"position,omitempty"`
	Genotype   string `json:"genotype,omitempty"`
}

func parseRSIDs(ids []string) ([]dna.RSID, error) {
	rsids := make([]dna.RSID, 0, len(ids))
	for _, s := range ids {
		id, err := dna.ParseRSID(s)
		if err != nil {
			return nil, &usageError{err: err}
		}
		rsids = append(rsids, id)
	}
	return rsids, nil
}

func found(id dna.RSID, snp dna.SNP) lookup {
	return lookup{
		RSID:       dna.FormatRSID(id),
		Found:      true,
		Chromosome: snp.Chromosome.String(),
		Position:   snp.Position,
		Genotype:   snp.Genotype.String(),
	}
}

func (a *app) runGet(w io.Writer, path string, ids []string) error {
	rsids, err := parseRSIDs(ids)
	if err != nil {
		return err
	}

	g, err := a.loadGenome(path)
	if err != nil {
		return err
	}

	results := make([]lookup, 0, len(rsids))
	for _, id := range rsids {
		snp, err := g.At(id)
		switch {
		case errors.Is(err, genome.ErrNotFound):
			results = append(results, lookup{RSID: dna.FormatRSID(id)})
		case err != nil:
			return err
		default:
			results = append(results, found(id, snp))
		}
	}
	return a.printLookups(w, results)
}

func (a *app) runGetSample(w io.Writer, db, sample string, ids []string) error {
	rsids, err := parseRSIDs(ids)
	if err != nil {
		return err
	}

	store, err := duckdb.Open(db)
	if err != nil {
		return err
	}
	defer store.Close()

	results := make([]lookup, 0, len(rsids))
	for _, id := range rsids {
		snp, ok, err := store.LookupSNP(sample, id)
		if err != nil {
			return err
		}
		if !ok {
			results = append(results, lookup{RSID: dna.FormatRSID(id)})
			continue
		}
		results = append(results, found(id, snp))
	}
	return a.printLookups(w, results)
}

func (a *app) printLookups(w io.Writer, results []lookup) error {
	if a.jsonOut {
		return printJSON(w, results)
	}
	for _, l := range results {
		if !l.Found {
			fmt.Fprintf(w, "%s\tnot found\n", l.RSID)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", l.RSID, l.Genotype, l.Chromosome, l.Position)
	}
	return nil
}
