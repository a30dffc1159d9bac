package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
)

// ErrUnknownSample is returned when a sample has not been exported.
var ErrUnknownSample = errors.New("sample not in database")

// Sample is one row of the samples table.
type Sample struct {
	Name        string
	YChromosome bool
	First       dna.RSID
	Last        dna.RSID
	SNPs        int64
}

// WriteGenome exports g under the given sample name using the Appender API.
// An existing sample of the same name is replaced.
func (s *Store) WriteGenome(sample string, g *genome.Genome) error {
	if err := s.DeleteSample(sample); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		`INSERT INTO samples VALUES (?, ?, ?, ?, ?)`,
		sample, g.YChromosome(), g.First(), g.Last(), int64(g.Len()),
	); err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "snps")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	var appendErr error
	g.Range(func(id dna.RSID, snp dna.SNP) bool {
		appendErr = appender.AppendRow(
			sample, id, snp.Chromosome.String(), snp.Position, snp.Genotype.String(),
		)
		return appendErr == nil
	})
	if appendErr != nil {
		return fmt.Errorf("append snp: %w", appendErr)
	}

	return appender.Flush()
}

// DeleteSample removes a sample and all of its SNPs. Deleting an unknown
// sample is not an error.
func (s *Store) DeleteSample(sample string) error {
	if _, err := s.db.Exec("DELETE FROM snps WHERE sample=?", sample); err != nil {
		return fmt.Errorf("delete snps: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM samples WHERE sample=?", sample); err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}
	return nil
}

// LookupSNP returns the stored record for rsid in sample. The boolean is
// false when the sample has no such rsid.
func (s *Store) LookupSNP(sample string, rsid dna.RSID) (dna.SNP, bool, error) {
	var chrom, gt string
	var pos uint32
	err := s.db.QueryRow(
		`SELECT chrom, pos, genotype FROM snps WHERE sample=? AND rsid=?`,
		sample, rsid,
	).Scan(&chrom, &pos, &gt)
	if errors.Is(err, sql.ErrNoRows) {
		return dna.NoCall, false, nil
	}
	if err != nil {
		return dna.NoCall, false, fmt.Errorf("query snp: %w", err)
	}
	return toSNP(chrom, pos, gt), true, nil
}

// Samples lists exported samples ordered by name.
func (s *Store) Samples() ([]Sample, error) {
	rows, err := s.db.Query(`SELECT
		sample, y_chromosome, first_rsid, last_rsid, snp_count
		FROM samples
		ORDER BY sample`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var smp Sample
		if err := rows.Scan(&smp.Name, &smp.YChromosome, &smp.First, &smp.Last, &smp.SNPs); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}

// LoadGenome rebuilds the genome exported under sample, restoring its
// summary fields from the samples table.
func (s *Store) LoadGenome(sample string) (*genome.Genome, error) {
	var smp Sample
	err := s.db.QueryRow(`SELECT
		y_chromosome, first_rsid, last_rsid, snp_count
		FROM samples WHERE sample=?`, sample,
	).Scan(&smp.YChromosome, &smp.First, &smp.Last, &smp.SNPs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", sample, ErrUnknownSample)
	}
	if err != nil {
		return nil, fmt.Errorf("query sample: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT rsid, chrom, pos, genotype FROM snps WHERE sample=?`, sample)
	if err != nil {
		return nil, fmt.Errorf("query snps: %w", err)
	}
	defer rows.Close()

	g := genome.New(int(smp.SNPs))
	for rows.Next() {
		var id, pos uint32
		var chrom, gt string
		if err := rows.Scan(&id, &chrom, &pos, &gt); err != nil {
			return nil, fmt.Errorf("scan snp: %w", err)
		}
		g.Insert(id, toSNP(chrom, pos, gt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snps: %w", err)
	}

	g.SetYChromosome(smp.YChromosome)
	g.SetBounds(smp.First, smp.Last)
	return g, nil
}

func toSNP(chrom string, pos uint32, gt string) dna.SNP {
	return dna.SNP{
		Chromosome: dna.ParseChromosome([]byte(chrom)),
		Position:   pos,
		Genotype:   dna.ParseGenotype([]byte(gt)),
	}
}
