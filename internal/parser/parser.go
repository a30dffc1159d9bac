// Package parser loads 23andMe-style raw genotype exports into a genome
// store. Files are memory-mapped and scanned in place.
package parser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
	"github.com/inodb/dnatraits/internal/mmfile"
)

// Stats counts what the scanner saw.
type Stats struct {
	Lines         int // all lines, including comments and blanks
	Comments      int
	Accepted      int // rs rows that reached the store policy checks
	Internal      int // rows with an i<digits> id
	Skipped       int // malformed rows
	Mitochondrial int // MT rows dropped by policy
	Duplicates    int // rsids seen more than once
}

// ParseFile maps the file at path and parses it. Gzip, zip and xz
// compressed exports are decompressed in memory first. Failing to open or
// map the file is the only error; content anomalies are tolerated.
func ParseFile(path string, opts Options) (*genome.Genome, *Stats, error) {
	opts = opts.withDefaults()

	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open genome file: %w", err)
	}
	defer cleanup()

	if c := detectCompression(data); c != compressionNone {
		opts.Logger.Debug("decompressing genome file",
			zap.String("path", path),
			zap.Stringer("compression", c))
		data, err = decompress(data, c)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}

	g, stats := Parse(data, opts)
	opts.Logger.Debug("parsed genome file",
		zap.String("path", path),
		zap.Int("snps", g.Len()),
		zap.Int("lines", stats.Lines),
		zap.Int("internal", stats.Internal),
		zap.Int("skipped", stats.Skipped),
		zap.Int("mitochondrial", stats.Mitochondrial),
		zap.Int("duplicates", stats.Duplicates))
	return g, stats, nil
}

// Parse scans an export held in data. It never fails: comment lines,
// internal ids and malformed rows are counted and skipped, and unknown
// genotype letters decode to dna.None. The returned genome holds no
// references into data.
func Parse(data []byte, opts Options) (*genome.Genome, *Stats) {
	opts = opts.withDefaults()
	g := genome.New(opts.Capacity)
	stats := &Stats{}
	s := &scanner{data: data}

	for !s.done() {
		switch c := s.peek(); {
		case c == '#':
			stats.Comments++
			s.skipLine()
			continue
		case c == '\n' || c == '\r':
			s.skipLine()
			continue
		case c != 'r':
			if c == 'i' {
				stats.Internal++
			} else {
				stats.Skipped++
			}
			s.skipLine()
			continue
		}

		rsid, ok := parseRSID(s.field())
		if !ok {
			stats.Skipped++
			opts.Logger.Debug("skipping row with malformed rsid", zap.Int("line", s.line+1))
			s.skipLine()
			continue
		}
		chr := dna.ParseChromosome(s.field())
		pos, ok := parseUint32(s.field())
		if !ok {
			stats.Skipped++
			opts.Logger.Debug("skipping row with malformed position",
				zap.Int("line", s.line+1),
				zap.String("rsid", dna.FormatRSID(rsid)))
			s.skipLine()
			continue
		}
		gt := dna.ParseGenotype(s.field())
		s.skipLine()

		stats.Accepted++
		if chr == dna.ChrY {
			g.SetYChromosome(true)
		}
		if chr == dna.ChrMT && opts.Mitochondrial == MitochondrialSkip {
			stats.Mitochondrial++
			continue
		}

		snp := dna.SNP{Chromosome: chr, Position: pos, Genotype: gt}
		if g.Has(rsid) {
			stats.Duplicates++
			if opts.Duplicates == FirstWins {
				continue
			}
		}
		g.Insert(rsid, snp)
	}
	stats.Lines = s.line

	return g, stats
}
