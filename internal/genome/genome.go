// Package genome provides the in-memory SNP store built from a genotype
// export, with point lookups, set operations and equality.
package genome

import (
	"errors"
	"fmt"
	"math"

	"github.com/inodb/dnatraits/internal/dna"
)

// DefaultCapacity fits a typical 23andMe export (600k-1M rows) without
// rehashing during load.
const DefaultCapacity = 1000000

// ErrNotFound is returned by At for rsids that are not stored.
var ErrNotFound = errors.New("rsid not in genome")

// Genome maps rsids to SNP records and tracks summary fields that are
// updated as records are inserted.
type Genome struct {
	index       Index
	first       dna.RSID
	last        dna.RSID
	yChromosome bool
}

// New creates an empty genome backed by an OpenIndex sized for capacity
// records.
func New(capacity int) *Genome {
	return NewWithIndex(NewOpenIndex(capacity))
}

// NewWithIndex creates an empty genome over idx, which must be empty.
func NewWithIndex(idx Index) *Genome {
	return &Genome{
		index: idx,
		first: math.MaxUint32,
	}
}

// Insert stores snp under rsid, overwriting any earlier record.
// Returns false, and stores nothing, for the reserved rsid 0.
func (g *Genome) Insert(rsid dna.RSID, snp dna.SNP) bool {
	if rsid == 0 {
		return false
	}
	g.index.Put(rsid, snp)
	g.first = min(g.first, rsid)
	g.last = max(g.last, rsid)
	if snp.Chromosome == dna.ChrY {
		g.yChromosome = true
	}
	return true
}

// InsertFirst stores snp only if rsid is not already present.
func (g *Genome) InsertFirst(rsid dna.RSID, snp dna.SNP) bool {
	if g.Has(rsid) {
		return false
	}
	return g.Insert(rsid, snp)
}

// Has reports whether rsid is stored.
func (g *Genome) Has(rsid dna.RSID) bool {
	_, ok := g.index.Get(rsid)
	return ok
}

// Get returns the record for rsid, or dna.NoCall if it is absent.
func (g *Genome) Get(rsid dna.RSID) dna.SNP {
	snp, _ := g.index.Get(rsid)
	return snp
}

// Lookup returns the record for rsid and whether it was present.
func (g *Genome) Lookup(rsid dna.RSID) (dna.SNP, bool) {
	return g.index.Get(rsid)
}

// At returns the record for rsid or an error wrapping ErrNotFound.
func (g *Genome) At(rsid dna.RSID) (dna.SNP, error) {
	snp, ok := g.index.Get(rsid)
	if !ok {
		return dna.NoCall, fmt.Errorf("%s: %w", dna.FormatRSID(rsid), ErrNotFound)
	}
	return snp, nil
}

// Len returns the number of stored records.
func (g *Genome) Len() int {
	return g.index.Len()
}

// LoadFactor returns records per index bucket.
func (g *Genome) LoadFactor() float64 {
	b := g.index.Buckets()
	if b == 0 {
		return 0
	}
	return float64(g.index.Len()) / float64(b)
}

// RSIDs returns every stored rsid in index order. The slice is fresh on
// each call.
func (g *Genome) RSIDs() []dna.RSID {
	ids := make([]dna.RSID, 0, g.index.Len())
	g.index.Range(func(id dna.RSID, _ dna.SNP) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Range calls fn for every record until fn returns false.
func (g *Genome) Range(fn func(dna.RSID, dna.SNP) bool) {
	g.index.Range(fn)
}

// First returns the lowest rsid inserted, or math.MaxUint32 if none.
func (g *Genome) First() dna.RSID { return g.first }

// Last returns the highest rsid inserted, or 0 if none.
func (g *Genome) Last() dna.RSID { return g.last }

// YChromosome reports whether any Y-chromosome row was seen.
func (g *Genome) YChromosome() bool { return g.yChromosome }

// SetYChromosome records that a Y-chromosome row was seen.
func (g *Genome) SetYChromosome(y bool) { g.yChromosome = y }

// SetBounds overrides the first/last summary fields. Decoders use it to
// restore persisted values.
func (g *Genome) SetBounds(first, last dna.RSID) {
	g.first, g.last = first, last
}

// Equal reports whether both genomes carry the same summary fields and the
// same record for every rsid.
func (g *Genome) Equal(o *Genome) bool {
	if g == o {
		return true
	}
	if o == nil || g == nil {
		return false
	}
	if g.first != o.first || g.last != o.last || g.yChromosome != o.yChromosome {
		return false
	}
	if g.Len() != o.Len() {
		return false
	}
	equal := true
	g.index.Range(func(id dna.RSID, snp dna.SNP) bool {
		other, ok := o.index.Get(id)
		equal = ok && other == snp
		return equal
	})
	return equal
}
