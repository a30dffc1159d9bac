package genome

import "github.com/inodb/dnatraits/internal/dna"

// IntersectRSID returns the rsids present in both a and b. Order is
// unspecified; the set is the same whichever argument comes first.
func IntersectRSID(a, b *Genome) []dna.RSID {
	small, large := bySize(a, b)
	var ids []dna.RSID
	small.Range(func(id dna.RSID, _ dna.SNP) bool {
		if large.Has(id) {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// IntersectSNP returns the rsids present in both a and b with identical
// genotypes, compared in stored orientation.
func IntersectSNP(a, b *Genome) []dna.RSID {
	small, large := bySize(a, b)
	var ids []dna.RSID
	small.Range(func(id dna.RSID, snp dna.SNP) bool {
		if other, ok := large.Lookup(id); ok && other.Genotype == snp.Genotype {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// Concordance is the share of shared rsids whose genotypes match exactly.
// Returns 0 when the genomes share no rsids.
func Concordance(a, b *Genome) float64 {
	shared := len(IntersectRSID(a, b))
	if shared == 0 {
		return 0
	}
	return float64(len(IntersectSNP(a, b))) / float64(shared)
}

// IntersectRSID returns the rsids g shares with o.
func (g *Genome) IntersectRSID(o *Genome) []dna.RSID {
	return IntersectRSID(g, o)
}

// IntersectSNP returns the rsids where g and o carry the same genotype.
func (g *Genome) IntersectSNP(o *Genome) []dna.RSID {
	return IntersectSNP(g, o)
}

func bySize(a, b *Genome) (small, large *Genome) {
	if b.Len() < a.Len() {
		return b, a
	}
	return a, b
}
