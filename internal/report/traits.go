package report

import (
	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
)

// Phenotypes maps genotypes to a description. Lookups ignore phasing.
type Phenotypes map[dna.Genotype]string

// Match returns the description for gt, trying the reversed genotype when
// the exact one is not listed, and fallback when neither is.
func (p Phenotypes) Match(gt dna.Genotype, fallback string) string {
	if s, ok := p[gt]; ok {
		return s
	}
	if s, ok := p[gt.Reverse()]; ok {
		return s
	}
	return fallback
}

// Trait is one single-SNP trait lookup.
type Trait struct {
	Name       string
	RSID       dna.RSID
	Phenotypes Phenotypes
}

// Result is a trait evaluated against a genome.
type Result struct {
	Name      string       `json:"name"`
	RSID      string       `json:"rsid"`
	Genotype  dna.Genotype `json:"-"`
	Phenotype string       `json:"phenotype"`
}

const unknown = "<Unknown>"

// Traits are the single-SNP lookups reported by Evaluate.
var Traits = []Trait{
	{
		Name: "Alcohol flush reaction",
		RSID: 671,
		Phenotypes: Phenotypes{
			dna.AA: "High reaction (no copies of the ALDH2 gene)",
			dna.AG: "Moderate reaction (one copy of the ALDH2 gene)",
			dna.GG: "Little or no reaction (two copies of the ALDH2 gene)",
		},
	},
	{
		Name: "Bitter taste",
		RSID: 713598,
		Phenotypes: Phenotypes{
			dna.GG: "Can taste bitter flavours that others can't",
			dna.CG: "Can taste bitter flavours that others can't",
			dna.CC: "Probably can't taste certain bitter flavours",
		},
	},
	{
		Name: "Earwax type",
		RSID: 17822931,
		Phenotypes: Phenotypes{
			dna.CC: "Wet earwax (sticky, golden color)",
			dna.CT: "Wet earwax (sticky, golden color)",
			dna.TT: "Dry earwax (flaky, pale)",
		},
	},
	{
		Name: "Eye color",
		RSID: 12913832,
		Phenotypes: Phenotypes{
			dna.AA: "Brown eyes, although 14% have green and 1% have blue",
			dna.AG: "Most likely brown or green, but 7% have blue",
			dna.GG: "Most likely blue, but 30% have green and 1% brown",
		},
	},
	{
		Name: "Lactose intolerance",
		RSID: 4988235,
		Phenotypes: Phenotypes{
			dna.AA: "Likely lactose tolerant",
			dna.AG: "Likely lactose tolerant",
			dna.GG: "Likely lactose intolerant",
		},
	},
}

// Evaluate looks up every trait in g.
func Evaluate(g *genome.Genome) []Result {
	results := make([]Result, 0, len(Traits))
	for _, t := range Traits {
		gt := g.Get(t.RSID).Genotype
		results = append(results, Result{
			Name:      t.Name,
			RSID:      dna.FormatRSID(t.RSID),
			Genotype:  gt,
			Phenotype: t.Phenotypes.Match(gt, unknown),
		})
	}
	return results
}
