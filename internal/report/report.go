// Package report answers the small trait questions printed by the CLI.
// Every query is a read-only lookup against a loaded genome.
package report

import (
	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
)

// Gender as inferred from the presence of Y-chromosome rows.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// SkinColor is the rs1426654 interpretation.
type SkinColor string

const (
	SkinLight   SkinColor = "Probably light-skinned, European ancestry"
	SkinMixed   SkinColor = "Mixed African/European ancestry possible"
	SkinDarker  SkinColor = "Probably darker-skinned, Asian or African ancestry"
	SkinUnknown SkinColor = "Unknown"
)

// Summary is the result of Summarize.
type Summary struct {
	Gender    Gender    `json:"gender"`
	BlueEyes  bool      `json:"blue_eyes"`
	SkinColor SkinColor `json:"skin_color"`
	SNPs      int       `json:"snps"`
	First     dna.RSID  `json:"first_rsid"`
	Last      dna.RSID  `json:"last_rsid"`
}

// Summarize runs all summary queries against g.
func Summarize(g *genome.Genome) Summary {
	return Summary{
		Gender:    GenderOf(g),
		BlueEyes:  BlueEyes(g),
		SkinColor: Skin(g),
		SNPs:      g.Len(),
		First:     g.First(),
		Last:      g.Last(),
	}
}

// GenderOf reports Male when any Y-chromosome row was loaded.
func GenderOf(g *genome.Genome) Gender {
	if g.YChromosome() {
		return Male
	}
	return Female
}

// gs237 lists the SNPedia gs237 criteria for blue eyes. Genotypes are
// compared exactly, on the strand the export reports.
var gs237 = []struct {
	rsid dna.RSID
	want dna.Genotype
}{
	{4778241, dna.CC},
	{12913832, dna.GG},
	{7495174, dna.AA},
	{8028689, dna.TT},
	{7183877, dna.CC},
	{1800401, dna.CC.Complement()},
}

// BlueEyes reports whether g meets every gs237 criterion. A missing rsid
// fails the check.
func BlueEyes(g *genome.Genome) bool {
	for _, c := range gs237 {
		if g.Get(c.rsid).Genotype != c.want {
			return false
		}
	}
	return true
}

// Skin interprets rs1426654.
func Skin(g *genome.Genome) SkinColor {
	switch gt := g.Get(1426654).Genotype; {
	case gt == dna.AA:
		return SkinLight
	case gt.MatchUnphased(dna.AG):
		return SkinMixed
	case gt == dna.GG:
		return SkinDarker
	}
	return SkinUnknown
}
