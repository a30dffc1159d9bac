package dna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allNucleotides = []Nucleotide{None, A, G, C, T, D, I}

func TestParseNucleotide(t *testing.T) {
	tests := []struct {
		in   byte
		want Nucleotide
	}{
		{'A', A}, {'G', G}, {'C', C}, {'T', T}, {'D', D}, {'I', I},
		{'-', None}, {'Z', None}, {'a', None}, {' ', None}, {'\t', None}, {0, None}, {0xff, None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNucleotide(tt.in), "byte %q", tt.in)
	}
}

func TestParseNucleotide_Total(t *testing.T) {
	for b := 0; b < 256; b++ {
		assert.True(t, ParseNucleotide(byte(b)).Valid())
	}
}

func TestComplement(t *testing.T) {
	assert.Equal(t, T, A.Complement())
	assert.Equal(t, A, T.Complement())
	assert.Equal(t, G, C.Complement())
	assert.Equal(t, C, G.Complement())
	assert.Equal(t, D, D.Complement())
	assert.Equal(t, I, I.Complement())
	assert.Equal(t, None, None.Complement())

	for _, n := range allNucleotides {
		assert.Equal(t, n, n.Complement().Complement(), "involution for %v", n)
	}
}

func TestGenotypeComplement(t *testing.T) {
	assert.Equal(t, GG, CC.Complement())
	assert.Equal(t, TC, AG.Complement())
	assert.Equal(t, NN, NN.Complement())
}

func TestGenotypeZeroValue(t *testing.T) {
	var g Genotype
	assert.Equal(t, NN, g)
	assert.True(t, g.NoCall())
	assert.Equal(t, "--", g.String())
}

func TestParseGenotype(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  Genotype
	}{
		{"homozygous", "AA", AA},
		{"heterozygous", "AG", AG},
		{"order kept", "GA", GA},
		{"single char", "D", Genotype{D, None}},
		{"malformed second", "AZ", Genotype{A, None}},
		{"no call", "--", NN},
		{"empty", "", NN},
		{"indel", "DI", Genotype{D, I}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGenotype([]byte(tt.field)))
		})
	}
}

func TestGenotypeMatching(t *testing.T) {
	assert.False(t, AG.Equal(GA))
	assert.True(t, AG.MatchUnphased(GA))
	assert.True(t, AG.MatchUnphased(AG))
	assert.False(t, AG.MatchUnphased(AC))

	assert.True(t, AA.Homozygous())
	assert.False(t, AA.Heterozygous())
	assert.True(t, AG.Heterozygous())
	assert.False(t, NN.Homozygous())
	assert.False(t, Genotype{A, None}.Heterozygous())
}

func TestGenotypePack(t *testing.T) {
	for _, a := range allNucleotides {
		for _, b := range allNucleotides {
			g := Genotype{a, b}
			packed := g.Pack()
			assert.Zero(t, packed&0xc0, "top bits unused for %v", g)
			assert.Equal(t, g, UnpackGenotype(packed))
		}
	}
	assert.Equal(t, byte(0), NN.Pack())
	assert.Equal(t, byte(1|2<<3), AG.Pack())
}

func TestParseChromosome(t *testing.T) {
	tests := []struct {
		in   string
		want Chromosome
	}{
		{"1", 1}, {"9", 9}, {"10", 10}, {"16", 16}, {"22", 22},
		{"X", ChrX}, {"Y", ChrY}, {"MT", ChrMT}, {"M", ChrMT},
		{"23", NoChromosome}, {"0", NoChromosome}, {"", NoChromosome},
		{"chr1", NoChromosome}, {"XY", NoChromosome}, {"05", NoChromosome},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseChromosome([]byte(tt.in)), "field %q", tt.in)
	}
}

func TestChromosomeString(t *testing.T) {
	assert.Equal(t, "1", Chr1.String())
	assert.Equal(t, "22", Chr22.String())
	assert.Equal(t, "MT", ChrMT.String())
	assert.Equal(t, "X", ChrX.String())
	assert.Equal(t, "Y", ChrY.String())
	assert.Equal(t, "", NoChromosome.String())

	for c := Chr1; c <= ChrY; c++ {
		assert.Equal(t, c, ParseChromosome([]byte(c.String())))
	}
}

func TestSNPString(t *testing.T) {
	s := SNP{Chromosome: 16, Position: 48033965, Genotype: AA}
	assert.Equal(t, "AA 16 48033965", s.String())
	assert.Equal(t, "--  0", NoCall.String())
}

func TestParseRSID(t *testing.T) {
	id, err := ParseRSID("rs7495174")
	require.NoError(t, err)
	assert.Equal(t, RSID(7495174), id)

	id, err = ParseRSID("RS12")
	require.NoError(t, err)
	assert.Equal(t, RSID(12), id)

	id, err = ParseRSID("4778241")
	require.NoError(t, err)
	assert.Equal(t, RSID(4778241), id)

	for _, bad := range []string{"", "rs", "i123", "rs0", "rs-1", "rs99999999999"} {
		_, err := ParseRSID(bad)
		assert.Error(t, err, "input %q", bad)
	}

	assert.Equal(t, "rs42", FormatRSID(42))
}
