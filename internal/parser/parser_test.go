package parser

import (
	"bytes"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
)

func parse(s string, opts Options) (*genome.Genome, *Stats) {
	return Parse([]byte(s), opts)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestParse_SingleRow(t *testing.T) {
	g, _ := parse("# comment\nrs7495174\t16\t48033965\tAA\n", DefaultOptions())

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, dna.SNP{Chromosome: 16, Position: 48033965, Genotype: dna.AA}, g.Get(7495174))
	assert.Equal(t, dna.RSID(7495174), g.First())
	assert.Equal(t, dna.RSID(7495174), g.Last())
	assert.False(t, g.YChromosome())
}

func TestParse_YChromosome(t *testing.T) {
	g, _ := parse("rs9786543\tY\t2655180\tAA\n", DefaultOptions())
	assert.True(t, g.YChromosome())
	assert.Equal(t, dna.ChrY, g.Get(9786543).Chromosome)
}

func TestParse_MalformedGenotype(t *testing.T) {
	g, _ := parse("rs1\t1\t100\tAZ\n", DefaultOptions())
	require.Equal(t, 1, g.Len())
	assert.Equal(t, dna.Genotype{First: dna.A, Second: dna.None}, g.Get(1).Genotype)
}

func TestParse_InternalIDExcluded(t *testing.T) {
	g, stats := parse("i123456\t1\t1000\tAA\n", DefaultOptions())
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Has(123456))
	assert.Equal(t, 1, stats.Internal)
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	input := "" +
		"rs\t1\t100\tAA\n" + // no digits
		"rs0\t1\t100\tAA\n" + // reserved
		"rsX1\t1\t100\tAA\n" +
		"rs5\t1\tabc\tAA\n" + // bad position
		"rs6\t1\n" + // short row
		"foo\t1\t100\tAA\n" +
		"rs7\t2\t700\tCT\n"
	g, stats := parse(input, DefaultOptions())

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, dna.CT, g.Get(7).Genotype)
	assert.Equal(t, 6, stats.Skipped)
	assert.Equal(t, 1, stats.Accepted)
}

func TestParse_LineEndings(t *testing.T) {
	input := "# header\r\nrs1\t1\t100\tAG\r\n\r\nrs2\tX\t200\tT\r\nrs3\t3\t300\tCC"
	g, stats := parse(input, DefaultOptions())

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, dna.SNP{Chromosome: 1, Position: 100, Genotype: dna.AG}, g.Get(1))
	assert.Equal(t, dna.SNP{Chromosome: dna.ChrX, Position: 200, Genotype: dna.Genotype{First: dna.T}}, g.Get(2))
	assert.Equal(t, dna.SNP{Chromosome: 3, Position: 300, Genotype: dna.CC}, g.Get(3), "last line without newline")
	assert.Equal(t, 1, stats.Comments)
	assert.Equal(t, 5, stats.Lines)
}

func TestParse_CommentsAnywhere(t *testing.T) {
	g, stats := parse("#a\nrs1\t1\t1\tAA\n#b\nrs2\t1\t2\tAA\n", DefaultOptions())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 2, stats.Comments)
}

func TestParse_Empty(t *testing.T) {
	g, stats := parse("", DefaultOptions())
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, dna.RSID(math.MaxUint32), g.First())
	assert.Equal(t, dna.RSID(0), g.Last())
	assert.Equal(t, 0, stats.Lines)
}

func TestParse_Mitochondrial(t *testing.T) {
	input := "rs1\t1\t100\tAA\nrs2\tMT\t200\tG\n"

	g, stats := parse(input, DefaultOptions())
	assert.Equal(t, 1, g.Len())
	assert.False(t, g.Has(2))
	assert.Equal(t, 1, stats.Mitochondrial)
	assert.Equal(t, dna.RSID(1), g.Last(), "dropped rows do not move bounds")

	opts := DefaultOptions()
	opts.Mitochondrial = MitochondrialKeep
	g, _ = parse(input, opts)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, dna.ChrMT, g.Get(2).Chromosome)
}

func TestParse_Duplicates(t *testing.T) {
	input := "rs1\t1\t100\tAA\nrs1\t1\t100\tGG\n"

	g, stats := parse(input, DefaultOptions())
	assert.Equal(t, dna.GG, g.Get(1).Genotype)
	assert.Equal(t, 1, stats.Duplicates)

	opts := DefaultOptions()
	opts.Duplicates = FirstWins
	g, stats = parse(input, opts)
	assert.Equal(t, dna.AA, g.Get(1).Genotype)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, g.Len())
}

func TestParse_ZeroOptions(t *testing.T) {
	g, _ := Parse([]byte("rs1\t1\t1\tAA\n"), Options{})
	assert.Equal(t, 1, g.Len())
}

func TestParseFile(t *testing.T) {
	g, stats, err := ParseFile(filepath.Join("testdata", "genome.txt"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 15, g.Len())
	assert.Equal(t, 20, stats.Lines)
	assert.Equal(t, 3, stats.Comments)
	assert.Equal(t, 1, stats.Internal)
	assert.Equal(t, 1, stats.Mitochondrial)
	assert.True(t, g.YChromosome())
	assert.Equal(t, dna.RSID(1234567), g.First())
	assert.Equal(t, dna.RSID(28357092), g.Last())

	assert.Equal(t, dna.NN, g.Get(1234567).Genotype)
	assert.Equal(t, dna.Genotype{First: dna.D, Second: dna.I}, g.Get(28357092).Genotype)
	assert.Equal(t, dna.Genotype{First: dna.G}, g.Get(9786543).Genotype)
	assert.False(t, g.Has(713426))
}

func TestParseFile_Idempotent(t *testing.T) {
	path := filepath.Join("testdata", "genome.txt")
	a, _, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	b, _, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestParseFile_Missing(t *testing.T) {
	g, stats, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, g)
	assert.Nil(t, stats)
}

func TestParseFile_Gzip(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "genome.txt"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeFile(t, "genome.txt.gz", buf.Bytes())
	gz, _, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)

	plain, _ := Parse(raw, DefaultOptions())
	assert.True(t, plain.Equal(gz))
}

func TestParseFile_CorruptGzip(t *testing.T) {
	path := writeFile(t, "bad.gz", []byte{0x1f, 0x8b, 0x08, 0x00, 0x01})
	_, _, err := ParseFile(path, DefaultOptions())
	require.Error(t, err)
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want compression
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, compressionGzip},
		{"zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x14}, compressionZip},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00}, compressionXZ},
		{"text", []byte("# rsid\tchromosome"), compressionNone},
		{"short", []byte{0x1f}, compressionNone},
		{"empty", nil, compressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectCompression(tt.data))
		})
	}
}

func TestPolicyParsing(t *testing.T) {
	d, err := ParseDuplicatePolicy("first")
	require.NoError(t, err)
	assert.Equal(t, FirstWins, d)
	d, err = ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, LastWins, d)
	_, err = ParseDuplicatePolicy("reject")
	assert.Error(t, err)

	m, err := ParseMitochondrialPolicy("KEEP")
	require.NoError(t, err)
	assert.Equal(t, MitochondrialKeep, m)
	_, err = ParseMitochondrialPolicy("drop")
	assert.Error(t, err)

	assert.Equal(t, "first", FirstWins.String())
	assert.Equal(t, "skip", MitochondrialSkip.String())
}
