package genome

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/dnatraits/internal/dna"
)

func snp(chr dna.Chromosome, pos dna.Position, gt dna.Genotype) dna.SNP {
	return dna.SNP{Chromosome: chr, Position: pos, Genotype: gt}
}

func indexes() map[string]func(int) Index {
	return map[string]func(int) Index{
		"open": func(n int) Index { return NewOpenIndex(n) },
		"map":  func(n int) Index { return NewMapIndex(n) },
	}
}

func TestNew(t *testing.T) {
	g := New(100)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, dna.RSID(math.MaxUint32), g.First())
	assert.Equal(t, dna.RSID(0), g.Last())
	assert.False(t, g.YChromosome())
	assert.Zero(t, g.LoadFactor())
	assert.Empty(t, g.RSIDs())
}

func TestInsertAndLookup(t *testing.T) {
	for name, newIndex := range indexes() {
		t.Run(name, func(t *testing.T) {
			g := NewWithIndex(newIndex(10))

			require.True(t, g.Insert(7495174, snp(16, 48033965, dna.AA)))
			require.True(t, g.Insert(4778241, snp(15, 28338713, dna.CC)))

			assert.Equal(t, 2, g.Len())
			assert.True(t, g.Has(7495174))
			assert.Equal(t, snp(16, 48033965, dna.AA), g.Get(7495174))
			assert.Equal(t, dna.RSID(4778241), g.First())
			assert.Equal(t, dna.RSID(7495174), g.Last())

			got, ok := g.Lookup(4778241)
			assert.True(t, ok)
			assert.Equal(t, dna.CC, got.Genotype)
		})
	}
}

func TestGetMissingReturnsNoCall(t *testing.T) {
	for name, newIndex := range indexes() {
		t.Run(name, func(t *testing.T) {
			g := NewWithIndex(newIndex(10))
			g.Insert(1, snp(1, 100, dna.AG))

			assert.Equal(t, dna.NoCall, g.Get(999))
			assert.False(t, g.Has(999))
			assert.Equal(t, 1, g.Len(), "lookup must not insert")

			_, ok := g.Lookup(999)
			assert.False(t, ok)
			assert.Equal(t, 1, g.Len())
		})
	}
}

func TestAt(t *testing.T) {
	g := New(10)
	g.Insert(42, snp(2, 5, dna.TT))

	s, err := g.At(42)
	require.NoError(t, err)
	assert.Equal(t, dna.TT, s.Genotype)

	_, err = g.At(43)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "rs43")
}

func TestInsertZeroRejected(t *testing.T) {
	for name, newIndex := range indexes() {
		t.Run(name, func(t *testing.T) {
			g := NewWithIndex(newIndex(10))
			assert.False(t, g.Insert(0, snp(1, 1, dna.AA)))
			assert.Equal(t, 0, g.Len())
			assert.False(t, g.Has(0))
			assert.Equal(t, dna.RSID(math.MaxUint32), g.First())
		})
	}
}

func TestInsertOverwrites(t *testing.T) {
	g := New(10)
	g.Insert(5, snp(1, 10, dna.AA))
	g.Insert(5, snp(1, 10, dna.GG))
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, dna.GG, g.Get(5).Genotype)

	assert.False(t, g.InsertFirst(5, snp(1, 10, dna.TT)))
	assert.Equal(t, dna.GG, g.Get(5).Genotype)
	assert.True(t, g.InsertFirst(6, snp(1, 11, dna.TT)))
}

func TestYChromosomeFlag(t *testing.T) {
	g := New(10)
	g.Insert(1, snp(1, 1, dna.AA))
	assert.False(t, g.YChromosome())
	g.Insert(9786543, snp(dna.ChrY, 2655180, dna.AA))
	assert.True(t, g.YChromosome())
}

func TestOpenIndexGrowth(t *testing.T) {
	idx := NewOpenIndex(4)
	startBuckets := idx.Buckets()
	g := NewWithIndex(idx)

	want := map[dna.RSID]dna.SNP{}
	r := rand.New(rand.NewSource(1))
	for len(want) < 5000 {
		id := dna.RSID(r.Uint32()>>1) + 1
		s := snp(dna.Chromosome(r.Intn(25)+1), r.Uint32(), dna.UnpackGenotype(byte(r.Intn(64))))
		want[id] = s
		g.Insert(id, s)
	}

	assert.Greater(t, idx.Buckets(), startBuckets)
	assert.Equal(t, len(want), g.Len())
	assert.LessOrEqual(t, g.LoadFactor(), 0.5)
	for id, s := range want {
		assert.Equal(t, s, g.Get(id))
	}
}

func TestOpenIndexCapacityHint(t *testing.T) {
	idx := NewOpenIndex(1000)
	buckets := idx.Buckets()
	for i := 1; i <= 1000; i++ {
		idx.Put(dna.RSID(i), snp(1, 1, dna.AA))
	}
	assert.Equal(t, buckets, idx.Buckets(), "hint should avoid rehash")
}

func TestRSIDs(t *testing.T) {
	g := New(10)
	for _, id := range []dna.RSID{30, 10, 20} {
		g.Insert(id, snp(1, id, dna.AA))
	}
	ids := g.RSIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	assert.Equal(t, []dna.RSID{10, 20, 30}, ids)

	// Fresh slice each call.
	ids[0] = 99
	assert.NotContains(t, g.RSIDs(), dna.RSID(99))
}

func TestEqual(t *testing.T) {
	build := func(newIndex func(int) Index) *Genome {
		g := NewWithIndex(newIndex(10))
		g.Insert(1, snp(1, 100, dna.AG))
		g.Insert(2, snp(dna.ChrX, 200, dna.CC))
		return g
	}

	a := build(indexes()["open"])
	b := build(indexes()["map"])
	assert.True(t, a.Equal(b), "equality is independent of index type")
	assert.True(t, b.Equal(a))

	b.Insert(2, snp(dna.ChrX, 200, dna.CT))
	assert.False(t, a.Equal(b))

	c := build(indexes()["open"])
	c.SetYChromosome(true)
	assert.False(t, a.Equal(c))

	d := build(indexes()["open"])
	d.Insert(3, snp(1, 1, dna.AA))
	assert.False(t, a.Equal(d))

	assert.False(t, a.Equal(nil))
}
