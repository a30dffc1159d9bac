package dna

// Genotype is an unphased diploid call. (A,G) and (G,A) are stored as
// given; use MatchUnphased to compare without regard to order.
type Genotype struct {
	First  Nucleotide
	Second Nucleotide
}

// Common genotypes.
var (
	AA = Genotype{A, A}
	AC = Genotype{A, C}
	AG = Genotype{A, G}
	AT = Genotype{A, T}
	CA = Genotype{C, A}
	CC = Genotype{C, C}
	CG = Genotype{C, G}
	CT = Genotype{C, T}
	GA = Genotype{G, A}
	GC = Genotype{G, C}
	GG = Genotype{G, G}
	GT = Genotype{G, T}
	NN = Genotype{None, None}
	TA = Genotype{T, A}
	TC = Genotype{T, C}
	TG = Genotype{T, G}
	TT = Genotype{T, T}
)

// ParseGenotype decodes a genotype field such as "AG". Only the first two
// bytes are looked at; a one-byte field leaves Second as None.
func ParseGenotype(field []byte) Genotype {
	var g Genotype
	if len(field) > 0 {
		g.First = nucleotideTable[field[0]]
	}
	if len(field) > 1 {
		g.Second = nucleotideTable[field[1]]
	}
	return g
}

// Complement complements each strand.
func (g Genotype) Complement() Genotype {
	return Genotype{g.First.Complement(), g.Second.Complement()}
}

// Reverse swaps the two calls.
func (g Genotype) Reverse() Genotype {
	return Genotype{g.Second, g.First}
}

// Equal is an exact, order-sensitive comparison.
func (g Genotype) Equal(o Genotype) bool {
	return g == o
}

// MatchUnphased reports whether g equals o in either order.
func (g Genotype) MatchUnphased(o Genotype) bool {
	return g == o || g.Reverse() == o
}

// NoCall reports whether neither strand was called.
func (g Genotype) NoCall() bool {
	return g == NN
}

// Homozygous reports whether both strands carry the same called base.
func (g Genotype) Homozygous() bool {
	return g.First != None && g.First == g.Second
}

// Heterozygous reports whether both strands are called and differ.
func (g Genotype) Heterozygous() bool {
	return g.First != None && g.Second != None && g.First != g.Second
}

// Pack encodes g into one byte: First in bits 0-2, Second in bits 3-5.
func (g Genotype) Pack() byte {
	return byte(g.First&0x7) | byte(g.Second&0x7)<<3
}

// UnpackGenotype is the inverse of Genotype.Pack.
func UnpackGenotype(b byte) Genotype {
	return Genotype{Nucleotide(b & 0x7), Nucleotide(b >> 3 & 0x7)}
}

func (g Genotype) String() string {
	return string([]byte{g.First.Byte(), g.Second.Byte()})
}
