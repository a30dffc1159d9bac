// Package dna provides the nucleotide, genotype and SNP record types used by
// the genome store and its codecs.
package dna

// Nucleotide is a single base call. The zero value is None (no call).
// Values fit in three bits so two of them pack into one byte.
type Nucleotide uint8

const (
	None Nucleotide = iota
	A
	G
	C
	T
	D // deletion
	I // insertion
)

// nucleotideTable maps every input byte to its Nucleotide.
// Built once in init and read-only afterwards.
var nucleotideTable [256]Nucleotide

var complementTable = [...]Nucleotide{
	None: None,
	A:    T,
	G:    C,
	C:    G,
	T:    A,
	D:    D,
	I:    I,
}

func init() {
	nucleotideTable['A'] = A
	nucleotideTable['G'] = G
	nucleotideTable['C'] = C
	nucleotideTable['T'] = T
	nucleotideTable['D'] = D
	nucleotideTable['I'] = I
}

// ParseNucleotide decodes a genotype character. Any byte that is not one of
// A, G, C, T, D or I decodes to None.
func ParseNucleotide(b byte) Nucleotide {
	return nucleotideTable[b]
}

// Complement returns the Watson-Crick partner of n.
// None, D and I are their own complement.
func (n Nucleotide) Complement() Nucleotide {
	if int(n) >= len(complementTable) {
		return None
	}
	return complementTable[n]
}

// Valid reports whether n is one of the defined values.
func (n Nucleotide) Valid() bool {
	return n <= I
}

// Byte returns the display character for n; '-' for None.
func (n Nucleotide) Byte() byte {
	switch n {
	case A:
		return 'A'
	case G:
		return 'G'
	case C:
		return 'C'
	case T:
		return 'T'
	case D:
		return 'D'
	case I:
		return 'I'
	default:
		return '-'
	}
}

func (n Nucleotide) String() string {
	return string(n.Byte())
}
