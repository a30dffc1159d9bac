package dna

import "strconv"

// Chromosome identifies an autosome (1-22), the sex chromosomes or
// mitochondrial DNA. The zero value is NoChromosome.
type Chromosome uint8

const (
	NoChromosome Chromosome = 0
	// Chr1 through Chr22 are the plain integers 1..22.
	Chr1  Chromosome = 1
	Chr22 Chromosome = 22
	ChrMT Chromosome = 23
	ChrX  Chromosome = 24
	ChrY  Chromosome = 25
)

// ParseChromosome decodes a chromosome field: "1".."22", "X", "Y", "MT"
// (or "M"). Anything else is NoChromosome.
func ParseChromosome(field []byte) Chromosome {
	switch len(field) {
	case 0:
		return NoChromosome
	case 1:
		switch c := field[0]; {
		case c >= '1' && c <= '9':
			return Chromosome(c - '0')
		case c == 'X':
			return ChrX
		case c == 'Y':
			return ChrY
		case c == 'M':
			return ChrMT
		}
	case 2:
		if field[0] == 'M' && field[1] == 'T' {
			return ChrMT
		}
		a, b := field[0], field[1]
		if a >= '1' && a <= '9' && b >= '0' && b <= '9' {
			if n := (a-'0')*10 + b - '0'; n <= 22 {
				return Chromosome(n)
			}
		}
	}
	return NoChromosome
}

// Autosome reports whether c is one of chromosomes 1-22.
func (c Chromosome) Autosome() bool {
	return c >= Chr1 && c <= Chr22
}

// Sex reports whether c is X or Y.
func (c Chromosome) Sex() bool {
	return c == ChrX || c == ChrY
}

// Valid reports whether c is a defined value.
func (c Chromosome) Valid() bool {
	return c <= ChrY
}

func (c Chromosome) String() string {
	switch {
	case c.Autosome():
		return strconv.Itoa(int(c))
	case c == ChrMT:
		return "MT"
	case c == ChrX:
		return "X"
	case c == ChrY:
		return "Y"
	default:
		return ""
	}
}
