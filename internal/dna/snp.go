package dna

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a base-pair offset within a chromosome.
type Position = uint32

// RSID is the numeric part of a reference SNP id ("rs123" -> 123).
// Zero is reserved as the empty key and never names a stored SNP.
type RSID = uint32

// SNP is a single record keyed externally by its RSID.
type SNP struct {
	Chromosome Chromosome
	Position   Position
	Genotype   Genotype
}

// NoCall is returned by soft lookups of absent rsids.
var NoCall = SNP{}

// Equal compares all three fields.
func (s SNP) Equal(o SNP) bool {
	return s == o
}

func (s SNP) String() string {
	return fmt.Sprintf("%s %s %d", s.Genotype, s.Chromosome, s.Position)
}

// ParseRSID accepts "rs123", "RS123" or a bare "123".
func ParseRSID(s string) (RSID, error) {
	digits := s
	if len(s) > 2 && strings.EqualFold(s[:2], "rs") {
		digits = s[2:]
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid rsid %q", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid rsid %q: zero is reserved", s)
	}
	return RSID(n), nil
}

// FormatRSID renders id as "rs<id>".
func FormatRSID(id RSID) string {
	return "rs" + strconv.FormatUint(uint64(id), 10)
}
