package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/dnatraits/internal/genome"
)

// DuplicatePolicy decides which row wins when an rsid appears twice.
type DuplicatePolicy int

const (
	// LastWins overwrites earlier rows with later ones.
	LastWins DuplicatePolicy = iota
	// FirstWins keeps the first row and ignores the rest.
	FirstWins
)

func (p DuplicatePolicy) String() string {
	if p == FirstWins {
		return "first"
	}
	return "last"
}

// ParseDuplicatePolicy accepts "last" or "first".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(s) {
	case "", "last":
		return LastWins, nil
	case "first":
		return FirstWins, nil
	}
	return LastWins, fmt.Errorf("unknown duplicate policy %q (want last or first)", s)
}

// MitochondrialPolicy decides whether MT rows are stored.
type MitochondrialPolicy int

const (
	// MitochondrialSkip drops MT rows.
	MitochondrialSkip MitochondrialPolicy = iota
	// MitochondrialKeep stores MT rows with chromosome MT.
	MitochondrialKeep
)

func (p MitochondrialPolicy) String() string {
	if p == MitochondrialKeep {
		return "keep"
	}
	return "skip"
}

// ParseMitochondrialPolicy accepts "skip" or "keep".
func ParseMitochondrialPolicy(s string) (MitochondrialPolicy, error) {
	switch strings.ToLower(s) {
	case "", "skip":
		return MitochondrialSkip, nil
	case "keep":
		return MitochondrialKeep, nil
	}
	return MitochondrialSkip, fmt.Errorf("unknown mitochondrial policy %q (want skip or keep)", s)
}

// Options control how an export is loaded.
type Options struct {
	// Capacity is the expected number of rows; the index is sized to hold
	// it without rehashing.
	Capacity      int
	Duplicates    DuplicatePolicy
	Mitochondrial MitochondrialPolicy
	Logger        *zap.Logger
}

// DefaultOptions returns last-write-wins, MT-skipping options sized for a
// full 23andMe export.
func DefaultOptions() Options {
	return Options{
		Capacity: genome.DefaultCapacity,
		Logger:   zap.NewNop(),
	}
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		o.Capacity = genome.DefaultCapacity
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
