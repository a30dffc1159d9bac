// Package binfmt reads and writes the binary genome cache: a fixed header
// followed by fixed-size records, all integers big-endian.
package binfmt

import (
	"errors"
	"fmt"
)

const (
	// MagicSize is the length of the NUL-padded magic string.
	MagicSize = 16
	// Sentinel marks the end of the magic block.
	Sentinel uint32 = 0xDEADBEEF

	VersionMajor uint32 = 1
	VersionMinor uint32 = 0

	// HeaderSize is magic + sentinel + major + minor + flag + first + last.
	HeaderSize = MagicSize + 4 + 4 + 4 + 1 + 4 + 4
	// RecordSize is rsid + chromosome + position + genotype.
	RecordSize = 4 + 1 + 4 + 1
)

// Magic identifies the format.
var Magic = [MagicSize]byte{'d', 'n', 'a', 't', 'r', 'a', 'i', 't', 's'}

var (
	ErrBadMagic    = errors.New("binfmt: not a genome cache file")
	ErrBadSentinel = errors.New("binfmt: header sentinel mismatch")
	ErrVersion     = errors.New("binfmt: unsupported version")
	ErrTruncated   = errors.New("binfmt: truncated record stream")
	ErrCorrupt     = errors.New("binfmt: corrupt record")
)

// Header is the decoded file header.
type Header struct {
	Major, Minor uint32
	YChromosome  bool
	First, Last  uint32
}

// VersionError reports a version the decoder does not understand.
type VersionError struct {
	Major, Minor uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("binfmt: unsupported version %d.%d (want %d.%d)",
		e.Major, e.Minor, VersionMajor, VersionMinor)
}

func (e *VersionError) Unwrap() error { return ErrVersion }

// IsFormatError reports whether err is a soft decoding failure (foreign
// file, wrong version, truncation) rather than an I/O error.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrBadMagic) ||
		errors.Is(err, ErrBadSentinel) ||
		errors.Is(err, ErrVersion) ||
		errors.Is(err, ErrTruncated) ||
		errors.Is(err, ErrCorrupt)
}
