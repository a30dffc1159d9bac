package binfmt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/inodb/dnatraits/internal/dna"
	"github.com/inodb/dnatraits/internal/genome"
)

// PutHeader writes h into b, which must be HeaderSize bytes long.
func PutHeader(b []byte, h Header) {
	_ = b[HeaderSize-1]
	copy(b, Magic[:])
	binary.BigEndian.PutUint32(b[16:], Sentinel)
	binary.BigEndian.PutUint32(b[20:], h.Major)
	binary.BigEndian.PutUint32(b[24:], h.Minor)
	b[28] = 0
	if h.YChromosome {
		b[28] = 1
	}
	binary.BigEndian.PutUint32(b[29:], h.First)
	binary.BigEndian.PutUint32(b[33:], h.Last)
}

// ParseHeader validates and decodes a header. Magic and sentinel are
// checked before any other field is trusted.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		if len(b) < MagicSize || !bytes.Equal(b[:MagicSize], Magic[:]) {
			return Header{}, ErrBadMagic
		}
		return Header{}, ErrTruncated
	}
	if !bytes.Equal(b[:MagicSize], Magic[:]) {
		return Header{}, ErrBadMagic
	}
	if binary.BigEndian.Uint32(b[16:]) != Sentinel {
		return Header{}, ErrBadSentinel
	}
	h := Header{
		Major:       binary.BigEndian.Uint32(b[20:]),
		Minor:       binary.BigEndian.Uint32(b[24:]),
		YChromosome: b[28] != 0,
		First:       binary.BigEndian.Uint32(b[29:]),
		Last:        binary.BigEndian.Uint32(b[33:]),
	}
	if h.Major != VersionMajor || h.Minor != VersionMinor {
		return h, &VersionError{Major: h.Major, Minor: h.Minor}
	}
	return h, nil
}

// PutRecord writes one record into b, which must be RecordSize bytes long.
func PutRecord(b []byte, rsid dna.RSID, snp dna.SNP) {
	_ = b[RecordSize-1]
	binary.BigEndian.PutUint32(b[0:], rsid)
	b[4] = byte(snp.Chromosome)
	binary.BigEndian.PutUint32(b[5:], snp.Position)
	b[9] = snp.Genotype.Pack()
}

// ParseRecord decodes one record.
func ParseRecord(b []byte) (dna.RSID, dna.SNP) {
	_ = b[RecordSize-1]
	return binary.BigEndian.Uint32(b[0:]), dna.SNP{
		Chromosome: dna.Chromosome(b[4]),
		Position:   binary.BigEndian.Uint32(b[5:]),
		Genotype:   dna.UnpackGenotype(b[9]),
	}
}

// Encode writes g to w. Records are sorted by rsid so equal genomes encode
// to identical bytes.
func Encode(w io.Writer, g *genome.Genome) error {
	bw := bufio.NewWriterSize(w, 64*1024)

	var hdr [HeaderSize]byte
	PutHeader(hdr[:], Header{
		Major:       VersionMajor,
		Minor:       VersionMinor,
		YChromosome: g.YChromosome(),
		First:       g.First(),
		Last:        g.Last(),
	})
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	ids := g.RSIDs()
	slices.Sort(ids)

	var rec [RecordSize]byte
	for _, id := range ids {
		PutRecord(rec[:], id, g.Get(id))
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return bw.Flush()
}

// Decode reads a genome written by Encode. Format problems are reported
// with the Err* values in this package; see IsFormatError.
func Decode(r io.Reader) (*genome.Genome, error) {
	return DecodeSize(r, genome.DefaultCapacity)
}

// DecodeSize is Decode with an explicit capacity hint for the index.
func DecodeSize(r io.Reader, capacity int) (*genome.Genome, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var hdr [HeaderSize]byte
	n, err := io.ReadFull(br, hdr[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			_, herr := ParseHeader(hdr[:n])
			return nil, herr
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := ParseHeader(hdr[:])
	if err != nil {
		return nil, err
	}

	g := genome.New(capacity)
	var rec [RecordSize]byte
	for {
		_, err := io.ReadFull(br, rec[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		id, snp := ParseRecord(rec[:])
		if id == 0 || !snp.Chromosome.Valid() || !snp.Genotype.First.Valid() || !snp.Genotype.Second.Valid() {
			return nil, ErrCorrupt
		}
		g.Insert(id, snp)
	}

	g.SetYChromosome(h.YChromosome)
	g.SetBounds(h.First, h.Last)
	return g, nil
}
