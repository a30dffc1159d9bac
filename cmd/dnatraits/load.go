package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/dnatraits/internal/binfmt"
	"github.com/inodb/dnatraits/internal/cache"
	"github.com/inodb/dnatraits/internal/genome"
	"github.com/inodb/dnatraits/internal/parser"
)

// loader reads genomes with settings resolved once, so it can be shared by
// concurrent loads.
type loader struct {
	opts   parser.Options
	cache  *cache.GenomeCache // nil when caching is off
	logger *zap.Logger
}

func (a *app) newLoader() (*loader, error) {
	opts, err := a.parseOptions()
	if err != nil {
		return nil, err
	}
	return &loader{opts: opts, cache: a.genomeCache(), logger: a.logger}, nil
}

// loadGenome reads one genome; see loader.load.
func (a *app) loadGenome(path string) (*genome.Genome, error) {
	l, err := a.newLoader()
	if err != nil {
		return nil, err
	}
	return l.load(path)
}

// load reads a genome from a binary genome file or a text export. Text
// exports go through the cache when it is enabled.
func (l *loader) load(path string) (*genome.Genome, error) {
	binary, err := isBinaryGenome(path)
	if err != nil {
		return nil, err
	}
	if binary {
		return l.loadBinary(path)
	}

	if l.cache != nil {
		g, hit, err := l.cache.LoadOrParse(path, l.opts)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("genome ready", zap.String("path", path), zap.Bool("cached", hit))
		return g, nil
	}

	g, _, err := parser.ParseFile(path, l.opts)
	return g, err
}

func (l *loader) loadBinary(path string) (*genome.Genome, error) {
	g, ok, err := binfmt.Load(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: not a usable genome file (unknown version or truncated)", path)
	}
	l.logger.Debug("loaded binary genome", zap.String("path", path), zap.Int("snps", g.Len()))
	return g, nil
}

// isBinaryGenome reports whether the file at path starts with the binary
// genome magic.
func isBinaryGenome(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open genome file: %w", err)
	}
	defer f.Close()

	var magic [binfmt.MagicSize]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return false, nil
	}
	return bytes.Equal(magic[:], binfmt.Magic[:]), nil
}
