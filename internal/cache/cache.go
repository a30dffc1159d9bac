// Package cache keeps binary copies of parsed genome exports so repeated
// runs skip the text parse. A cache entry is trusted only while the source
// file's size and modification time match the side file written with it.
//
// Files are stored under the cache directory:
//
//	{dir}/{name}-{hash}.dnt       (binfmt-encoded genome)
//	{dir}/{name}-{hash}.dnt.meta  (source fingerprint and parse options)
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/dnatraits/internal/binfmt"
	"github.com/inodb/dnatraits/internal/duckdb"
	"github.com/inodb/dnatraits/internal/genome"
	"github.com/inodb/dnatraits/internal/parser"
)

// GenomeCache manages binary genome files on disk.
type GenomeCache struct {
	dir    string
	logger *zap.Logger
}

// New creates a genome cache rooted at dir. The directory is created on
// first write.
func New(dir string) *GenomeCache {
	return &GenomeCache{dir: dir, logger: zap.NewNop()}
}

// SetLogger sets the logger used to report cache misses and soft failures.
func (c *GenomeCache) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Dir returns the cache directory.
func (c *GenomeCache) Dir() string {
	return c.dir
}

// Path returns the cache file used for the export at src. Distinct source
// paths with the same base name get distinct entries.
func (c *GenomeCache) Path(src string) string {
	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	sum := sha256.Sum256([]byte(abs))
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(c.dir, name+"-"+hex.EncodeToString(sum[:6])+".dnt")
}

func (c *GenomeCache) metaPath(src string) string {
	return c.Path(src) + ".meta"
}

// Valid checks whether the cached genome for fp.Path was written from the
// same source file with the same parse options.
func (c *GenomeCache) Valid(fp duckdb.FileFingerprint, opts parser.Options) bool {
	meta, err := c.readMeta(fp.Path)
	if err != nil {
		return false
	}

	checks := []struct{ key, val string }{
		{"source_size", strconv.FormatInt(fp.Size, 10)},
		{"source_modtime", fp.ModTimeString()},
		{"format_version", formatVersion()},
		{"duplicates", opts.Duplicates.String()},
		{"mitochondrial", opts.Mitochondrial.String()},
	}

	for _, chk := range checks {
		if meta[chk.key] != chk.val {
			return false
		}
	}

	if _, err := os.Stat(c.Path(fp.Path)); err != nil {
		return false
	}
	return true
}

// Load reads the cached genome for src. ok is false when the file exists
// but is not a usable cache.
func (c *GenomeCache) Load(src string) (g *genome.Genome, ok bool, err error) {
	return binfmt.Load(c.Path(src))
}

// Write stores g as the cache entry for fp.Path. The metadata is written
// last so an interrupted write leaves an entry that Valid rejects.
func (c *GenomeCache) Write(fp duckdb.FileFingerprint, opts parser.Options, g *genome.Genome) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	os.Remove(c.metaPath(fp.Path))

	if err := binfmt.Save(c.Path(fp.Path), g); err != nil {
		return err
	}
	return c.writeMeta(fp, opts)
}

// Clear removes the cached files for src.
func (c *GenomeCache) Clear(src string) {
	os.Remove(c.Path(src))
	os.Remove(c.metaPath(src))
}

func formatVersion() string {
	return fmt.Sprintf("%d.%d", binfmt.VersionMajor, binfmt.VersionMinor)
}

func (c *GenomeCache) writeMeta(fp duckdb.FileFingerprint, opts parser.Options) error {
	lines := []string{
		"source_size=" + strconv.FormatInt(fp.Size, 10),
		"source_modtime=" + fp.ModTimeString(),
		"format_version=" + formatVersion(),
		"duplicates=" + opts.Duplicates.String(),
		"mitochondrial=" + opts.Mitochondrial.String(),
		"created_at=" + time.Now().UTC().Format(time.RFC3339),
		"",
	}
	return os.WriteFile(c.metaPath(fp.Path), []byte(strings.Join(lines, "\n")), 0644)
}

func (c *GenomeCache) readMeta(src string) (map[string]string, error) {
	data, err := os.ReadFile(c.metaPath(src))
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return meta, nil
}
