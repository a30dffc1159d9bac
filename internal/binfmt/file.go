package binfmt

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/dnatraits/internal/genome"
)

// Save writes g to path. The file is written under a temporary name and
// renamed into place, so readers never see a partial cache.
func Save(path string, g *genome.Genome) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create genome cache: %w", err)
	}
	tmp := f.Name()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("create genome cache: %w", err)
	}

	if err := Encode(f, g); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode genome cache: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close genome cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename genome cache: %w", err)
	}
	return nil
}

// Load reads a genome saved with Save. A file that cannot be opened or
// read is an error. A foreign file, a version mismatch or a truncated
// record stream returns ok == false with a nil error so the caller can
// fall back to parsing the text export.
func Load(path string) (g *genome.Genome, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("open genome cache: %w", err)
	}
	defer f.Close()

	capacity := genome.DefaultCapacity
	if info, err := f.Stat(); err == nil && info.Size() > HeaderSize {
		capacity = int((info.Size() - HeaderSize) / RecordSize)
	}

	g, err = DecodeSize(f, capacity)
	if err != nil {
		if IsFormatError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return g, true, nil
}
