package duckdb

import (
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// ModTimeString formats the modification time the way it is persisted in
// side files. Sub-second precision is kept.
func (f FileFingerprint) ModTimeString() string {
	return f.ModTime.UTC().Format(time.RFC3339Nano)
}

// Same reports whether f and o describe the same file contents, judged by
// size and modification time.
func (f FileFingerprint) Same(o FileFingerprint) bool {
	return f.Size == o.Size && f.ModTime.Equal(o.ModTime)
}
