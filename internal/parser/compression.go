package parser

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type compression byte

const (
	compressionNone compression = iota
	compressionGzip
	compressionZip
	compressionXZ
)

func (c compression) String() string {
	switch c {
	case compressionGzip:
		return "gzip"
	case compressionZip:
		return "zip"
	case compressionXZ:
		return "xz"
	default:
		return "none"
	}
}

// 23andMe hands out zip archives; gzip and xz show up after users
// recompress them.
var compressionSigs = []struct {
	kind compression
	sig  []byte
}{
	{compressionGzip, []byte{0x1f, 0x8b, 0x08}},
	{compressionZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{compressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
}

func detectCompression(data []byte) compression {
	for _, s := range compressionSigs {
		if bytes.HasPrefix(data, s.sig) {
			return s.kind
		}
	}
	return compressionNone
}

// decompress inflates data. Zip archives yield their first entry.
func decompress(data []byte, c compression) ([]byte, error) {
	var r io.Reader
	switch c {
	case compressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer zr.Close()
		r = zr
	case compressionZip:
		zr := zipstream.NewReader(bytes.NewReader(data))
		if _, err := zr.Next(); err != nil {
			return nil, fmt.Errorf("zip entry: %w", err)
		}
		r = zr
	case compressionXZ:
		xr, err := xz.NewReader(bytes.NewReader(data), 0)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r = xr
	default:
		return data, nil
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", c, err)
	}
	return out, nil
}
