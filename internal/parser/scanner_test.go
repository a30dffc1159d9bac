package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScannerFields(t *testing.T) {
	s := &scanner{data: []byte("rs1\t1\t100\tAA\r\nnext")}
	assert.Equal(t, "rs1", string(s.field()))
	assert.Equal(t, "1", string(s.field()))
	assert.Equal(t, "100", string(s.field()))
	assert.Equal(t, "AA", string(s.field()))
	assert.Equal(t, "", string(s.field()), "stays at end of line")
	s.skipLine()
	assert.Equal(t, "next", string(s.field()))
	assert.True(t, s.done())
	assert.Equal(t, 1, s.line)
}

func TestParseUint32(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"0", 0, true},
		{"48033965", 48033965, true},
		{"4294967295", 4294967295, true},
		{"4294967296", 0, false},
		{"99999999999", 0, false},
		{"", 0, false},
		{"12a", 0, false},
		{"-1", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseUint32([]byte(tt.in))
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseRSIDField(t *testing.T) {
	id, ok := parseRSID([]byte("rs7495174"))
	assert.True(t, ok)
	assert.Equal(t, uint32(7495174), id)

	for _, bad := range []string{"rs", "rs0", "i123", "r123", "rsx", ""} {
		_, ok := parseRSID([]byte(bad))
		assert.False(t, ok, "input %q", bad)
	}
}
