package parser

import "bytes"

// scanner walks a byte buffer with a single cursor. Fields are returned as
// subslices of the buffer; nothing is copied.
type scanner struct {
	data []byte
	pos  int
	line int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) peek() byte {
	return s.data[s.pos]
}

// field returns the bytes up to the next TAB, CR or LF and steps over a
// trailing TAB. At end of line it returns an empty field.
func (s *scanner) field() []byte {
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '\t' {
			f := s.data[start:s.pos]
			s.pos++
			return f
		}
		if c == '\n' || c == '\r' {
			break
		}
		s.pos++
	}
	return s.data[start:s.pos]
}

// skipLine moves past the next LF, discarding the rest of the line.
func (s *scanner) skipLine() {
	s.line++
	i := bytes.IndexByte(s.data[s.pos:], '\n')
	if i < 0 {
		s.pos = len(s.data)
		return
	}
	s.pos += i + 1
}

// parseUint32 parses an unsigned decimal. It fails on empty input,
// non-digits and overflow.
func parseUint32(b []byte) (uint32, bool) {
	if len(b) == 0 || len(b) > 10 {
		return 0, false
	}
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
	}
	if n > 1<<32-1 {
		return 0, false
	}
	return uint32(n), true
}

// parseRSID decodes "rs<digits>". Zero is rejected since it is the
// reserved empty key.
func parseRSID(id []byte) (uint32, bool) {
	if len(id) < 3 || id[0] != 'r' || id[1] != 's' {
		return 0, false
	}
	n, ok := parseUint32(id[2:])
	return n, ok && n != 0
}
