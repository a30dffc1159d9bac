package genome

import (
	"math/bits"

	"github.com/inodb/dnatraits/internal/dna"
)

// Index is the associative container behind a Genome. Implementations must
// not create entries on lookup and must treat rsid 0 as never present.
type Index interface {
	// Get returns the record for rsid and whether it was present.
	Get(rsid dna.RSID) (dna.SNP, bool)

	// Put inserts or overwrites the record for rsid.
	Put(rsid dna.RSID, snp dna.SNP)

	// Len returns the number of stored records.
	Len() int

	// Buckets returns the current slot capacity, used for load factor.
	Buckets() int

	// Range calls fn for every record until fn returns false.
	Range(fn func(dna.RSID, dna.SNP) bool)
}

const (
	minBuckets             = 16
	// maxLoad is size/buckets at which the table doubles.
	maxLoadNum, maxLoadDen = 1, 2
	fibonacciHash          = 0x9E3779B9
)

// OpenIndex is an open-addressing table with linear probing. Key 0 marks an
// empty slot, so rsid 0 can never be stored.
type OpenIndex struct {
	keys  []dna.RSID
	vals  []dna.SNP
	size  int
	shift uint
}

// NewOpenIndex returns a table that holds hint records without growing.
func NewOpenIndex(hint int) *OpenIndex {
	n := minBuckets
	for n*maxLoadNum < hint*maxLoadDen {
		n <<= 1
	}
	idx := &OpenIndex{}
	idx.alloc(n)
	return idx
}

func (x *OpenIndex) alloc(n int) {
	x.keys = make([]dna.RSID, n)
	x.vals = make([]dna.SNP, n)
	x.shift = uint(32 - bits.TrailingZeros(uint(n)))
}

func (x *OpenIndex) slot(rsid dna.RSID) int {
	return int((rsid * fibonacciHash) >> x.shift)
}

// find returns the slot holding rsid, or the empty slot where it belongs.
func (x *OpenIndex) find(rsid dna.RSID) int {
	mask := len(x.keys) - 1
	i := x.slot(rsid)
	for {
		k := x.keys[i]
		if k == rsid || k == 0 {
			return i
		}
		i = (i + 1) & mask
	}
}

func (x *OpenIndex) Get(rsid dna.RSID) (dna.SNP, bool) {
	if rsid == 0 {
		return dna.NoCall, false
	}
	i := x.find(rsid)
	if x.keys[i] == 0 {
		return dna.NoCall, false
	}
	return x.vals[i], true
}

func (x *OpenIndex) Put(rsid dna.RSID, snp dna.SNP) {
	if rsid == 0 {
		return
	}
	i := x.find(rsid)
	if x.keys[i] == rsid {
		x.vals[i] = snp
		return
	}
	if (x.size+1)*maxLoadDen > len(x.keys)*maxLoadNum {
		x.grow()
		i = x.find(rsid)
	}
	x.keys[i] = rsid
	x.vals[i] = snp
	x.size++
}

func (x *OpenIndex) grow() {
	keys, vals := x.keys, x.vals
	x.alloc(len(keys) * 2)
	for i, k := range keys {
		if k != 0 {
			j := x.find(k)
			x.keys[j] = k
			x.vals[j] = vals[i]
		}
	}
}

func (x *OpenIndex) Len() int     { return x.size }
func (x *OpenIndex) Buckets() int { return len(x.keys) }

func (x *OpenIndex) Range(fn func(dna.RSID, dna.SNP) bool) {
	for i, k := range x.keys {
		if k != 0 && !fn(k, x.vals[i]) {
			return
		}
	}
}

// MapIndex backs a Genome with a built-in map.
type MapIndex struct {
	m    map[dna.RSID]dna.SNP
	hint int
}

// NewMapIndex returns a map-backed index sized for hint records.
func NewMapIndex(hint int) *MapIndex {
	return &MapIndex{m: make(map[dna.RSID]dna.SNP, hint), hint: hint}
}

func (x *MapIndex) Get(rsid dna.RSID) (dna.SNP, bool) {
	snp, ok := x.m[rsid]
	return snp, ok
}

func (x *MapIndex) Put(rsid dna.RSID, snp dna.SNP) {
	if rsid == 0 {
		return
	}
	x.m[rsid] = snp
}

func (x *MapIndex) Len() int { return len(x.m) }

// Buckets reports the sizing hint, or the length once it exceeds the hint;
// the runtime does not expose real bucket counts.
func (x *MapIndex) Buckets() int {
	return max(x.hint, len(x.m))
}

func (x *MapIndex) Range(fn func(dna.RSID, dna.SNP) bool) {
	for k, v := range x.m {
		if !fn(k, v) {
			return
		}
	}
}
