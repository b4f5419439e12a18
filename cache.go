// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// cacheData is an entry of the operation cache. For a dyadic operation we keep
// the operator in a and the two operands in b and c. For a monadic operation
// the operator goes in a, the operand in b, and c is set to -2, a value that
// no dyadic entry can carry, so that the two kinds of entries never collide.
type cacheData struct {
	res     int
	a, b, c int
}

// applycache implements a direct mapped cache for the results of apply
// operations
type applycache struct {
	cacheratio int
	table      []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // # of calls to the unicity tables
	uniqueHit    int // # of succesful lookups in the unicity tables
	uniqueMiss   int // # of failed lookups in the unicity tables
	opHit        int // # of results found in the operation cache
	opMiss       int // # of results that had to be recomputed
}

func (s cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", s.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d (%.1f%% + %.1f%%)\n", s.uniqueHit,
		(float64(s.uniqueHit)*100)/float64(s.uniqueAccess),
		float64(s.uniqueAccess-s.uniqueHit-s.uniqueMiss)*100/float64(s.uniqueAccess))
	res += fmt.Sprintf("Unique Miss:    %d\n", s.uniqueMiss)
	res += fmt.Sprintf("Op. Hit:        %d\n", s.opHit)
	res += fmt.Sprintf("Op. Miss:       %d", s.opMiss)
	return res
}

// cacheinit allocates the cache table with a prime number of entries, which
// gives a better spread for the hash.
func (b *ADD) cacheinit(size int) {
	size = primeGte(size)
	b.applycache.table = make([]cacheData, size)
	b.cachereset()
}

// cachereset invalidates every entry. We use -1 in the a field as the mark of
// an unused entry, since no operator or node has a negative code.
func (b *ADD) cachereset() {
	for k := range b.applycache.table {
		b.applycache.table[k].a = -1
	}
}

// cacheresize grows the operation cache after a change in the size of the node
// table. With a zero cache ratio we only invalidate the entries.
func (b *ADD) cacheresize(nodenum int) {
	if b.applycache.cacheratio > 0 {
		b.cacheinit(nodenum / b.applycache.cacheratio)
		return
	}
	b.cachereset()
}

// hash computes the index of the cache slot for the triple (op, left, right).
func (b *ADD) hash(op Operator, left, right int) int {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(op))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(left))
	binary.LittleEndian.PutUint64(buf[16:], uint64(right))
	return int(xxhash.Sum64(buf[:]) % uint64(len(b.applycache.table)))
}

// matchapply returns the cached result of a dyadic operation, or -1 when the
// entry does not match.
func (b *ADD) matchapply(op Operator, left, right int) int {
	entry := b.applycache.table[b.hash(op, left, right)]
	if entry.a != int(op) || entry.b != left || entry.c != right {
		b.opMiss++
		return -1
	}
	b.opHit++
	return entry.res
}

func (b *ADD) setapply(op Operator, left, right, res int) {
	b.applycache.table[b.hash(op, left, right)] = cacheData{res: res, a: int(op), b: left, c: right}
}

// matchmonadic returns the cached result of a monadic operation, or -1 when
// the entry does not match.
func (b *ADD) matchmonadic(op Operator, n int) int {
	entry := b.applycache.table[b.hash(op, n, -2)]
	if entry.a != int(op) || entry.b != n || entry.c != -2 {
		b.opMiss++
		return -1
	}
	b.opHit++
	return entry.res
}

func (b *ADD) setmonadic(op Operator, n, res int) {
	b.applycache.table[b.hash(op, n, -2)] = cacheData{res: res, a: int(op), b: n, c: -2}
}
