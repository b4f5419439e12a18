// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// gcstat stores status information about garbage collections
type gcstat struct {
	history []gcpoint // list of the previous gc
}

type gcpoint struct {
	nodes     int // number of active nodes during the gc
	freenodes int // number of freed nodes
}

func (s gcstat) String() string {
	res := fmt.Sprintf("# of GC: %d\n", len(s.history))
	entries := make([]string, 0, len(s.history))
	for _, p := range s.history {
		entries = append(entries, fmt.Sprintf("nodes: %d, freed: %d", p.nodes, p.freenodes))
	}
	return res + strings.Join(entries, "\n")
}

// gbc is the garbage collector called for reclaiming memory, inside a call to
// makenode or maketerminal, when there are no free positions available.
// Allocated nodes that are not reclaimed do not move.
func (b *ADD) gbc() {
	if b.error != nil {
		return
	}

	// We could  explicitly ask the system to run its GC so that we can decrement
	// the ref counts of Nodes that has been garbage collected. This has a
	// significant impact on performance. We instead rely on the fact that the
	// finalizers will eventually run before we exhaust the node table.

	// We mark the nodes in the refstack to avoid collecting them.
	for _, r := range b.refstack {
		b.markrec(r)
	}

	// we also protect nodes with a positive refcount (and therefore also the
	// terminal constants and the variables, which are pinned)
	for k := range b.nodes {
		if b.nodes[k].refcou > 0 {
			b.markrec(k)
		}
	}

	freed := 0
	b.freepos = 0
	b.freenum = 0
	// We do a pass through the nodes list to update the free list and unmark
	// nodes, going from the end so that the most recently created nodes sit
	// at the head of the free list.
	for n := len(b.nodes) - 1; n >= 0; n-- {
		if b.ismarked(n) && b.nodes[n].low != -1 {
			b.unmarknode(n)
			continue
		}
		if b.nodes[n].low != -1 {
			freed++
		}
		b.delnode(n)
		b.nodes[n] = addnode{low: -1, high: b.freepos}
		b.freepos = n
		b.freenum++
	}

	// After a GC, the results in the operation cache may point at freed slots,
	// so we reset it.
	b.cachereset()

	b.history = append(b.history, gcpoint{nodes: len(b.nodes) - b.freenum, freenodes: freed})
	b.log.WithFields(logrus.Fields{
		"active": len(b.nodes) - b.freenum,
		"freed":  freed,
	}).Debug("garbage collection")
}

// markrec marks all the nodes reachable from n.
func (b *ADD) markrec(n int) {
	if b.ismarked(n) || b.nodes[n].low == -1 {
		return
	}
	b.marknode(n)
	if b.isconst(n) {
		return
	}
	b.markrec(b.nodes[n].low)
	b.markrec(b.nodes[n].high)
}

// unmarkall removes the mark from all the active nodes.
func (b *ADD) unmarkall() {
	for k := range b.nodes {
		if b.nodes[k].low == -1 || !b.ismarked(k) {
			continue
		}
		b.unmarknode(k)
	}
}

// initref empties the list of nodes that are temporarily protected from
// garbage collection. It is called at the start of every top-level operation.
func (b *ADD) initref() {
	b.refstack = b.refstack[:0]
}

// pushref protects an intermediate result from being collected.
func (b *ADD) pushref(n int) int {
	b.refstack = append(b.refstack, n)
	return n
}

// popref unprotects the last a nodes pushed on the refstack.
func (b *ADD) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}

// AddRef increases the reference count of node n, with a maximum value of
// _MAXREFCOUNT. After this, node n is guaranteed to survive garbage
// collections until a matching call to DelRef. Returns n so that calls can be
// easily chained together.
func (b *ADD) AddRef(n Node) Node {
	if b.checkptr(n) != nil {
		return n
	}
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou++
	}
	return n
}

// DelRef decreases the reference count of node n, unless the node is pinned
// (its count reached _MAXREFCOUNT). Returns n so that calls can be easily
// chained together.
func (b *ADD) DelRef(n Node) Node {
	if b.checkptr(n) != nil {
		return n
	}
	if b.nodes[*n].refcou == 0 || b.nodes[*n].refcou >= _MAXREFCOUNT {
		return n
	}
	b.nodes[*n].refcou--
	return n
}
