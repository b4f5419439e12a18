// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the ADD.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (terminal constants and variables) in the node list.
const _MAXREFCOUNT int32 = 0x3FF

// _MARKBIT is the bit of refcou used to mark nodes during traversals and
// garbage collection.
const _MARKBIT int32 = 0x200000

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTCACHESIZE is the default number of entries in the operation cache.
const _DEFAULTCACHESIZE int = 10000

// addnode is a slot of the node table. A terminal keeps its discriminant in
// value and has both branches pointing at itself; a free slot has low set to
// -1 and high pointing at the next free slot.
type addnode struct {
	level  int32   // Position of the decision variable in the current order; varnum for terminals
	low    int     // Reference to the else branch, -1 when the slot is free
	high   int     // Reference to the then branch, next free slot when the slot is free
	refcou int32   // Count the number of external references
	value  float64 // Discriminant, meaningful only for terminals
}

// triple is the unicity key of an internal node.
type triple struct {
	level     int32
	low, high int
}

// The four terminal constants pinned at the start of the node table, in
// allocation order: 0, 1, +∞ and -∞.
const (
	czero = iota
	cone
	cposinf
	cneginf
)

func (b *ADD) isconst(n int) bool {
	return b.nodes[n].level == b.varnum
}

func (b *ADD) value(n int) float64 {
	return b.nodes[n].value
}

func (b *ADD) ismarked(n int) bool {
	return (b.nodes[n].refcou & _MARKBIT) != 0
}

func (b *ADD) marknode(n int) {
	b.nodes[n].refcou |= _MARKBIT
}

func (b *ADD) unmarknode(n int) {
	b.nodes[n].refcou &^= _MARKBIT
}

// checkptr checks that a Node is a valid reference into the node table.
func (b *ADD) checkptr(n Node) error {
	if n == nil {
		return errNilNode
	}
	if *n < 0 || *n >= len(b.nodes) {
		return errBadNode
	}
	if b.nodes[*n].low == -1 {
		return errBadNode
	}
	return nil
}

// retnode creates a Node for external use and sets a finalizer on it so that
// the reference can be reclaimed during GC.
func (b *ADD) retnode(n int) Node {
	if n < 0 || n >= len(b.nodes) {
		return nil
	}
	switch n {
	case czero:
		return addzero
	case cone:
		return addone
	case cposinf:
		return addposinf
	case cneginf:
		return addneginf
	}
	x := n
	if b.nodes[n].refcou < _MAXREFCOUNT {
		b.nodes[n].refcou++
		runtime.SetFinalizer(&x, b.nodefinalizer)
	}
	return &x
}

// allocnode returns the index of a free slot in the node table. When the
// table is full we give the reordering trigger a chance to reshape the
// diagram, then reclaim unused nodes and, as a last resort, resize the table.
func (b *ADD) allocnode() (int, error) {
	if b.freepos == 0 {
		if b.reorder != nil && b.reorder() {
			// The trigger may have changed node identities, so cached
			// results are no longer trustworthy.
			b.cachereset()
			b.reordered = true
			return -1, errReorder
		}
		b.gbc()
		// We also test if we are under the threshold for resizing.
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err != nil {
				return -1, err
			}
		}
		if b.freepos == 0 {
			return -1, ErrMemory
		}
	}
	res := b.freepos
	b.freepos = b.nodes[res].high
	b.freenum--
	b.produced++
	return res, nil
}

// makenode returns the canonical node for the triple (level, low, high),
// allocating one only when no existing node matches. When both branches are
// equal the node would be redundant and we return the shared branch instead.
func (b *ADD) makenode(level int32, low, high int) (int, error) {
	b.uniqueAccess++
	if low == high {
		return low, nil
	}
	if res, ok := b.unique[triple{level, low, high}]; ok {
		b.uniqueHit++
		return res, nil
	}
	b.uniqueMiss++
	res, err := b.allocnode()
	if err != nil {
		return -1, err
	}
	b.nodes[res] = addnode{level: level, low: low, high: high}
	b.unique[triple{level, low, high}] = res
	return res, nil
}

// maketerminal returns the canonical terminal node holding value.
func (b *ADD) maketerminal(value float64) (int, error) {
	b.uniqueAccess++
	if value == 0 {
		// fold -0 into +0 so that both map to the same terminal
		value = 0
	}
	key := math.Float64bits(value)
	if res, ok := b.terms[key]; ok {
		b.uniqueHit++
		return res, nil
	}
	b.uniqueMiss++
	res, err := b.allocnode()
	if err != nil {
		return -1, err
	}
	b.nodes[res] = addnode{level: b.varnum, low: res, high: res, value: value}
	b.terms[key] = res
	return res, nil
}

// delnode removes a node from the unicity tables before its slot is recycled.
func (b *ADD) delnode(n int) {
	hn := b.nodes[n]
	if hn.low == -1 {
		return
	}
	if hn.level == b.varnum {
		delete(b.terms, math.Float64bits(hn.value))
		return
	}
	delete(b.unique, triple{hn.level, hn.low, hn.high})
}

func (b *ADD) noderesize() error {
	oldsize := len(b.nodes)
	if b.maxnodesize > 0 && oldsize >= b.maxnodesize {
		return ErrMemory
	}
	nodesize := oldsize
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if b.maxnodesize > 0 && nodesize > b.maxnodesize {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return ErrMemory
	}
	b.log.WithFields(logrus.Fields{"from": oldsize, "to": nodesize}).Debug("resizing node table")

	tmp := b.nodes
	b.nodes = make([]addnode, nodesize)
	copy(b.nodes, tmp)

	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = addnode{low: -1, high: n + 1}
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += nodesize - oldsize

	b.cacheresize(len(b.nodes))
	return nil
}
