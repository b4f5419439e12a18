// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"math"

	"github.com/pkg/errors"
)

// Eval returns the value of the function represented by n on the given
// assignment of the decision variables, where assignment[i] is the value of
// variable i. We return NaN and set the error status of b when n is not a
// valid node or when the assignment does not cover all the variables.
func (b *ADD) Eval(n Node, assignment []bool) float64 {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Eval")
		return math.NaN()
	}
	if len(assignment) != int(b.varnum) {
		b.seterror("wrong assignment size (%d) in call to Eval", len(assignment))
		return math.NaN()
	}
	res := *n
	for !b.isconst(res) {
		if assignment[b.level2var[b.nodes[res].level]] {
			res = b.nodes[res].high
		} else {
			res = b.nodes[res].low
		}
	}
	return b.value(res)
}

// FindMin returns the terminal with the smallest discriminant reachable from
// n, the minimum of the function over all assignments.
func (b *ADD) FindMin(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to FindMin")
	}
	return b.retnode(b.findterm(*n, func(v, best float64) bool { return v < best }))
}

// FindMax returns the terminal with the largest discriminant reachable from
// n, the maximum of the function over all assignments.
func (b *ADD) FindMax(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to FindMax")
	}
	return b.retnode(b.findterm(*n, func(v, best float64) bool { return v > best }))
}

// findterm returns the reachable terminal whose value wins the comparison
// against every other one.
func (b *ADD) findterm(n int, better func(v, best float64) bool) int {
	b.markrec(n)
	best := -1
	for k := range b.nodes {
		if b.nodes[k].low == -1 || !b.ismarked(k) {
			continue
		}
		b.unmarknode(k)
		if b.isconst(k) && (best < 0 || better(b.value(k), b.value(best))) {
			best = k
		}
	}
	return best
}

// Allnodes applies function f over all the active nodes of the ADD, or only
// the nodes accessible from the parameter nodes if any are given. The
// parameters of f are the id, level, and id's of the low and high children of
// the node; terminals have both children equal to their own id and carry
// their discriminant in value. The order in which nodes are visited follows
// their position in the node table. We stop the computation and return an
// error if f returns one.
func (b *ADD) Allnodes(f func(id, level, low, high int, value float64) error, n ...Node) error {
	if len(n) == 0 {
		return b.allnodes(f)
	}
	return b.allnodesfrom(f, n)
}

func (b *ADD) allnodes(f func(id, level, low, high int, value float64) error) error {
	for k, v := range b.nodes {
		if v.low == -1 {
			continue
		}
		if err := f(k, int(v.level), v.low, v.high, v.value); err != nil {
			return errors.Wrap(err, "error during call to Allnodes")
		}
	}
	return nil
}

func (b *ADD) allnodesfrom(f func(id, level, low, high int, value float64) error, n []Node) error {
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return errors.Wrap(err, "wrong operand in call to Allnodes")
		}
		b.markrec(*v)
	}
	for k, v := range b.nodes {
		if v.low == -1 || !b.ismarked(k) {
			continue
		}
		b.unmarknode(k)
		if err := f(k, int(v.level), v.low, v.high, v.value); err != nil {
			b.unmarkall()
			return errors.Wrap(err, "error during call to Allnodes")
		}
	}
	return nil
}
