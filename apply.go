// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"time"

	"github.com/pkg/errors"
)

// Apply computes the diagram obtained by combining the discriminants of left
// and right pointwise with a dyadic operator, such as b.Apply(f, g, OPplus)
// for the pointwise sum of f and g. The result is canonical and memoized, so
// repeating an operation on the same operands is answered from the cache.
//
// The method returns nil and sets the error status of b if op is monadic, if
// one of the operands is invalid, or if the computation fails. A failed
// computation leaves no partial result. When the failure is a timeout (see
// SetTimeout) we call the handler registered with RegisterTimeoutHandler, if
// any, before returning.
func (b *ADD) Apply(left, right Node, op Operator) Node {
	if op.monadic() {
		return b.seterror("monadic operator (%s) in call to Apply", op)
	}
	if b.checkptr(left) != nil {
		return b.seterror("wrong operand in call to Apply (%s)", op)
	}
	if b.checkptr(right) != nil {
		return b.seterror("wrong operand in call to Apply (%s)", op)
	}
	var res int
	var err error
	// A change in the variable order invalidates every intermediate result,
	// so we restart the computation from scratch until the order is stable.
	for {
		b.reordered = false
		b.initref()
		b.pushref(*left)
		b.pushref(*right)
		res, err = b.applyRecur(op, *left, *right)
		b.popref(2)
		if !b.reordered {
			break
		}
	}
	if err != nil {
		if errors.Is(err, ErrTimeout) && b.timeoutHandler != nil {
			b.timeoutHandler(b)
		}
		return b.setfailure(err, "error in Apply (%s)", op)
	}
	return b.retnode(res)
}

// MonadicApply computes the diagram obtained by transforming each
// discriminant of n with a monadic operator, OPlog or OPnegate. Like Apply,
// the result is canonical and memoized, and a failure sets the error status
// of b and returns nil.
func (b *ADD) MonadicApply(n Node, op Operator) Node {
	if !op.monadic() {
		return b.seterror("dyadic operator (%s) in call to MonadicApply", op)
	}
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to MonadicApply (%s)", op)
	}
	var res int
	var err error
	for {
		b.reordered = false
		b.initref()
		b.pushref(*n)
		res, err = b.monadicRecur(op, *n)
		b.popref(1)
		if !b.reordered {
			break
		}
	}
	if err != nil {
		if errors.Is(err, ErrTimeout) && b.timeoutHandler != nil {
			b.timeoutHandler(b)
		}
		return b.setfailure(err, "error in MonadicApply (%s)", op)
	}
	return b.retnode(res)
}

// gaveup polls the deadline set with SetTimeout. It is checked once per
// recursion step that was not answered by the cache.
func (b *ADD) gaveup() error {
	if !b.deadline.IsZero() && time.Now().After(b.deadline) {
		return ErrTimeout
	}
	return nil
}

func (b *ADD) applyRecur(op Operator, f, g int) (int, error) {
	// Check terminal cases. The operator may swap f and g to increase the
	// cache hit rate.
	res, err := b.applyTerminal(op, &f, &g)
	if err != nil {
		return -1, err
	}
	if res >= 0 {
		return res, nil
	}
	if res := b.matchapply(op, f, g); res >= 0 {
		return res, nil
	}
	if err := b.gaveup(); err != nil {
		return -1, err
	}
	flvl := b.nodes[f].level
	glvl := b.nodes[g].level
	level := flvl
	if glvl < level {
		level = glvl
	}
	// Take the cofactors of the topmost variable; the operand rooted below it
	// is unchanged in both branches.
	fv, fvn := f, f
	if flvl <= glvl {
		fv, fvn = b.nodes[f].high, b.nodes[f].low
	}
	gv, gvn := g, g
	if glvl <= flvl {
		gv, gvn = b.nodes[g].high, b.nodes[g].low
	}
	T, err := b.applyRecur(op, fv, gv)
	if err != nil {
		return -1, err
	}
	b.pushref(T)
	E, err := b.applyRecur(op, fvn, gvn)
	if err != nil {
		b.popref(1)
		return -1, err
	}
	b.pushref(E)
	res, err = b.makenode(level, E, T)
	b.popref(2)
	if err != nil {
		return -1, err
	}
	b.setapply(op, f, g, res)
	return res, nil
}

func (b *ADD) monadicRecur(op Operator, f int) (int, error) {
	res, err := b.monadicTerminal(op, f)
	if err != nil {
		return -1, err
	}
	if res >= 0 {
		return res, nil
	}
	if res := b.matchmonadic(op, f); res >= 0 {
		return res, nil
	}
	if err := b.gaveup(); err != nil {
		return -1, err
	}
	T, err := b.monadicRecur(op, b.nodes[f].high)
	if err != nil {
		return -1, err
	}
	b.pushref(T)
	E, err := b.monadicRecur(op, b.nodes[f].low)
	if err != nil {
		b.popref(1)
		return -1, err
	}
	b.pushref(E)
	res, err = b.makenode(b.nodes[f].level, E, T)
	b.popref(2)
	if err != nil {
		return -1, err
	}
	b.setmonadic(op, f, res)
	return res, nil
}

// Plus returns the pointwise sum of its operands, the constant 0 when called
// without parameters.
func (b *ADD) Plus(n ...Node) Node {
	if len(n) == 0 {
		return addzero
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPplus)
		if res == nil {
			return nil
		}
	}
	return res
}

// Times returns the pointwise product of its operands, the constant 1 when
// called without parameters. On 0-1 diagrams it is also their conjunction.
func (b *ADD) Times(n ...Node) Node {
	if len(n) == 0 {
		return addone
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPtimes)
		if res == nil {
			return nil
		}
	}
	return res
}

// Min returns the pointwise minimum of its operands, the constant plus
// infinity when called without parameters.
func (b *ADD) Min(n ...Node) Node {
	if len(n) == 0 {
		return addposinf
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPmin)
		if res == nil {
			return nil
		}
	}
	return res
}

// Max returns the pointwise maximum of its operands, the constant minus
// infinity when called without parameters.
func (b *ADD) Max(n ...Node) Node {
	if len(n) == 0 {
		return addneginf
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPmax)
		if res == nil {
			return nil
		}
	}
	return res
}

// Or returns the disjunction of its 0-1 operands, the constant 0 when called
// without parameters. The conjunction of 0-1 diagrams is Times.
func (b *ADD) Or(n ...Node) Node {
	if len(n) == 0 {
		return addzero
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPor)
		if res == nil {
			return nil
		}
	}
	return res
}

// Xor returns the exclusive disjunction of two 0-1 diagrams.
func (b *ADD) Xor(f, g Node) Node {
	return b.Apply(f, g, OPxor)
}

// Minus returns the pointwise difference of f and g.
func (b *ADD) Minus(f, g Node) Node {
	return b.Apply(f, g, OPminus)
}

// Divide returns the pointwise quotient of f and g.
func (b *ADD) Divide(f, g Node) Node {
	return b.Apply(f, g, OPdivide)
}

// Negate returns the additive inverse of n.
func (b *ADD) Negate(n Node) Node {
	return b.MonadicApply(n, OPnegate)
}

// Log returns the pointwise natural logarithm of n. The discriminants of n
// must be positive.
func (b *ADD) Log(n Node) Node {
	return b.MonadicApply(n, OPlog)
}
