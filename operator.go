// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"math"

	"github.com/pkg/errors"
)

// Operator is the type of operations over the terminal values of ADD. The
// dyadic operators combine the discriminants of two diagrams pointwise, the
// monadic ones transform a single diagram.
type Operator int

const (
	// OPplus is integer and floating point addition
	OPplus Operator = iota
	// OPtimes is integer and floating point multiplication. It can also be
	// used to take the AND of two 0-1 ADD
	OPtimes
	// OPthreshold is f when f>=g, and 0 otherwise
	OPthreshold
	// OPsetnz sets f to the value of g wherever g is not 0
	OPsetnz
	// OPdivide is integer and floating point division
	OPdivide
	// OPminus is integer and floating point subtraction
	OPminus
	// OPmin is integer and floating point min
	OPmin
	// OPmax is integer and floating point max
	OPmax
	// OPonezeromax is 1 when f>g, and 0 otherwise
	OPonezeromax
	// OPdiff is plus infinity when f=g, and min(f,g) otherwise
	OPdiff
	// OPagreement is f when f=g, and the background value otherwise
	OPagreement
	// OPor is the disjunction of two 0-1 ADD
	OPor
	// OPnand is the NAND of two 0-1 ADD
	OPnand
	// OPnor is the NOR of two 0-1 ADD
	OPnor
	// OPxor is the XOR of two 0-1 ADD
	OPxor
	// OPxnor is the XNOR of two 0-1 ADD
	OPxnor
	// OPlog is the natural logarithm of an ADD, a monadic operation. The
	// discriminants of the operand must be positive
	OPlog
	// OPnegate is the additive inverse of an ADD, a monadic operation
	OPnegate
)

var opnames = [...]string{
	OPplus:       "plus",
	OPtimes:      "times",
	OPthreshold:  "threshold",
	OPsetnz:      "setnz",
	OPdivide:     "divide",
	OPminus:      "minus",
	OPmin:        "min",
	OPmax:        "max",
	OPonezeromax: "onezeromax",
	OPdiff:       "diff",
	OPagreement:  "agreement",
	OPor:         "or",
	OPnand:       "nand",
	OPnor:        "nor",
	OPxor:        "xor",
	OPxnor:       "xnor",
	OPlog:        "log",
	OPnegate:     "negate",
}

func (op Operator) String() string {
	if op < OPplus || op > OPnegate {
		return "unknown"
	}
	return opnames[op]
}

// monadic reports whether op takes a single operand.
func (op Operator) monadic() bool {
	return op >= OPlog
}

// applyTerminal checks the terminal cases of a dyadic apply. It returns the
// index of the result, or -1 when we need to recurse. A commutative operator
// may swap its operands to increase the cache hit rate; the order between
// nodes is simply their order of creation.
func (b *ADD) applyTerminal(op Operator, f, g *int) (int, error) {
	switch op {
	case OPplus:
		return b.terminalPlus(f, g)
	case OPtimes:
		return b.terminalTimes(f, g)
	case OPthreshold:
		return b.terminalThreshold(f, g)
	case OPsetnz:
		return b.terminalSetNZ(f, g)
	case OPdivide:
		return b.terminalDivide(f, g)
	case OPminus:
		return b.terminalMinus(f, g)
	case OPmin:
		return b.terminalMin(f, g)
	case OPmax:
		return b.terminalMax(f, g)
	case OPonezeromax:
		return b.terminalOneZeroMax(f, g)
	case OPdiff:
		return b.terminalDiff(f, g)
	case OPagreement:
		return b.terminalAgreement(f, g)
	case OPor:
		return b.terminalOr(f, g)
	case OPnand:
		return b.terminalNand(f, g)
	case OPnor:
		return b.terminalNor(f, g)
	case OPxor:
		return b.terminalXor(f, g)
	case OPxnor:
		return b.terminalXnor(f, g)
	}
	return -1, errors.Errorf("unauthorized operation (%s) in apply", op)
}

// monadicTerminal checks the terminal case of a monadic apply. Like
// applyTerminal, it returns -1 when we need to recurse.
func (b *ADD) monadicTerminal(op Operator, f int) (int, error) {
	if !b.isconst(f) {
		return -1, nil
	}
	switch op {
	case OPlog:
		return b.maketerminal(math.Log(b.value(f)))
	case OPnegate:
		return b.maketerminal(-b.value(f))
	}
	return -1, errors.Errorf("unauthorized operation (%s) in monadic apply", op)
}

func swapOperands(f, g *int) {
	if *f > *g {
		*f, *g = *g, *f
	}
}

func (b *ADD) terminalPlus(f, g *int) (int, error) {
	if *f == czero {
		return *g, nil
	}
	if *g == czero {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return b.maketerminal(b.value(*f) + b.value(*g))
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalTimes(f, g *int) (int, error) {
	if *f == czero || *g == czero {
		return czero, nil
	}
	if *f == cone {
		return *g, nil
	}
	if *g == cone {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return b.maketerminal(b.value(*f) * b.value(*g))
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalThreshold(f, g *int) (int, error) {
	if *f == *g || *f == cposinf {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		if b.value(*f) >= b.value(*g) {
			return *f, nil
		}
		return czero, nil
	}
	return -1, nil
}

func (b *ADD) terminalSetNZ(f, g *int) (int, error) {
	if *f == *g {
		return *f, nil
	}
	if *f == czero {
		return *g, nil
	}
	if *g == czero {
		return *f, nil
	}
	if b.isconst(*g) {
		return *g, nil
	}
	return -1, nil
}

func (b *ADD) terminalDivide(f, g *int) (int, error) {
	// We cannot use f == g -> 1 because g may contain zeroes.
	if *f == czero {
		return czero, nil
	}
	if *g == cone {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return b.maketerminal(b.value(*f) / b.value(*g))
	}
	return -1, nil
}

func (b *ADD) terminalMinus(f, g *int) (int, error) {
	if *f == *g {
		return czero, nil
	}
	if *f == czero {
		return b.monadicRecur(OPnegate, *g)
	}
	if *g == czero {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return b.maketerminal(b.value(*f) - b.value(*g))
	}
	return -1, nil
}

func (b *ADD) terminalMin(f, g *int) (int, error) {
	if *f == cposinf {
		return *g, nil
	}
	if *g == cposinf {
		return *f, nil
	}
	if *f == *g {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		if b.value(*f) <= b.value(*g) {
			return *f, nil
		}
		return *g, nil
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalMax(f, g *int) (int, error) {
	if *f == *g {
		return *f, nil
	}
	if *f == cneginf {
		return *g, nil
	}
	if *g == cneginf {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		if b.value(*f) >= b.value(*g) {
			return *f, nil
		}
		return *g, nil
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalOneZeroMax(f, g *int) (int, error) {
	if *f == *g {
		return czero, nil
	}
	if *g == cposinf {
		return czero, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		if b.value(*f) > b.value(*g) {
			return cone, nil
		}
		return czero, nil
	}
	return -1, nil
}

func (b *ADD) terminalDiff(f, g *int) (int, error) {
	if *f == *g {
		return cposinf, nil
	}
	if *f == cposinf {
		return *g, nil
	}
	if *g == cposinf {
		return *f, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		if b.value(*f) == b.value(*g) {
			return cposinf, nil
		}
		if b.value(*f) < b.value(*g) {
			return *f, nil
		}
		return *g, nil
	}
	return -1, nil
}

func (b *ADD) terminalAgreement(f, g *int) (int, error) {
	if *f == *g {
		return *f, nil
	}
	if *f == b.background {
		return *f, nil
	}
	if *g == b.background {
		return *g, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return b.background, nil
	}
	return -1, nil
}

func (b *ADD) terminalOr(f, g *int) (int, error) {
	if *f == cone || *g == cone {
		return cone, nil
	}
	if b.isconst(*f) {
		return *g, nil
	}
	if b.isconst(*g) {
		return *f, nil
	}
	if *f == *g {
		return *f, nil
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalNand(f, g *int) (int, error) {
	if *f == czero || *g == czero {
		return cone, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return czero, nil
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalNor(f, g *int) (int, error) {
	if *f == cone || *g == cone {
		return czero, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return cone, nil
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalXor(f, g *int) (int, error) {
	if *f == *g {
		return czero, nil
	}
	if *f == cone && *g == czero {
		return cone, nil
	}
	if *g == cone && *f == czero {
		return cone, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return czero, nil
	}
	swapOperands(f, g)
	return -1, nil
}

func (b *ADD) terminalXnor(f, g *int) (int, error) {
	if *f == *g {
		return cone, nil
	}
	if *f == cone && *g == cone {
		return cone, nil
	}
	if *f == czero && *g == czero {
		return cone, nil
	}
	if b.isconst(*f) && b.isconst(*g) {
		return czero, nil
	}
	swapOperands(f, g)
	return -1, nil
}
