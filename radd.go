// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Node is a reference to an element of an ADD, that is a function from
// Boolean decision variables to a float64 value. We use a mark and sweep
// garbage collector over the nodes, so a Node can move out of scope safely;
// its slot is reclaimed once the Go runtime has collected the reference.
type Node *int

// inode returns a Node for one of the pinned elements of the diagram.
func inode(n int) Node {
	x := n
	return &x
}

var (
	addzero   = inode(czero)
	addone    = inode(cone)
	addposinf = inode(cposinf)
	addneginf = inode(cneginf)
)

// ADD is the type of algebraic decision diagrams. It carries the node table,
// the unicity tables used to keep diagrams canonical, and the operation
// cache. Methods on ADD are not safe for concurrent use.
type ADD struct {
	nodes      []addnode      // List of all the ADD nodes. Constants and variables are always kept at the start
	unique     map[triple]int // Unicity table for the internal nodes
	terms      map[uint64]int // Unicity table for the terminals, keyed by the bits of their value
	freepos    int            // First free slot in the node table
	freenum    int            // Number of free slots
	produced   int            // Total number of nodes produced
	varnum     int32          // Number of decision variables
	varset     []int          // Set of 0-1 diagrams for the variables, pinned
	var2level  []int32        // Variable -> level mapping
	level2var  []int32        // Level -> variable mapping
	background int            // Terminal returned by OPagreement on a disagreement
	refstack   []int          // Internal node references during computations
	reordered  bool           // Set when the variable order changed during a computation
	reorder    func() bool    // Trigger consulted when the node table is full

	deadline       time.Time  // Deadline set with SetTimeout, zero if none
	timeoutHandler func(*ADD) // Called at top level when a computation times out

	applycache // Operation cache
	cacheStat  // Information about the operation caches
	gcstat     // Information about garbage collections

	maxnodesize     int // Maximum total number of nodes (0 if no limit)
	maxnodeincrease int // Maximum number of nodes that can be added to the table at each resize
	minfreenodes    int // Minimum number of nodes to be reclaimed by GC before a resize

	nodefinalizer interface{} // Finalizer used to decrement the ref count of external references

	log   *logrus.Logger
	error error // Error status, setting it to a non nil value locks the whole ADD
}

// New initializes an ADD over varnum Boolean decision variables. The four
// terminal constants 0, 1, +∞ and -∞ and one 0-1 diagram for each variable
// are built eagerly and pinned, so Ithvar and the accessors for the constants
// never allocate. Use configuration options to set the initial size of the
// node table or the operation cache, for example:
//
//	b, err := radd.New(10, radd.Nodesize(10000), radd.Cachesize(5000))
//
// creates an ADD over 10 variables with a node table of size 10 000 and an
// operation cache with 5 000 entries.
func New(varnum int, options ...func(*configs)) (*ADD, error) {
	if varnum < 1 || varnum > int(_MAXVAR) {
		return nil, errors.Errorf("bad number of decision variables (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b := &ADD{varnum: int32(varnum)}
	nodesize := config.nodesize
	if nodesize < varnum+6 {
		nodesize = varnum + 6
	}
	b.maxnodesize = config.maxnodesize
	b.maxnodeincrease = config.maxnodeincrease
	b.minfreenodes = config.minfreenodes
	b.nodes = make([]addnode, nodesize)
	b.unique = make(map[triple]int)
	b.terms = make(map[uint64]int)
	for k := range b.nodes {
		b.nodes[k] = addnode{low: -1, high: k + 1}
	}
	b.nodes[nodesize-1].high = 0
	for k, v := range []float64{0, 1, math.Inf(1), math.Inf(-1)} {
		b.nodes[k] = addnode{level: b.varnum, low: k, high: k, refcou: _MAXREFCOUNT, value: v}
		b.terms[math.Float64bits(v)] = k
	}
	b.freepos = cneginf + 1
	b.freenum = nodesize - b.freepos
	b.background = czero
	b.var2level = make([]int32, varnum)
	b.level2var = make([]int32, varnum)
	for k := range b.var2level {
		b.var2level[k] = int32(k)
		b.level2var[k] = int32(k)
	}
	b.refstack = make([]int, 0, 2*varnum+4)
	b.log = logrus.New()
	b.log.SetLevel(logrus.WarnLevel)
	b.cacheinit(config.cachesize)
	b.applycache.cacheratio = config.cacheratio
	b.varset = make([]int, varnum)
	for k := range b.varset {
		n, err := b.makenode(int32(k), czero, cone)
		if err != nil {
			return nil, errors.Wrap(err, "cannot allocate variables")
		}
		b.varset[k] = n
		b.nodes[n].refcou = _MAXREFCOUNT
	}
	b.nodefinalizer = func(n *int) {
		b.nodes[*n].refcou--
	}
	return b, nil
}

// Varnum returns the number of defined variables.
func (b *ADD) Varnum() int {
	return int(b.varnum)
}

// Zero returns the constant 0 ADD.
func (b *ADD) Zero() Node {
	return addzero
}

// One returns the constant 1 ADD.
func (b *ADD) One() Node {
	return addone
}

// PlusInfinity returns the constant +∞ ADD.
func (b *ADD) PlusInfinity() Node {
	return addposinf
}

// MinusInfinity returns the constant -∞ ADD.
func (b *ADD) MinusInfinity() Node {
	return addneginf
}

// Background returns the current background value, the terminal returned by
// an agreement (OPagreement) between two constants that differ. It is the
// constant 0 unless changed with SetBackground.
func (b *ADD) Background() Node {
	return b.retnode(b.background)
}

// SetBackground changes the background value. The operand must be a terminal.
func (b *ADD) SetBackground(n Node) error {
	if err := b.checkptr(n); err != nil {
		return errors.Wrap(err, "wrong operand in call to SetBackground")
	}
	if !b.isconst(*n) {
		return errors.New("non terminal operand in call to SetBackground")
	}
	old := b.background
	b.background = *n
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou++
	}
	if b.nodes[old].refcou > 0 && b.nodes[old].refcou < _MAXREFCOUNT {
		b.nodes[old].refcou--
	}
	return nil
}

// Ithvar returns the 0-1 diagram associated with variable i, the function
// that is 1 when variable i is true and 0 otherwise. The node is pinned and
// cannot be reclaimed.
func (b *ADD) Ithvar(i int) Node {
	if i < 0 || int32(i) >= b.varnum {
		b.seterror("unknown variable %d in call to Ithvar", i)
		return addzero
	}
	return inode(b.varset[i])
}

// Terminal returns the constant diagram holding value. Terminals are unique:
// two calls with the same value return the same node. The value -0 is folded
// into 0.
func (b *ADD) Terminal(value float64) Node {
	b.initref()
	res, err := b.maketerminal(value)
	if err != nil {
		return b.setfailure(err, "error in Terminal (%g)", value)
	}
	return b.retnode(res)
}

// Low returns the else branch of an ADD, the child taken when the decision
// variable is false.
func (b *ADD) Low(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Low")
	}
	return b.retnode(b.nodes[*n].low)
}

// High returns the then branch of an ADD, the child taken when the decision
// variable is true.
func (b *ADD) High(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to High")
	}
	return b.retnode(b.nodes[*n].high)
}

// Label returns the variable tested at the root of n. It is an error to call
// it on a terminal.
func (b *ADD) Label(n Node) int {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Label")
		return -1
	}
	if b.isconst(*n) {
		b.seterror("terminal operand in call to Label")
		return -1
	}
	return int(b.level2var[b.nodes[*n].level])
}

// Level returns the position of the root of n in the variable order, varnum
// for terminals.
func (b *ADD) Level(n Node) int {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Level")
		return -1
	}
	return int(b.nodes[*n].level)
}

// Value returns the discriminant of a terminal. It is an error to call it on
// an internal node, in which case we return NaN.
func (b *ADD) Value(n Node) float64 {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Value")
		return math.NaN()
	}
	if !b.isconst(*n) {
		b.seterror("non terminal operand in call to Value")
		return math.NaN()
	}
	return b.value(*n)
}

// IsTerminal reports whether n is a terminal.
func (b *ADD) IsTerminal(n Node) bool {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to IsTerminal")
		return false
	}
	return b.isconst(*n)
}

// Equal reports whether n and m reference the same diagram. Since diagrams
// are canonical, this decides whether the two functions are equal.
func (b *ADD) Equal(n, m Node) bool {
	if n == m {
		return true
	}
	if n == nil || m == nil {
		return false
	}
	return *n == *m
}

// SetTimeout sets a deadline of duration d on every subsequent computation.
// An operation still running past the deadline is abandoned: it returns a nil
// Node and sets the error status of b to ErrTimeout. A duration of zero or
// less removes the deadline.
func (b *ADD) SetTimeout(d time.Duration) {
	if d <= 0 {
		b.deadline = time.Time{}
		return
	}
	b.deadline = time.Now().Add(d)
}

// RegisterTimeoutHandler registers a function called, at top level, when a
// computation is abandoned on a timeout. Passing nil removes the handler.
func (b *ADD) RegisterTimeoutHandler(f func(*ADD)) {
	b.timeoutHandler = f
}

// SetReorderTrigger registers a hook consulted when the node table is full,
// before garbage collection. When the hook returns true the operation cache
// is flushed and the current computation is restarted from scratch, as its
// intermediate results may no longer be valid. Passing nil removes the hook.
func (b *ADD) SetReorderTrigger(f func() bool) {
	b.reorder = f
}

// SetLogLevel changes the verbosity of the internal logger. The default level
// (warning) keeps garbage collections and resizes quiet; use
// logrus.DebugLevel to trace them.
func (b *ADD) SetLogLevel(level logrus.Level) {
	b.log.SetLevel(level)
}
