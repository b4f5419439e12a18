// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package radd provides a library for manipulating Algebraic Decision
// Diagrams (ADD), a generalization of BDD where the leaves carry arbitrary
// float64 values instead of only true and false. An ADD represents a function
// from Boolean decision variables to numbers as a reduced, ordered, directed
// acyclic graph. Diagrams are canonical: two nodes represent the same
// function exactly when they are equal.
//
// Operations between diagrams are built with Apply and MonadicApply, which
// combine the discriminants of their operands pointwise with an Operator,
// such as OPplus or OPmin. Results are memoized in an operation cache, and
// unused nodes are reclaimed with a mark and sweep garbage collector that
// cooperates with the Go runtime.
//
// The library is a port, with many simplifications, of the ADD part of the
// CUDD decision diagram package.
package radd
