// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd_test

import (
	"fmt"
	"log"

	"github.com/avdl/radd"
)

// This example shows the basic usage of the package: create an ADD over two
// variables, combine diagrams with arithmetic operations, and evaluate the
// result on an assignment of the variables.
func Example_basic() {
	b, err := radd.New(2)
	if err != nil {
		log.Fatal(err)
	}
	// f is the function x0 + 3
	f := b.Plus(b.Ithvar(0), b.Terminal(3))
	// g is the function (x0 + 3) * 2
	g := b.Times(f, b.Terminal(2))
	fmt.Println(b.Eval(g, []bool{true, false}))
	fmt.Println(b.Eval(g, []bool{false, false}))
	// Output:
	// 8
	// 6
}

// This example shows the use of Apply with a comparison operator. The diagram
// computes the maximum of two weighted variables.
func Example_apply() {
	b, err := radd.New(2)
	if err != nil {
		log.Fatal(err)
	}
	f := b.Times(b.Ithvar(0), b.Terminal(5))
	g := b.Times(b.Ithvar(1), b.Terminal(3))
	h := b.Apply(f, g, radd.OPmax)
	fmt.Println(b.Eval(h, []bool{true, true}))
	fmt.Println(b.Eval(h, []bool{false, true}))
	// Output:
	// 5
	// 3
}
