// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Stats returns information about the node table, the garbage collector and
// the operation cache.
func (b *ADD) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	res += fmt.Sprintf("Free:       %d\n", b.freenum)
	res += fmt.Sprintf("Used:       %d\n", len(b.nodes)-b.freenum)
	res += b.gcstat.String() + "\n"
	res += b.cacheStat.String()
	return res
}

// Print writes a textual view of the ADD on w, one line for each active node,
// or only the nodes accessible from the parameter nodes if any are given.
func (b *ADD) Print(w io.Writer, n ...Node) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tvar\tlow\thigh\tvalue\t")
	_ = b.Allnodes(func(id, level, low, high int, value float64) error {
		if level == int(b.varnum) {
			fmt.Fprintf(tw, "n%d\t-\t-\t-\t%s\t\n", id, strconv.FormatFloat(value, 'g', -1, 64))
			return nil
		}
		fmt.Fprintf(tw, "n%d\tx%d\tn%d\tn%d\t-\t\n", id, b.level2var[level], low, high)
		return nil
	}, n...)
	tw.Flush()
}

// Dot writes a graph description of the ADD on w, in Graphviz format, or only
// the part accessible from the parameter nodes if any are given. Terminals
// are drawn as boxes holding their value; the else branch of an internal node
// is drawn dashed.
func (b *ADD) Dot(w io.Writer, n ...Node) error {
	if _, err := fmt.Fprintln(w, "digraph ADD {"); err != nil {
		return err
	}
	err := b.Allnodes(func(id, level, low, high int, value float64) error {
		if level == int(b.varnum) {
			_, err := fmt.Fprintf(w, "  n%d [shape=box, label=%q];\n", id, strconv.FormatFloat(value, 'g', -1, 64))
			return err
		}
		if _, err := fmt.Fprintf(w, "  n%d [shape=circle, label=\"x%d\"];\n", id, b.level2var[level]); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  n%d -> n%d [style=dashed];\n", id, low); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "  n%d -> n%d;\n", id, high)
		return err
	}, n...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "}")
	return err
}
