// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	// f is x0 + 2*x1 + 4*x2
	f := b.Plus(
		b.Ithvar(0),
		b.Times(b.Ithvar(1), b.Terminal(2)),
		b.Times(b.Ithvar(2), b.Terminal(4)),
	)
	require.NotNil(t, f, b.Error())
	for v := 0; v < 8; v++ {
		env := []bool{v&1 != 0, v&2 != 0, v&4 != 0}
		assert.Equal(t, float64(v), b.Eval(f, env))
	}
}

func TestEvalBadAssignment(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(b.Eval(b.Ithvar(0), []bool{true})))
	assert.Error(t, b.Err())
}

func TestFindMinMax(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	f := b.Plus(
		b.Times(b.Ithvar(0), b.Terminal(-3)),
		b.Times(b.Ithvar(1), b.Terminal(7)),
	)
	require.NotNil(t, f, b.Error())
	min := b.FindMin(f)
	require.NotNil(t, min, b.Error())
	assert.Equal(t, -3.0, b.Value(min))
	max := b.FindMax(f)
	require.NotNil(t, max, b.Error())
	assert.Equal(t, 7.0, b.Value(max))
	// on a terminal both bounds are the terminal itself
	assert.True(t, b.Equal(b.Terminal(5), b.FindMin(b.Terminal(5))))
	assert.True(t, b.Equal(b.Terminal(5), b.FindMax(b.Terminal(5))))
}

func TestAllnodes(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	f := b.Apply(b.Ithvar(0), b.Ithvar(1), OPxor)
	require.NotNil(t, f, b.Error())
	count := 0
	terminals := 0
	err = b.Allnodes(func(id, level, low, high int, value float64) error {
		count++
		if level == int(b.varnum) {
			terminals++
			assert.Equal(t, id, low)
			assert.Equal(t, id, high)
		}
		return nil
	}, f)
	require.NoError(t, err)
	// 0, 1, and three internal nodes
	assert.Equal(t, 5, count)
	assert.Equal(t, 2, terminals)

	// without parameters we visit every active node, including the pinned
	// constants and variables
	count = 0
	err = b.Allnodes(func(id, level, low, high int, value float64) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	// an error from the callback stops the computation and leaves no mark
	fail := errors.New("stop")
	err = b.Allnodes(func(id, level, low, high int, value float64) error {
		return fail
	}, f)
	assert.ErrorIs(t, err, fail)
	for k := range b.nodes {
		if b.nodes[k].low != -1 {
			assert.False(t, b.ismarked(k))
		}
	}
}
