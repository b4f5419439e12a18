// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlusConstants(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	res := b.Apply(b.Terminal(3), b.Terminal(4), OPplus)
	require.NotNil(t, res, b.Error())
	assert.True(t, b.IsTerminal(res))
	assert.Equal(t, 7.0, b.Value(res))
}

func TestArithmeticConstants(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	tests := []struct {
		op       Operator
		f, g     float64
		expected float64
	}{
		{OPplus, 2, 5, 7},
		{OPtimes, 3, 4, 12},
		{OPminus, 10, 4, 6},
		{OPdivide, 9, 3, 3},
		{OPmin, 2, 5, 2},
		{OPmax, 2, 5, 5},
		{OPthreshold, 5, 3, 5},
		{OPthreshold, 2, 3, 0},
		{OPonezeromax, 5, 3, 1},
		{OPonezeromax, 3, 5, 0},
		{OPdiff, 2, 5, 2},
		{OPdiff, 5, 5, math.Inf(1)},
		{OPsetnz, 4, 7, 7},
		{OPsetnz, 4, 0, 4},
	}
	for _, tt := range tests {
		res := b.Apply(b.Terminal(tt.f), b.Terminal(tt.g), tt.op)
		require.NotNil(t, res, "op %s(%g, %g): %s", tt.op, tt.f, tt.g, b.Error())
		assert.Equal(t, tt.expected, b.Value(res), "op %s(%g, %g)", tt.op, tt.f, tt.g)
	}
}

func TestBooleanOperators(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	x0, x1 := b.Ithvar(0), b.Ithvar(1)
	assignments := [][]bool{
		{false, false},
		{false, true},
		{true, false},
		{true, true},
	}
	tests := []struct {
		op       Operator
		expected [4]float64
	}{
		{OPor, [4]float64{0, 1, 1, 1}},
		{OPtimes, [4]float64{0, 0, 0, 1}},
		{OPnand, [4]float64{1, 1, 1, 0}},
		{OPnor, [4]float64{1, 0, 0, 0}},
		{OPxor, [4]float64{0, 1, 1, 0}},
		{OPxnor, [4]float64{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		res := b.Apply(x0, x1, tt.op)
		require.NotNil(t, res, b.Error())
		for k, env := range assignments {
			assert.Equal(t, tt.expected[k], b.Eval(res, env), "op %s on %v", tt.op, env)
		}
	}
}

func TestMinusOnDiagrams(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	// 0 - f must equal the negation of f
	f := b.Plus(b.Ithvar(0), b.Terminal(3))
	lhs := b.Minus(b.Zero(), f)
	rhs := b.Negate(f)
	require.NotNil(t, lhs, b.Error())
	assert.True(t, b.Equal(lhs, rhs))
	assert.Equal(t, -4.0, b.Eval(lhs, []bool{true, false}))
}

func TestMonadicOperators(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	res := b.Log(b.Terminal(math.E))
	require.NotNil(t, res, b.Error())
	assert.InDelta(t, 1.0, b.Value(res), 1e-12)

	neg := b.Negate(b.Terminal(5))
	require.NotNil(t, neg, b.Error())
	assert.Equal(t, -5.0, b.Value(neg))

	// negating twice gives back the same node
	f := b.Plus(b.Ithvar(0), b.Ithvar(1))
	assert.True(t, b.Equal(f, b.Negate(b.Negate(f))))
}

func TestMonadicArity(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	assert.Nil(t, b.Apply(b.Ithvar(0), b.Ithvar(1), OPnegate))
	assert.Error(t, b.Err())

	b, err = New(2)
	require.NoError(t, err)
	assert.Nil(t, b.MonadicApply(b.Ithvar(0), OPplus))
	assert.Error(t, b.Err())
}

func TestAgreement(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	res := b.Apply(b.Terminal(2), b.Terminal(2), OPagreement)
	require.NotNil(t, res, b.Error())
	assert.Equal(t, 2.0, b.Value(res))

	// two constants that differ agree on the background value, 0 by default
	res = b.Apply(b.Terminal(2), b.Terminal(3), OPagreement)
	require.NotNil(t, res, b.Error())
	assert.Equal(t, 0.0, b.Value(res))

	require.NoError(t, b.SetBackground(b.Terminal(-1)))
	res = b.Apply(b.Terminal(2), b.Terminal(3), OPagreement)
	require.NotNil(t, res, b.Error())
	assert.Equal(t, -1.0, b.Value(res))
}

func TestInfinities(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	f := b.Plus(b.Ithvar(0), b.Terminal(2))
	min := b.Apply(b.PlusInfinity(), f, OPmin)
	require.NotNil(t, min, b.Error())
	assert.True(t, b.Equal(f, min))
	max := b.Apply(b.MinusInfinity(), f, OPmax)
	require.NotNil(t, max, b.Error())
	assert.True(t, b.Equal(f, max))
}

func TestOperatorNames(t *testing.T) {
	assert.Equal(t, "plus", OPplus.String())
	assert.Equal(t, "negate", OPnegate.String())
	assert.Equal(t, "unknown", Operator(42).String())
	assert.False(t, OPxnor.monadic())
	assert.True(t, OPlog.monadic())
}
