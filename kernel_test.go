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

func TestMakenodeRedundant(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	res, err := b.makenode(0, czero, czero)
	require.NoError(t, err)
	assert.Equal(t, czero, res)
}

func TestMakenodeUnicity(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	res, err := b.makenode(1, czero, cone)
	require.NoError(t, err)
	// the 0-1 diagram for variable 1 already exists
	assert.Equal(t, b.varset[1], res)
	hits := b.uniqueHit
	again, err := b.makenode(1, czero, cone)
	require.NoError(t, err)
	assert.Equal(t, res, again)
	assert.Greater(t, b.uniqueHit, hits)
}

func TestTerminalUnicity(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	n := b.Terminal(1.5)
	m := b.Terminal(1.5)
	require.NotNil(t, n, b.Error())
	require.NotNil(t, m, b.Error())
	assert.Equal(t, *n, *m)
	assert.NotEqual(t, *n, *b.Terminal(2.5))
	// negative zero is folded into zero
	assert.True(t, b.Equal(b.Zero(), b.Terminal(math.Copysign(0, -1))))
	assert.True(t, b.Equal(b.PlusInfinity(), b.Terminal(math.Inf(1))))
}

func TestGbcReclaim(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	n := b.Apply(b.Ithvar(0), b.Terminal(3), OPtimes)
	require.NotNil(t, n, b.Error())
	require.NoError(t, b.checkptr(n))
	b.DelRef(n)
	before := b.freenum
	b.gbc()
	assert.Greater(t, b.freenum, before)
	assert.Error(t, b.checkptr(n))
	assert.Len(t, b.history, 1)
}

func TestReorderTriggerFlushesCache(t *testing.T) {
	b, err := New(2, Nodesize(8))
	require.NoError(t, err)
	b.setapply(OPplus, czero, cone, cone)
	require.Equal(t, cone, b.matchapply(OPplus, czero, cone))
	b.SetReorderTrigger(func() bool { return true })
	// drain the free list so that the next allocation consults the trigger
	for b.freepos != 0 {
		_, err := b.allocnode()
		require.NoError(t, err)
	}
	_, err = b.allocnode()
	require.ErrorIs(t, err, errReorder)
	assert.True(t, b.reordered)
	// a firing trigger invalidates every cached result
	assert.Equal(t, -1, b.matchapply(OPplus, czero, cone))
}

func TestConstantsArePinned(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	b.gbc()
	require.NoError(t, b.checkptr(b.Zero()))
	require.NoError(t, b.checkptr(b.One()))
	require.NoError(t, b.checkptr(b.PlusInfinity()))
	require.NoError(t, b.checkptr(b.MinusInfinity()))
	for i := 0; i < 3; i++ {
		require.NoError(t, b.checkptr(b.Ithvar(i)))
	}
}

func TestCheckptr(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	assert.ErrorIs(t, b.checkptr(nil), errNilNode)
	assert.ErrorIs(t, b.checkptr(inode(-1)), errBadNode)
	assert.ErrorIs(t, b.checkptr(inode(len(b.nodes))), errBadNode)
}

func TestAccessors(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Varnum())
	x1 := b.Ithvar(1)
	assert.Equal(t, 1, b.Label(x1))
	assert.Equal(t, 1, b.Level(x1))
	assert.False(t, b.IsTerminal(x1))
	assert.True(t, b.Equal(b.Zero(), b.Low(x1)))
	assert.True(t, b.Equal(b.One(), b.High(x1)))
	assert.True(t, b.IsTerminal(b.Terminal(4)))
	assert.Equal(t, 4.0, b.Value(b.Terminal(4)))
	assert.True(t, math.IsNaN(b.Value(x1)))
	assert.Error(t, b.Err())
}

func TestBadVarnum(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	_, err = New(-3)
	assert.Error(t, err)
}
