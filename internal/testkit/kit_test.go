package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestKit_Deterministic(t *testing.T) {
	a := NewKit(42).Normal(20, 0, 1)
	b := NewKit(42).Normal(20, 0, 1)
	assert.Equal(t, a, b, "same seed must reproduce the same sample")

	c := NewKit(43).Normal(20, 0, 1)
	assert.NotEqual(t, a, c)
}

func TestKit_ShapesAndBounds(t *testing.T) {
	k := NewKit(7)

	u := k.Uniform(100, 2, 3)
	assert.Len(t, u, 100)
	for _, v := range u {
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 3.0)
	}

	for i := 0; i < 50; i++ {
		n := k.Size(3, 5)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
	}

	g := k.Grouped(4, 2, 6, 10, 1, 5)
	assert.Len(t, g, 4)
	assert.Equal(t, "g1", g[0].Label)
	assert.NoError(t, g.Validate("test"))

	p := k.Linear(30, 1, 2, 0.5)
	assert.NoError(t, p.Validate("test", 3))
}

func TestKit_NormalMoments(t *testing.T) {
	x := NewKit(11).Normal(20000, 50, 4)
	mean, sd := stat.MeanStdDev(x, nil)
	assert.InDelta(t, 50, mean, 0.2)
	assert.InDelta(t, 4, sd, 0.2)
}
