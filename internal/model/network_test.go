package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiveBusCase(t *testing.T) {
	c := FiveBus()
	require.NoError(t, c.Validate())

	t.Run("tables match the study data", func(t *testing.T) {
		assert.Equal(t, 100.0, c.SbaseMW)
		assert.Equal(t, []Bus{1, 2, 3, 4, 5}, c.Buses)
		assert.Equal(t, Bus(1), c.Slack)
		assert.Len(t, c.Generators, 4)
		assert.Len(t, c.Demands, 5)
		assert.Len(t, c.Lines, 6)

		g := c.Generators[5]
		assert.Equal(t, 600.0, g.PmaxMW)
		assert.Equal(t, -450.0, g.QminMVAr)
		assert.Equal(t, 1.0, g.CostB)

		d := c.Demands[4]
		assert.Equal(t, 400.0, d.PdMW)
		assert.Equal(t, 131.47, d.QdMVAr)
	})

	t.Run("bus 2 has demand but no generator", func(t *testing.T) {
		_, ok := c.Generators[2]
		assert.False(t, ok)
		_, ok = c.Demands[2]
		assert.True(t, ok)
	})

	t.Run("connectivity is directional", func(t *testing.T) {
		assert.True(t, c.HasLine(1, 2))
		assert.False(t, c.HasLine(2, 1))
		assert.True(t, c.HasLine(4, 5))
		assert.False(t, c.HasLine(5, 4))
		assert.False(t, c.HasLine(2, 4))
	})
}

func TestLineDerivedQuantities(t *testing.T) {
	l := Line{From: 1, To: 2, R: 0.00281, X: 0.0281, LimitMW: 400}

	assert.InDelta(t, math.Sqrt(0.00281*0.00281+0.0281*0.0281), l.Impedance(), 1e-15)
	assert.InDelta(t, math.Atan(0.0281/0.00281), l.ImpedanceAngle(), 1e-15)
	assert.InDelta(t, 1/0.0281, l.Susceptance(), 1e-12)

	t.Run("purely reactive line has angle pi/2", func(t *testing.T) {
		lossless := Line{From: 1, To: 2, R: 0, X: 0.05, LimitMW: 100}
		assert.Equal(t, math.Pi/2, lossless.ImpedanceAngle())
	})
}

func TestCaseValidate(t *testing.T) {
	base := func() *Case {
		c := FiveBus()
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Case)
	}{
		{"line to unknown bus", func(c *Case) {
			c.Lines = append(c.Lines, Line{From: 1, To: 9, R: 0.01, X: 0.1, LimitMW: 100})
		}},
		{"duplicate line", func(c *Case) {
			c.Lines = append(c.Lines, c.Lines[0])
		}},
		{"self line", func(c *Case) {
			c.Lines = append(c.Lines, Line{From: 3, To: 3, R: 0.01, X: 0.1, LimitMW: 100})
		}},
		{"zero reactance", func(c *Case) {
			c.Lines[0].X = 0
		}},
		{"negative resistance", func(c *Case) {
			c.Lines[0].R = -0.001
		}},
		{"nonpositive limit", func(c *Case) {
			c.Lines[0].LimitMW = 0
		}},
		{"generator at unknown bus", func(c *Case) {
			c.Generators[9] = Generator{Bus: 9, PmaxMW: 10, QmaxMVAr: 10, CostB: 1}
		}},
		{"generator bounds inverted", func(c *Case) {
			g := c.Generators[3]
			g.PminMW = g.PmaxMW + 1
			c.Generators[3] = g
		}},
		{"demand at unknown bus", func(c *Case) {
			c.Demands[7] = Demand{PdMW: 10}
		}},
		{"slack outside bus set", func(c *Case) {
			c.Slack = 42
		}},
		{"duplicate bus", func(c *Case) {
			c.Buses = append(c.Buses, 3)
		}},
		{"nonpositive base power", func(c *Case) {
			c.SbaseMW = 0
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	t.Run("nil case", func(t *testing.T) {
		var c *Case
		assert.Error(t, c.Validate())
	})
}
