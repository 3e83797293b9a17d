package fundwatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuate(t *testing.T) {
	valuer := &fakeValuer{valuations: map[Code]Valuation{
		"001186": {Code: "001186", Name: "Fund A", ReferencePrice: "2.0000", Estimate: "2.1000", EstimateChange: "5.00"},
		"002145": {Code: "002145", Name: "Fund B", ReferencePrice: "1.0000", Estimate: "0.9000", EstimateChange: "-10.00"},
	}, jitter: true}
	holdings := []Holding{
		{Code: "001186", Units: Q(100), Cost: M(150, Currency), HasCost: true},
		{Code: "002145", Units: Q(1000)},
		{Code: "999999", Units: Q(1)},
	}

	positions := Valuate(context.Background(), valuer, holdings, 2)
	require.Len(t, positions, 3)

	a := positions[0]
	require.NoError(t, a.Err)
	assert.Equal(t, "Fund A", a.Name())
	mv, ok := a.MarketValue()
	require.True(t, ok)
	assert.Equal(t, "210.00", mv.Fixed())
	day, ok := a.DayGain()
	require.True(t, ok)
	assert.Equal(t, "10.00", day.Fixed())
	gain, ok := a.TotalGain()
	require.True(t, ok)
	assert.Equal(t, "60.00", gain.Fixed())
	rate, ok := a.GainRate()
	require.True(t, ok)
	assert.True(t, rate.Equal(40), "rate %s", rate)

	b := positions[1]
	day, _ = b.DayGain()
	assert.Equal(t, "-100.00", day.Fixed())
	_, ok = b.TotalGain()
	assert.False(t, ok, "no cost, no total gain")

	c := positions[2]
	assert.Error(t, c.Err)
	assert.Equal(t, "999999", c.Name())
	_, ok = c.MarketValue()
	assert.False(t, ok)

	s := Summarize(positions)
	assert.Equal(t, 3, s.Positions)
	assert.Equal(t, "1110.00", s.MarketValue.Fixed())
	assert.Equal(t, "-90.00", s.DayGain.Fixed())
	assert.Equal(t, "60.00", s.TotalGain.Fixed())
}

func TestPosition_MissingEstimate(t *testing.T) {
	p := Position{
		Holding:   Holding{Code: "001186", Units: Q(10), Cost: M(5, Currency), HasCost: true},
		Valuation: Valuation{Code: "001186", ReferencePrice: "1"},
	}
	_, ok := p.MarketValue()
	assert.False(t, ok)
	ref, ok := p.ReferenceValue()
	require.True(t, ok)
	assert.Equal(t, "10.00", ref.Fixed())
	_, ok = p.GainRate()
	assert.False(t, ok)
}

func TestPosition_NegativeCost(t *testing.T) {
	p := Position{
		Holding:   Holding{Code: "001186", Units: Q(100), Cost: M(-50, Currency), HasCost: true},
		Valuation: Valuation{Code: "001186", ReferencePrice: "2", Estimate: "2.1"},
	}
	gain, ok := p.TotalGain()
	require.True(t, ok, "a negative cost still has a total gain")
	assert.Equal(t, "260.00", gain.Fixed())

	p.Cost = M(0, Currency)
	_, ok = p.TotalGain()
	assert.False(t, ok, "a zero cost has none")
}
