package fiscal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveRateFirstBracket(t *testing.T) {
	table := AnexoI()

	// RBT12 de 180.000 com alíquota nominal de 4% e dedução zero
	rate := table.EffectiveRate(decimal.NewFromInt(180000))
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.04)), "esperava 0.04, obteve %s", rate)
}

func TestEffectiveRateZeroRBT12(t *testing.T) {
	table := AnexoI()

	rate := table.EffectiveRate(decimal.Zero)
	assert.True(t, rate.IsZero())
}

func TestEffectiveRateBounds(t *testing.T) {
	table := AnexoI()
	max := table.MaxNominalRate()

	values := []int64{0, 1, 1000, 179999, 180000, 180001, 360000, 719999, 1800000, 3600001, 4800000, 99999999}
	for _, v := range values {
		rate := table.EffectiveRate(decimal.NewFromInt(v))
		assert.False(t, rate.IsNegative(), "alíquota negativa para RBT12 %d", v)
		assert.True(t, rate.LessThanOrEqual(max), "alíquota acima da nominal máxima para RBT12 %d", v)
	}
}

func TestEffectiveRateBoundarySelectsLowerBracket(t *testing.T) {
	table := AnexoI()

	// Exatamente no limite superior vale a faixa de baixo
	b := table.FindBracket(decimal.NewFromInt(360000))
	assert.True(t, b.NominalRate.Equal(decimal.NewFromFloat(0.073)))

	b = table.FindBracket(decimal.NewFromInt(360001))
	assert.True(t, b.NominalRate.Equal(decimal.NewFromFloat(0.095)))
}

func TestEffectiveRateAboveAllBracketsUsesLast(t *testing.T) {
	table := AnexoI()

	b := table.FindBracket(decimal.NewFromInt(10000000))
	assert.True(t, b.NominalRate.Equal(decimal.NewFromFloat(0.19)))
}

func TestNominalRateMonotonic(t *testing.T) {
	table := AnexoI()

	prev := decimal.Zero
	steps := []int64{100000, 200000, 500000, 1000000, 2000000, 4000000, 6000000}
	for _, v := range steps {
		b := table.FindBracket(decimal.NewFromInt(v))
		assert.True(t, b.NominalRate.GreaterThanOrEqual(prev), "alíquota nominal caiu em RBT12 %d", v)
		prev = b.NominalRate
	}
}

func TestEffectiveRateClampedToZero(t *testing.T) {
	// Tabela artificial em que a dedução supera o imposto na fronteira
	table, err := NewRateTable([]Bracket{
		{UpperBound: decimal.NewFromInt(1000), NominalRate: decimal.NewFromFloat(0.05), Deduction: decimal.Zero},
		{UpperBound: decimal.NewFromInt(2000), NominalRate: decimal.NewFromFloat(0.10), Deduction: decimal.NewFromInt(500)},
	})
	require.NoError(t, err)

	// 1001 * 0.10 - 500 < 0: a alíquota efetiva é travada em zero
	rate := table.EffectiveRate(decimal.NewFromInt(1001))
	assert.True(t, rate.IsZero(), "esperava zero, obteve %s", rate)
}

func TestNewRateTableRejectsUnorderedBounds(t *testing.T) {
	_, err := NewRateTable([]Bracket{
		{UpperBound: decimal.NewFromInt(2000), NominalRate: decimal.NewFromFloat(0.05)},
		{UpperBound: decimal.NewFromInt(1000), NominalRate: decimal.NewFromFloat(0.10)},
	})
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = NewRateTable(nil)
	assert.ErrorIs(t, err, ErrInvalidTable)
}
