package settings

import (
	"testing"

	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, DefaultAnnex, s.Annex)
	assert.Equal(t, "SP", s.HomeUF)
	assert.True(t, s.RBT12.IsZero())
	assert.True(t, s.EffectiveRate.IsZero())
	assert.True(t, s.DIFALRate.Equal(decimal.NewFromFloat(0.12)))
}

func TestUpdateRBT12RecomputesRate(t *testing.T) {
	s := NewSettings()

	err := s.UpdateRBT12(decimal.NewFromInt(180000), fiscal.AnexoI())
	require.NoError(t, err)
	assert.True(t, s.EffectiveRate.Equal(decimal.NewFromFloat(0.04)), "esperava 0.04, obteve %s", s.EffectiveRate)
}

func TestUpdateRBT12RejectsNegative(t *testing.T) {
	s := NewSettings()
	before := s.EffectiveRate

	err := s.UpdateRBT12(decimal.NewFromInt(-1), fiscal.AnexoI())
	assert.ErrorIs(t, err, ErrInvalidRBT12)
	// Estado original preservado após rejeição
	assert.True(t, s.EffectiveRate.Equal(before))
	assert.True(t, s.RBT12.IsZero())
}

func TestUpdateDIFALRate(t *testing.T) {
	s := NewSettings()

	require.NoError(t, s.UpdateDIFALRate(decimal.NewFromFloat(0.07)))
	assert.True(t, s.DIFALRate.Equal(decimal.NewFromFloat(0.07)))

	assert.ErrorIs(t, s.UpdateDIFALRate(decimal.NewFromInt(2)), ErrInvalidDIFAL)
	assert.ErrorIs(t, s.UpdateDIFALRate(decimal.NewFromFloat(-0.1)), ErrInvalidDIFAL)
}

func TestUpdateHomeUF(t *testing.T) {
	s := NewSettings()

	require.NoError(t, s.UpdateHomeUF("MG"))
	assert.Equal(t, "MG", s.HomeUF)
	assert.ErrorIs(t, s.UpdateHomeUF("XYZ"), ErrInvalidUF)
}

func TestFiscalParams(t *testing.T) {
	s := NewSettings()
	require.NoError(t, s.UpdateRBT12(decimal.NewFromInt(180000), fiscal.AnexoI()))

	p := s.FiscalParams()
	assert.True(t, p.EffectiveRate.Equal(decimal.NewFromFloat(0.04)))
	assert.True(t, p.DIFALRate.Equal(s.DIFALRate))
	assert.Equal(t, s.HomeUF, p.HomeUF)
}
