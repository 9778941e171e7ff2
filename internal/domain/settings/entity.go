package settings

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	"github.com/shopspring/decimal"
)

// Erros de validação das configurações fiscais
var (
	ErrInvalidRBT12 = errors.New("RBT12 deve ser maior ou igual a zero")
	ErrInvalidDIFAL = errors.New("alíquota DIFAL deve estar entre 0 e 1")
	ErrInvalidUF    = errors.New("UF da empresa deve ter 2 caracteres")
)

// DefaultAnnex é o anexo do Simples Nacional usado por padrão (comércio)
const DefaultAnnex = "Anexo I"

// Settings é o registro único de configuração fiscal da empresa. A
// alíquota efetiva é derivada do RBT12 e recalculada de forma síncrona a
// cada atualização, nunca servida defasada.
type Settings struct {
	ID            string          `json:"id"`
	RBT12         decimal.Decimal `json:"rbt12"`
	Annex         string          `json:"annex"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	DIFALRate     decimal.Decimal `json:"difal_rate"`
	HomeUF        string          `json:"home_uf"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewSettings cria a configuração fiscal com os valores padrão
func NewSettings() *Settings {
	return &Settings{
		ID:            uuid.New().String(),
		RBT12:         decimal.Zero,
		Annex:         DefaultAnnex,
		EffectiveRate: decimal.Zero,
		DIFALRate:     decimal.NewFromFloat(0.12),
		HomeUF:        "SP",
		UpdatedAt:     time.Now(),
	}
}

// UpdateRBT12 valida o novo RBT12 e recalcula a alíquota efetiva na mesma
// operação; em caso de erro nada é alterado
func (s *Settings) UpdateRBT12(rbt12 decimal.Decimal, table fiscal.RateTable) error {
	if rbt12.IsNegative() {
		return ErrInvalidRBT12
	}

	s.RBT12 = rbt12
	s.EffectiveRate = table.EffectiveRate(rbt12)
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateDIFALRate altera a alíquota de diferencial interestadual
func (s *Settings) UpdateDIFALRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidDIFAL
	}

	s.DIFALRate = rate
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateHomeUF altera a UF da empresa
func (s *Settings) UpdateHomeUF(uf string) error {
	if len(uf) != 2 {
		return ErrInvalidUF
	}

	s.HomeUF = uf
	s.UpdatedAt = time.Now()
	return nil
}

// FiscalParams monta os parâmetros passados ao motor de cálculo
func (s *Settings) FiscalParams() fiscal.Params {
	return fiscal.Params{
		EffectiveRate: s.EffectiveRate,
		DIFALRate:     s.DIFALRate,
		HomeUF:        s.HomeUF,
	}
}
