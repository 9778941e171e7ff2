package fiscal

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidTable indica uma tabela de faixas mal construída
var ErrInvalidTable = errors.New("tabela de faixas inválida: limites devem ser crescentes")

// Bracket representa uma faixa da tabela progressiva do Simples Nacional.
// A última faixa da tabela é aberta: vale para qualquer RBT12 acima do
// penúltimo limite.
type Bracket struct {
	UpperBound  decimal.Decimal
	NominalRate decimal.Decimal
	Deduction   decimal.Decimal
}

// RateTable é a tabela progressiva usada para calcular a alíquota efetiva
type RateTable struct {
	brackets []Bracket
}

// NewRateTable cria uma tabela a partir das faixas, validando que os
// limites são estritamente crescentes
func NewRateTable(brackets []Bracket) (RateTable, error) {
	if len(brackets) == 0 {
		return RateTable{}, ErrInvalidTable
	}
	for i := 1; i < len(brackets); i++ {
		if !brackets[i].UpperBound.GreaterThan(brackets[i-1].UpperBound) {
			return RateTable{}, ErrInvalidTable
		}
	}
	return RateTable{brackets: brackets}, nil
}

// AnexoI retorna a tabela do Anexo I (comércio) do Simples Nacional
func AnexoI() RateTable {
	return RateTable{brackets: []Bracket{
		{UpperBound: decimal.NewFromInt(180000), NominalRate: decimal.NewFromFloat(0.04), Deduction: decimal.Zero},
		{UpperBound: decimal.NewFromInt(360000), NominalRate: decimal.NewFromFloat(0.073), Deduction: decimal.NewFromInt(5940)},
		{UpperBound: decimal.NewFromInt(720000), NominalRate: decimal.NewFromFloat(0.095), Deduction: decimal.NewFromInt(13860)},
		{UpperBound: decimal.NewFromInt(1800000), NominalRate: decimal.NewFromFloat(0.107), Deduction: decimal.NewFromInt(22500)},
		{UpperBound: decimal.NewFromInt(3600000), NominalRate: decimal.NewFromFloat(0.143), Deduction: decimal.NewFromInt(87300)},
		{UpperBound: decimal.NewFromInt(4800000), NominalRate: decimal.NewFromFloat(0.19), Deduction: decimal.NewFromInt(378000)},
	}}
}

// FindBracket seleciona a primeira faixa cujo limite superior é maior ou
// igual ao RBT12; acima de todos os limites vale a última faixa
func (t RateTable) FindBracket(rbt12 decimal.Decimal) Bracket {
	for _, b := range t.brackets {
		if rbt12.LessThanOrEqual(b.UpperBound) {
			return b
		}
	}
	return t.brackets[len(t.brackets)-1]
}

// EffectiveRate calcula a alíquota efetiva para o RBT12 informado:
// (RBT12 * alíquota nominal - parcela a deduzir) / RBT12, nunca negativa.
// Para RBT12 zero a alíquota efetiva é definida como zero.
func (t RateTable) EffectiveRate(rbt12 decimal.Decimal) decimal.Decimal {
	if rbt12.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	b := t.FindBracket(rbt12)
	rate := rbt12.Mul(b.NominalRate).Sub(b.Deduction).Div(rbt12)
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// MaxNominalRate retorna a maior alíquota nominal da tabela
func (t RateTable) MaxNominalRate() decimal.Decimal {
	max := decimal.Zero
	for _, b := range t.brackets {
		if b.NominalRate.GreaterThan(max) {
			max = b.NominalRate
		}
	}
	return max
}
