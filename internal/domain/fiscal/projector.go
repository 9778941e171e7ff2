package fiscal

import (
	"strings"

	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// Params são os parâmetros fiscais vigentes, passados explicitamente para
// manter o cálculo puro e testável
type Params struct {
	// EffectiveRate é a alíquota efetiva do Simples Nacional derivada do RBT12
	EffectiveRate decimal.Decimal
	// DIFALRate é a alíquota do diferencial de alíquota interestadual
	DIFALRate decimal.Decimal
	// HomeUF é a UF da empresa; notas de outras UFs são compras interestaduais
	HomeUF string
}

// Projection traz as duas projeções independentes de imposto de um item
type Projection struct {
	// PurchaseTax é o ST/DIFAL estimado a recolher na entrada
	PurchaseTax decimal.Decimal
	// SaleTax é o DAS estimado sobre a revenda
	SaleTax decimal.Decimal
}

// Totals agrega as projeções de todos os itens em escopo
type Totals struct {
	Purchase decimal.Decimal
	Sale     decimal.Decimal
	Total    decimal.Decimal
}

// Interstate indica se a nota é uma compra de fora da UF da empresa
func Interstate(inv *invoice.Invoice, homeUF string) bool {
	return !strings.EqualFold(strings.TrimSpace(inv.SenderUF), strings.TrimSpace(homeUF))
}

// ProjectItem calcula as projeções de compra e venda de um item.
//
// Compra: só para item ST que entrou de outra UF sem ST recolhido na
// origem; estima valor * DIFAL menos o ICMS já destacado, nunca negativo.
//
// Venda: só para item que não é ST (item ST não paga DAS de novo na
// revenda); estima valor * alíquota efetiva.
func ProjectItem(inv *invoice.Invoice, item invoice.Item, p Params) Projection {
	var proj Projection
	proj.PurchaseTax = decimal.Zero
	proj.SaleTax = decimal.Zero

	if Interstate(inv, p.HomeUF) && item.VST.IsZero() && IsST(item) {
		purchase := item.TotalValue.Mul(p.DIFALRate).Sub(item.VICMS)
		if purchase.IsPositive() {
			proj.PurchaseTax = purchase
		}
	}

	if !IsST(item) {
		proj.SaleTax = item.TotalValue.Mul(p.EffectiveRate)
	}

	return proj
}

// ProjectAll soma as projeções de todos os itens de todas as notas,
// sempre do zero: a alíquota efetiva pode mudar entre requisições
func ProjectAll(invoices []*invoice.Invoice, p Params) Totals {
	totals := Totals{
		Purchase: decimal.Zero,
		Sale:     decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, inv := range invoices {
		for _, item := range inv.Items {
			proj := ProjectItem(inv, item, p)
			totals.Purchase = totals.Purchase.Add(proj.PurchaseTax)
			totals.Sale = totals.Sale.Add(proj.SaleTax)
		}
	}

	totals.Total = totals.Purchase.Add(totals.Sale)
	return totals
}
