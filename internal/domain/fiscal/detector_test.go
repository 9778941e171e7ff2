package fiscal

import (
	"testing"

	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectItemSTWithoutCEST(t *testing.T) {
	// NCM informado, CEST ausente e ICMS-ST destacado: item ST sem CEST
	item := invoice.Item{NCM: "12345678", CEST: "", VST: decimal.NewFromInt(50)}

	alert, flagged := DetectItem(item, Projection{PurchaseTax: decimal.Zero, SaleTax: decimal.Zero})
	require.True(t, flagged)
	assert.Equal(t, AlertMissingCEST, alert)
}

func TestDetectItemPurchaseProjection(t *testing.T) {
	item := invoice.Item{NCM: "12345678", CEST: "1706200", VST: decimal.Zero}

	alert, flagged := DetectItem(item, Projection{PurchaseTax: decimal.NewFromInt(120), SaleTax: decimal.Zero})
	require.True(t, flagged)
	assert.Equal(t, AlertInterstateNoST, alert)
}

func TestDetectItemBothAlerts(t *testing.T) {
	item := invoice.Item{NCM: "12345678", CEST: "", VST: decimal.NewFromInt(10)}

	alert, flagged := DetectItem(item, Projection{PurchaseTax: decimal.NewFromInt(120)})
	require.True(t, flagged)
	assert.Equal(t, AlertInterstateNoST+" | "+AlertMissingCEST, alert)
}

func TestDetectItemClean(t *testing.T) {
	item := invoice.Item{NCM: "12345678", CEST: "1706200", VST: decimal.NewFromInt(10)}

	_, flagged := DetectItem(item, Projection{PurchaseTax: decimal.Zero, SaleTax: decimal.Zero})
	assert.False(t, flagged)
}

func TestDetectDeterministicText(t *testing.T) {
	item := invoice.Item{NCM: "12345678", CEST: "", VST: decimal.NewFromInt(50)}
	proj := Projection{PurchaseTax: decimal.NewFromInt(1)}

	first, _ := DetectItem(item, proj)
	second, _ := DetectItem(item, proj)
	assert.Equal(t, first, second)
}

func TestDetectPreservesIngestionOrder(t *testing.T) {
	inv := &invoice.Invoice{SenderUF: "SP"}
	inv.Items = []invoice.Item{
		{Name: "Dipirona", NCM: "30049099", CEST: "", VST: decimal.NewFromInt(5)},
		{Name: "Shampoo", NCM: "33051000", CEST: "1706200", VST: decimal.NewFromInt(3)},
		{Name: "Sabonete", NCM: "34011190", CEST: "", VST: decimal.NewFromInt(2)},
	}

	findings := Detect([]*invoice.Invoice{inv}, defaultParams())
	require.Len(t, findings, 2)
	assert.Equal(t, "Dipirona", findings[0].Item.Name)
	assert.Equal(t, "Sabonete", findings[1].Item.Name)
}

func TestDetectSTWithoutCESTAlwaysFlagged(t *testing.T) {
	// is_st com cest_missing implica item sinalizado, sem descartes
	inv := &invoice.Invoice{SenderUF: "SP"}
	inv.Items = []invoice.Item{
		{Name: "A", NCM: "11111111", CEST: "", VST: decimal.NewFromFloat(0.01)},
		{Name: "B", NCM: "22222222", CEST: "NÃO INFORMADO", VST: decimal.NewFromInt(9)},
	}

	findings := Detect([]*invoice.Invoice{inv}, defaultParams())
	assert.Len(t, findings, 2)
	for _, f := range findings {
		assert.True(t, f.IsST)
		assert.True(t, f.Missing)
		assert.Contains(t, f.Alert, AlertMissingCEST)
	}
}
