package fiscal

import (
	"strings"

	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
)

// Textos dos alertas fiscais exibidos ao contador
const (
	AlertMissingCEST    = "CEST não informado"
	AlertInterstateNoST = "Imposto a recolher (Compra Interestadual sem ST)"
)

// Finding é um item sinalizado pela análise, com o alerta e as projeções
type Finding struct {
	Item       invoice.Item
	Invoice    *invoice.Invoice
	Alert      string
	IsST       bool
	Missing    bool
	Projection Projection
}

// DetectItem avalia um item e devolve o alerta correspondente, se houver.
// Um item é sinalizado quando é ST sem CEST informado ou quando há
// projeção de imposto de compra a recolher; os dois alertas podem ocorrer
// juntos. O texto é determinístico para a mesma entrada.
func DetectItem(item invoice.Item, proj Projection) (string, bool) {
	var alerts []string

	if proj.PurchaseTax.IsPositive() {
		alerts = append(alerts, AlertInterstateNoST)
	}
	if IsST(item) && CESTMissing(item) {
		alerts = append(alerts, AlertMissingCEST)
	}

	if len(alerts) == 0 {
		return "", false
	}
	return strings.Join(alerts, " | "), true
}

// Detect percorre as notas na ordem de ingestão e devolve os itens
// sinalizados, sem reordenação por severidade
func Detect(invoices []*invoice.Invoice, p Params) []Finding {
	findings := []Finding{}

	for _, inv := range invoices {
		for _, item := range inv.Items {
			proj := ProjectItem(inv, item, p)
			alert, flagged := DetectItem(item, proj)
			if !flagged {
				continue
			}
			findings = append(findings, Finding{
				Item:       item,
				Invoice:    inv,
				Alert:      alert,
				IsST:       IsST(item),
				Missing:    CESTMissing(item),
				Projection: proj,
			})
		}
	}

	return findings
}
