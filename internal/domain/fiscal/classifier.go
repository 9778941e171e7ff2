package fiscal

import (
	"strings"

	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// CESTNotInformed é o valor exibido quando o item não tem CEST
const CESTNotInformed = invoice.CESTNotInformed

// IsST indica se o item está sujeito à substituição tributária. Tanto o
// ICMS-ST destacado quanto a presença de CEST sinalizam o regime de forma
// independente; sem nenhum dos dois o item é tratado como tributado
// integralmente.
func IsST(item invoice.Item) bool {
	return item.VST.GreaterThan(decimal.Zero) || !CESTMissing(item)
}

// CESTMissing indica se o item está sem CEST informado
func CESTMissing(item invoice.Item) bool {
	cest := strings.TrimSpace(item.CEST)
	return cest == "" || strings.EqualFold(cest, CESTNotInformed)
}

// DisplayCEST retorna o CEST do item ou o marcador de ausência
func DisplayCEST(item invoice.Item) string {
	if CESTMissing(item) {
		return CESTNotInformed
	}
	return strings.TrimSpace(item.CEST)
}
