package invoice

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CESTNotInformed é o marcador de CEST ausente usado pela fonte dos dados
// e nas respostas da API; internamente o CEST ausente é a string vazia
const CESTNotInformed = "NÃO INFORMADO"

// Erros de validação das notas fiscais
var (
	ErrNumberRequired     = errors.New("número da nota fiscal é obrigatório")
	ErrSenderNameRequired = errors.New("nome do emitente é obrigatório")
	ErrSenderUFRequired   = errors.New("UF do emitente é obrigatória")
	ErrNegativeAmount     = errors.New("valores monetários não podem ser negativos")
	ErrItemNameRequired   = errors.New("nome do produto é obrigatório")
	ErrNotFound           = errors.New("nota fiscal não encontrada")
)

// Invoice representa uma nota fiscal de entrada já estruturada
// (o parse do XML acontece fora deste serviço)
type Invoice struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	IssueDate  string `json:"issue_date"`
	SenderCNPJ string `json:"sender_cnpj"`
	SenderName string `json:"sender_name"`
	SenderUF   string `json:"sender_uf"`

	TotalValue decimal.Decimal `json:"total_value"`

	// Totais de impostos da nota
	VICMS   decimal.Decimal `json:"v_icms"`
	VST     decimal.Decimal `json:"v_st"`
	VIPI    decimal.Decimal `json:"v_ipi"`
	VPIS    decimal.Decimal `json:"v_pis"`
	VCOFINS decimal.Decimal `json:"v_cofins"`
	VFrete  decimal.Decimal `json:"v_frete"`
	VSeg    decimal.Decimal `json:"v_seg"`
	VDesc   decimal.Decimal `json:"v_desc"`
	VOutro  decimal.Decimal `json:"v_outro"`

	Items []Item `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item representa um item de uma nota fiscal com seus impostos destacados.
// CEST vazio significa "NÃO INFORMADO" e pode ser preenchido depois pelo
// enriquecimento.
type Item struct {
	ID        string `json:"id"`
	InvoiceID string `json:"invoice_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	NCM       string `json:"ncm"`
	CEST      string `json:"cest"`
	CFOP      string `json:"cfop"`

	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`

	// Impostos do item; zero significa "não incide nesta nota"
	VICMS   decimal.Decimal `json:"v_icms"`
	VST     decimal.Decimal `json:"v_st"`
	VIPI    decimal.Decimal `json:"v_ipi"`
	VPIS    decimal.Decimal `json:"v_pis"`
	VCOFINS decimal.Decimal `json:"v_cofins"`
}

// NewInvoice cria uma nova nota fiscal
func NewInvoice(number, issueDate, senderCNPJ, senderName, senderUF string, totalValue decimal.Decimal) (*Invoice, error) {
	if number == "" {
		return nil, ErrNumberRequired
	}
	if senderName == "" {
		return nil, ErrSenderNameRequired
	}
	if senderUF == "" {
		return nil, ErrSenderUFRequired
	}
	if totalValue.IsNegative() {
		return nil, ErrNegativeAmount
	}

	now := time.Now()
	return &Invoice{
		ID:         uuid.New().String(),
		Number:     number,
		IssueDate:  issueDate,
		SenderCNPJ: senderCNPJ,
		SenderName: senderName,
		SenderUF:   senderUF,
		TotalValue: totalValue,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// SetTaxTotals define os totais de impostos da nota
func (i *Invoice) SetTaxTotals(vICMS, vST, vIPI, vPIS, vCOFINS, vFrete, vSeg, vDesc, vOutro decimal.Decimal) error {
	for _, v := range []decimal.Decimal{vICMS, vST, vIPI, vPIS, vCOFINS, vFrete, vSeg, vDesc, vOutro} {
		if v.IsNegative() {
			return ErrNegativeAmount
		}
	}

	i.VICMS = vICMS
	i.VST = vST
	i.VIPI = vIPI
	i.VPIS = vPIS
	i.VCOFINS = vCOFINS
	i.VFrete = vFrete
	i.VSeg = vSeg
	i.VDesc = vDesc
	i.VOutro = vOutro
	i.UpdatedAt = time.Now()
	return nil
}

// AddItem adiciona um item à nota, preservando a ordem de ingestão
func (i *Invoice) AddItem(code, name, ncm, cest, cfop string, quantity, unitPrice, totalValue, vICMS, vST, vIPI, vPIS, vCOFINS decimal.Decimal) error {
	if name == "" {
		return ErrItemNameRequired
	}
	for _, v := range []decimal.Decimal{quantity, unitPrice, totalValue, vICMS, vST, vIPI, vPIS, vCOFINS} {
		if v.IsNegative() {
			return ErrNegativeAmount
		}
	}

	// O marcador de ausência vindo da fonte é normalizado para vazio, que é
	// a única forma de CEST ausente persistida
	cest = strings.TrimSpace(cest)
	if strings.EqualFold(cest, CESTNotInformed) {
		cest = ""
	}

	i.Items = append(i.Items, Item{
		ID:         uuid.New().String(),
		InvoiceID:  i.ID,
		Code:       code,
		Name:       name,
		NCM:        ncm,
		CEST:       cest,
		CFOP:       cfop,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalValue: totalValue,
		VICMS:      vICMS,
		VST:        vST,
		VIPI:       vIPI,
		VPIS:       vPIS,
		VCOFINS:    vCOFINS,
	})
	i.UpdatedAt = time.Now()
	return nil
}

// ItemsCount retorna a quantidade de itens da nota
func (i *Invoice) ItemsCount() int {
	return len(i.Items)
}
