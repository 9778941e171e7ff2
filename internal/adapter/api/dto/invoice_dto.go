package dto

import (
	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest representa um item na ingestão de nota fiscal
type InvoiceItemRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name" binding:"required"`
	NCM        string  `json:"ncm"`
	CEST       string  `json:"cest"`
	CFOP       string  `json:"cfop"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalValue float64 `json:"total_value"`
	VICMS      float64 `json:"v_icms"`
	VST        float64 `json:"v_st"`
	VIPI       float64 `json:"v_ipi"`
	VPIS       float64 `json:"v_pis"`
	VCOFINS    float64 `json:"v_cofins"`
}

// InvoiceRequest representa os dados para ingestão de uma nota fiscal
type InvoiceRequest struct {
	Number     string               `json:"number" binding:"required"`
	IssueDate  string               `json:"issue_date"`
	SenderCNPJ string               `json:"sender_cnpj"`
	SenderName string               `json:"sender_name" binding:"required"`
	SenderUF   string               `json:"sender_uf" binding:"required"`
	TotalValue float64              `json:"total_value"`
	VICMS      float64              `json:"v_icms"`
	VST        float64              `json:"v_st"`
	VIPI       float64              `json:"v_ipi"`
	VPIS       float64              `json:"v_pis"`
	VCOFINS    float64              `json:"v_cofins"`
	VFrete     float64              `json:"v_frete"`
	VSeg       float64              `json:"v_seg"`
	VDesc      float64              `json:"v_desc"`
	VOutro     float64              `json:"v_outro"`
	Items      []InvoiceItemRequest `json:"items"`
}

// ToInvoice converte a requisição na entidade de domínio
func (r *InvoiceRequest) ToInvoice() (*invoice.Invoice, error) {
	inv, err := invoice.NewInvoice(
		r.Number,
		r.IssueDate,
		r.SenderCNPJ,
		r.SenderName,
		r.SenderUF,
		decimal.NewFromFloat(r.TotalValue),
	)
	if err != nil {
		return nil, err
	}

	err = inv.SetTaxTotals(
		decimal.NewFromFloat(r.VICMS),
		decimal.NewFromFloat(r.VST),
		decimal.NewFromFloat(r.VIPI),
		decimal.NewFromFloat(r.VPIS),
		decimal.NewFromFloat(r.VCOFINS),
		decimal.NewFromFloat(r.VFrete),
		decimal.NewFromFloat(r.VSeg),
		decimal.NewFromFloat(r.VDesc),
		decimal.NewFromFloat(r.VOutro),
	)
	if err != nil {
		return nil, err
	}

	for _, item := range r.Items {
		err = inv.AddItem(
			item.Code,
			item.Name,
			item.NCM,
			item.CEST,
			item.CFOP,
			decimal.NewFromFloat(item.Quantity),
			decimal.NewFromFloat(item.UnitPrice),
			decimal.NewFromFloat(item.TotalValue),
			decimal.NewFromFloat(item.VICMS),
			decimal.NewFromFloat(item.VST),
			decimal.NewFromFloat(item.VIPI),
			decimal.NewFromFloat(item.VPIS),
			decimal.NewFromFloat(item.VCOFINS),
		)
		if err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// InvoiceItemResponse representa um item de nota nas respostas
type InvoiceItemResponse struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	NCM        string  `json:"ncm"`
	CEST       string  `json:"cest"`
	CFOP       string  `json:"cfop"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalValue float64 `json:"total_value"`
	VICMS      float64 `json:"v_icms"`
	VST        float64 `json:"v_st"`
	VIPI       float64 `json:"v_ipi"`
	VPIS       float64 `json:"v_pis"`
	VCOFINS    float64 `json:"v_cofins"`
}

// InvoiceResponse representa o resumo de uma nota fiscal
type InvoiceResponse struct {
	ID         string  `json:"id"`
	Number     string  `json:"number"`
	Issuer     string  `json:"issuer"`
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	STValue    float64 `json:"st_value"`
	ItemsCount int     `json:"items_count"`
}

// InvoiceDetailResponse representa uma nota fiscal com todos os itens
type InvoiceDetailResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	IssueDate  string                `json:"issue_date"`
	SenderCNPJ string                `json:"sender_cnpj"`
	SenderName string                `json:"sender_name"`
	SenderUF   string                `json:"sender_uf"`
	TotalValue float64               `json:"total_value"`
	VICMS      float64               `json:"v_icms"`
	VST        float64               `json:"v_st"`
	VIPI       float64               `json:"v_ipi"`
	VPIS       float64               `json:"v_pis"`
	VCOFINS    float64               `json:"v_cofins"`
	VFrete     float64               `json:"v_frete"`
	VSeg       float64               `json:"v_seg"`
	VDesc      float64               `json:"v_desc"`
	VOutro     float64               `json:"v_outro"`
	Items      []InvoiceItemResponse `json:"items"`
}

// InvoiceListResponse representa a listagem de notas fiscais
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converte uma entidade para o resumo de resposta
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		Issuer:     inv.SenderName,
		Date:       inv.IssueDate,
		Value:      money(inv.TotalValue),
		STValue:    money(inv.VST),
		ItemsCount: inv.ItemsCount(),
	}
}

// ToInvoiceDetailResponse converte uma entidade para a resposta detalhada
func ToInvoiceDetailResponse(inv *invoice.Invoice) InvoiceDetailResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:         item.ID,
			Code:       item.Code,
			Name:       item.Name,
			NCM:        item.NCM,
			CEST:       fiscal.DisplayCEST(item),
			CFOP:       item.CFOP,
			Quantity:   item.Quantity.InexactFloat64(),
			UnitPrice:  money(item.UnitPrice),
			TotalValue: money(item.TotalValue),
			VICMS:      money(item.VICMS),
			VST:        money(item.VST),
			VIPI:       money(item.VIPI),
			VPIS:       money(item.VPIS),
			VCOFINS:    money(item.VCOFINS),
		})
	}

	return InvoiceDetailResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		IssueDate:  inv.IssueDate,
		SenderCNPJ: inv.SenderCNPJ,
		SenderName: inv.SenderName,
		SenderUF:   inv.SenderUF,
		TotalValue: money(inv.TotalValue),
		VICMS:      money(inv.VICMS),
		VST:        money(inv.VST),
		VIPI:       money(inv.VIPI),
		VPIS:       money(inv.VPIS),
		VCOFINS:    money(inv.VCOFINS),
		VFrete:     money(inv.VFrete),
		VSeg:       money(inv.VSeg),
		VDesc:      money(inv.VDesc),
		VOutro:     money(inv.VOutro),
		Items:      items,
	}
}

// ToInvoiceListResponse converte a listagem de entidades
func ToInvoiceListResponse(invoices []*invoice.Invoice) InvoiceListResponse {
	list := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		list = append(list, ToInvoiceResponse(inv))
	}

	return InvoiceListResponse{Invoices: list}
}

// money arredonda valores monetários apenas na borda da API; o motor
// trabalha sempre com decimais exatos
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
