package dto

import (
	"github.com/hugohenrick/controle-fiscal/internal/domain/analysis"
)

// DashboardResponse representa o resumo exibido na tela inicial
type DashboardResponse struct {
	TotalInvoices  int64             `json:"total_invoices"`
	TotalValue     float64           `json:"total_value"`
	TotalICMSST    float64           `json:"total_icms_st"`
	RecentInvoices []InvoiceResponse `json:"recent_invoices"`
}

// ToDashboardResponse converte o resumo do serviço de análise
func ToDashboardResponse(d *analysis.Dashboard) DashboardResponse {
	recent := make([]InvoiceResponse, 0, len(d.Recent))
	for _, inv := range d.Recent {
		recent = append(recent, ToInvoiceResponse(inv))
	}

	return DashboardResponse{
		TotalInvoices:  d.TotalInvoices,
		TotalValue:     money(d.TotalValue),
		TotalICMSST:    money(d.TotalST),
		RecentInvoices: recent,
	}
}
