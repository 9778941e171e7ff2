package dto

import (
	"github.com/hugohenrick/controle-fiscal/internal/domain/analysis"
	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
)

// AnalysisItemResponse representa um item sinalizado pela análise fiscal
type AnalysisItemResponse struct {
	InvoiceID            string  `json:"invoice_id"`
	InvoiceNumber        string  `json:"invoice_number"`
	Issuer               string  `json:"issuer"`
	SenderUF             string  `json:"sender_uf"`
	ItemCode             string  `json:"item_code"`
	ItemName             string  `json:"item_name"`
	NCM                  string  `json:"ncm"`
	CEST                 string  `json:"cest"`
	CFOP                 string  `json:"cfop"`
	TotalValue           float64 `json:"total_value"`
	VICMS                float64 `json:"v_icms"`
	VST                  float64 `json:"v_st"`
	IsST                 bool    `json:"is_st"`
	CESTMissing          bool    `json:"cest_missing"`
	Alert                string  `json:"alert"`
	ProjectedPurchaseTax float64 `json:"projected_purchase_tax"`
	ProjectedSaleTax     float64 `json:"projected_sale_tax"`
}

// AnalysisTotalsResponse representa as projeções agregadas
type AnalysisTotalsResponse struct {
	PurchaseTax float64 `json:"purchase_tax"`
	SaleTax     float64 `json:"sale_tax"`
	Total       float64 `json:"total"`
}

// AnalysisResponse representa o resultado completo da análise fiscal
type AnalysisResponse struct {
	InconsistenciesCount int                    `json:"inconsistencies_count"`
	EffectiveRate        float64                `json:"effective_rate"`
	Totals               AnalysisTotalsResponse `json:"totals"`
	Items                []AnalysisItemResponse `json:"items"`
}

// ToAnalysisResponse converte o resultado do serviço de análise
func ToAnalysisResponse(r *analysis.Result) AnalysisResponse {
	items := make([]AnalysisItemResponse, 0, len(r.Findings))
	for _, f := range r.Findings {
		items = append(items, AnalysisItemResponse{
			InvoiceID:            f.Invoice.ID,
			InvoiceNumber:        f.Invoice.Number,
			Issuer:               f.Invoice.SenderName,
			SenderUF:             f.Invoice.SenderUF,
			ItemCode:             f.Item.Code,
			ItemName:             f.Item.Name,
			NCM:                  f.Item.NCM,
			CEST:                 fiscal.DisplayCEST(f.Item),
			CFOP:                 f.Item.CFOP,
			TotalValue:           money(f.Item.TotalValue),
			VICMS:                money(f.Item.VICMS),
			VST:                  money(f.Item.VST),
			IsST:                 f.IsST,
			CESTMissing:          f.Missing,
			Alert:                f.Alert,
			ProjectedPurchaseTax: money(f.Projection.PurchaseTax),
			ProjectedSaleTax:     money(f.Projection.SaleTax),
		})
	}

	return AnalysisResponse{
		InconsistenciesCount: r.InconsistenciesCount,
		EffectiveRate:        r.EffectiveRate.InexactFloat64(),
		Totals: AnalysisTotalsResponse{
			PurchaseTax: money(r.Totals.Purchase),
			SaleTax:     money(r.Totals.Sale),
			Total:       money(r.Totals.Total),
		},
		Items: items,
	}
}

// SearchCESTResponse representa o resultado do enriquecimento de CEST
type SearchCESTResponse struct {
	Success      bool  `json:"success"`
	UpdatedCount int64 `json:"updated_count"`
}
