package dto

import (
	"github.com/hugohenrick/controle-fiscal/internal/domain/settings"
)

// SettingsRequest representa os dados para atualizar as configurações
// fiscais. Campos omitidos mantêm o valor atual.
type SettingsRequest struct {
	RBT12     *float64 `json:"rbt12"`
	DIFALRate *float64 `json:"difal_rate"`
	HomeUF    *string  `json:"home_uf"`
}

// SettingsResponse representa as configurações fiscais vigentes
type SettingsResponse struct {
	RBT12         float64 `json:"rbt12"`
	Annex         string  `json:"annex"`
	EffectiveRate float64 `json:"effective_rate"`
	DIFALRate     float64 `json:"difal_rate"`
	HomeUF        string  `json:"home_uf"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToSettingsResponse converte a entidade de configurações
func ToSettingsResponse(s *settings.Settings) SettingsResponse {
	return SettingsResponse{
		RBT12:         money(s.RBT12),
		Annex:         s.Annex,
		EffectiveRate: s.EffectiveRate.InexactFloat64(),
		DIFALRate:     s.DIFALRate.InexactFloat64(),
		HomeUF:        s.HomeUF,
		UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
