package analysis

import (
	"context"
	"fmt"

	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/hugohenrick/controle-fiscal/internal/domain/settings"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
	"github.com/shopspring/decimal"
)

// Result é o resultado completo de uma análise fiscal. É recalculado do
// zero a cada requisição e nunca cacheado entre escritas.
type Result struct {
	InconsistenciesCount int
	Findings             []fiscal.Finding
	Totals               fiscal.Totals
	EffectiveRate        decimal.Decimal
}

// Dashboard é o resumo exibido na tela inicial
type Dashboard struct {
	TotalInvoices int64
	TotalValue    decimal.Decimal
	TotalST       decimal.Decimal
	Recent        []*invoice.Invoice
}

// Service orquestra o caminho de leitura da análise fiscal: classificação,
// detecção de inconsistências e projeções. Não dispara enriquecimento.
type Service struct {
	invoiceRepo  invoice.Repository
	settingsRepo settings.Repository
	logger       logger.Logger
}

// NewService cria uma nova instância do serviço de análise
func NewService(invoiceRepo invoice.Repository, settingsRepo settings.Repository, logger logger.Logger) *Service {
	return &Service{
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Analyze monta o resultado da análise sobre o estado mais recente das
// notas e das configurações fiscais
func (s *Service) Analyze(ctx context.Context) (*Result, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar configurações fiscais: %w", err)
	}

	invoices, err := s.invoiceRepo.FindAllWithItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar notas fiscais: %w", err)
	}

	params := cfg.FiscalParams()
	findings := fiscal.Detect(invoices, params)
	totals := fiscal.ProjectAll(invoices, params)

	s.logger.Debug("análise fiscal concluída",
		"notas", len(invoices),
		"inconsistencias", len(findings))

	return &Result{
		InconsistenciesCount: len(findings),
		Findings:             findings,
		Totals:               totals,
		EffectiveRate:        cfg.EffectiveRate,
	}, nil
}

// GetDashboard monta o resumo do dashboard com os totais e as notas mais
// recentes
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	summary, err := s.invoiceRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao calcular totais do dashboard: %w", err)
	}

	recent, err := s.invoiceRepo.FindRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar notas recentes: %w", err)
	}

	return &Dashboard{
		TotalInvoices: summary.TotalInvoices,
		TotalValue:    summary.TotalValue,
		TotalST:       summary.TotalST,
		Recent:        recent,
	}, nil
}
