package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
)

// ErrSourceUnavailable indica que a fonte externa falhou para o lote
// inteiro; difere de falhas pontuais por NCM, que são toleradas
var ErrSourceUnavailable = errors.New("fonte externa de consulta de CEST indisponível")

// Lookup define o contrato da fonte externa de consulta de CEST por NCM.
// found=false com err=nil significa NCM sem correspondência; err não nulo
// significa falha de transporte.
type Lookup interface {
	CESTByNCM(ctx context.Context, ncm string) (cest string, found bool, err error)
}

// Result é o resultado de uma rodada de enriquecimento
type Result struct {
	Success      bool  `json:"success"`
	UpdatedCount int64 `json:"updated_count"`
}

const (
	defaultMaxConcurrent = 5
	defaultLookupTimeout = 10 * time.Second
)

// Service preenche em lote os códigos CEST ausentes consultando a fonte
// externa uma única vez por NCM distinto
type Service struct {
	invoiceRepo   invoice.Repository
	lookup        Lookup
	logger        logger.Logger
	maxConcurrent int
	lookupTimeout time.Duration
}

// NewService cria uma nova instância do serviço de enriquecimento
func NewService(invoiceRepo invoice.Repository, lookup Lookup, logger logger.Logger) *Service {
	return &Service{
		invoiceRepo:   invoiceRepo,
		lookup:        lookup,
		logger:        logger,
		maxConcurrent: defaultMaxConcurrent,
		lookupTimeout: defaultLookupTimeout,
	}
}

// WithLimits ajusta a concorrência máxima e o timeout por consulta
func (s *Service) WithLimits(maxConcurrent int, lookupTimeout time.Duration) *Service {
	if maxConcurrent > 0 {
		s.maxConcurrent = maxConcurrent
	}
	if lookupTimeout > 0 {
		s.lookupTimeout = lookupTimeout
	}
	return s
}

// Run consulta a fonte externa para cada NCM distinto dos itens sem CEST e
// aplica os códigos encontrados. Falha pontual de um NCM (timeout, sem
// correspondência, resposta malformada) não aborta o lote; somente a
// indisponibilidade sistêmica da fonte é propagada como erro.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	items, err := s.invoiceRepo.FindItemsWithoutCEST(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar itens sem CEST: %w", err)
	}

	ncms := distinctNCMs(items)
	if len(ncms) == 0 {
		return &Result{Success: true, UpdatedCount: 0}, nil
	}

	s.logger.Info("iniciando enriquecimento de CEST", "ncms", len(ncms), "itens", len(items))

	found := s.lookupAll(ctx, ncms)

	// Todos os NCMs falharam por erro de transporte: fonte fora do ar
	if len(found.codes) == 0 && found.transportFailures == len(ncms) {
		s.logger.Error("fonte de CEST indisponível para o lote inteiro", "ncms", len(ncms))
		return &Result{Success: false, UpdatedCount: 0}, ErrSourceUnavailable
	}

	var updated int64
	for _, ncm := range ncms {
		cest, ok := found.codes[ncm]
		if !ok {
			continue
		}

		// Uma única atualização condicional por NCM: aplica a todos os
		// irmãos ainda sem CEST, o que torna a rodada idempotente
		count, err := s.invoiceRepo.UpdateCESTByNCM(ctx, ncm, cest)
		if err != nil {
			return nil, fmt.Errorf("falha ao aplicar CEST do NCM %s: %w", ncm, err)
		}
		updated += count
	}

	s.logger.Info("enriquecimento de CEST concluído", "atualizados", updated)
	return &Result{Success: true, UpdatedCount: updated}, nil
}

type lookupOutcome struct {
	codes             map[string]string
	transportFailures int
}

// lookupAll consulta os NCMs com concorrência limitada e timeout por
// consulta; timeout é tratado como "sem correspondência" para aquele NCM
func (s *Service) lookupAll(ctx context.Context, ncms []string) lookupOutcome {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		outcome = lookupOutcome{codes: make(map[string]string)}
	)

	sem := make(chan struct{}, s.maxConcurrent)

	for _, ncm := range ncms {
		wg.Add(1)
		sem <- struct{}{}

		go func(ncm string) {
			defer wg.Done()
			defer func() { <-sem }()

			lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
			defer cancel()

			cest, found, err := s.lookup.CESTByNCM(lookupCtx, ncm)
			mu.Lock()
			defer mu.Unlock()

			switch {
			case errors.Is(err, context.DeadlineExceeded):
				// Timeout vale como "sem correspondência", nunca fatal
				s.logger.Warn("timeout na consulta de CEST", "ncm", ncm)
			case err != nil:
				s.logger.Warn("falha de transporte na consulta de CEST", "ncm", ncm, "error", err.Error())
				outcome.transportFailures++
			case found:
				outcome.codes[ncm] = cest
			}
		}(ncm)
	}

	wg.Wait()
	return outcome
}

// distinctNCMs extrai os NCMs distintos preservando a ordem de ingestão
func distinctNCMs(items []invoice.Item) []string {
	seen := make(map[string]bool)
	var ncms []string
	for _, item := range items {
		if item.NCM == "" || seen[item.NCM] {
			continue
		}
		seen[item.NCM] = true
		ncms = append(ncms, item.NCM)
	}
	return ncms
}
