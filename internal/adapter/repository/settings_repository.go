package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/controle-fiscal/internal/domain/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository implementa a interface settings.Repository
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository cria uma nova instância de SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) settings.Repository {
	return &SettingsRepository{
		db: db,
	}
}

// Get implementa o método Get da interface settings.Repository. Na
// primeira leitura o registro padrão é criado, então o motor sempre
// encontra uma configuração válida.
func (r *SettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	s, err := r.fetch(ctx, conn)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("falha ao buscar configurações fiscais: %w", err)
	}

	s = settings.NewSettings()
	_, err = conn.Exec(ctx, `
		INSERT INTO fiscal_settings (id, rbt12, annex, effective_rate, difal_rate, home_uf, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO NOTHING
	`, s.ID, s.RBT12, s.Annex, s.EffectiveRate, s.DIFALRate, s.HomeUF, s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar configurações padrão: %w", err)
	}

	// Relê para cobrir a corrida em que outra requisição criou o registro
	s, err = r.fetch(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar configurações fiscais: %w", err)
	}

	return s, nil
}

// Save implementa o método Save da interface settings.Repository
func (r *SettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
		INSERT INTO fiscal_settings (id, rbt12, annex, effective_rate, difal_rate, home_uf, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO UPDATE SET
			rbt12 = EXCLUDED.rbt12,
			annex = EXCLUDED.annex,
			effective_rate = EXCLUDED.effective_rate,
			difal_rate = EXCLUDED.difal_rate,
			home_uf = EXCLUDED.home_uf,
			updated_at = EXCLUDED.updated_at
	`, s.ID, s.RBT12, s.Annex, s.EffectiveRate, s.DIFALRate, s.HomeUF, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("falha ao salvar configurações fiscais: %w", err)
	}

	return nil
}

func (r *SettingsRepository) fetch(ctx context.Context, conn *pgxpool.Conn) (*settings.Settings, error) {
	var s settings.Settings
	err := conn.QueryRow(ctx, `
		SELECT id, rbt12, annex, effective_rate, difal_rate, home_uf, updated_at
		FROM fiscal_settings
		LIMIT 1
	`).Scan(&s.ID, &s.RBT12, &s.Annex, &s.EffectiveRate, &s.DIFALRate, &s.HomeUF, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
