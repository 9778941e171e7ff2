package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hugohenrick/controle-fiscal/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	// Criar conexão com o banco
	db, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Erro ao conectar com o banco de dados: %v", err)
	}

	// Executar as migrações
	if err := runMigrations(db); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}

func runMigrations(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("erro ao obter conexão: %w", err)
	}
	defer conn.Release()

	// Verificar se a tabela de migrações existe
	if err := createMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrações: %w", err)
	}

	// Verificar última migração executada
	lastMigration, err := getLastMigration(ctx, conn)
	if err != nil {
		return fmt.Errorf("erro ao verificar última migração: %w", err)
	}

	log.Printf("Última migração executada: %s", lastMigration)

	// Lista de migrações
	migrations := []migration{
		{
			version: "001_create_invoices",
			up: `
				-- Tabela de notas fiscais
				CREATE TABLE IF NOT EXISTS invoices (
					id UUID PRIMARY KEY,
					number VARCHAR(50) NOT NULL,
					issue_date VARCHAR(30) NOT NULL DEFAULT '',
					sender_cnpj VARCHAR(20) NOT NULL DEFAULT '',
					sender_name VARCHAR(255) NOT NULL,
					sender_uf VARCHAR(2) NOT NULL,
					total_value DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_icms DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_st DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_ipi DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_pis DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_cofins DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_frete DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_seg DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_desc DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_outro DECIMAL(15,2) NOT NULL DEFAULT 0,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_invoices_number ON invoices(number);
				CREATE INDEX IF NOT EXISTS idx_invoices_sender_uf ON invoices(sender_uf);
				CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices(created_at);
			`,
		},
		{
			version: "002_create_invoice_items",
			up: `
				-- Tabela de itens das notas fiscais
				CREATE TABLE IF NOT EXISTS invoice_items (
					id UUID PRIMARY KEY,
					invoice_id UUID NOT NULL REFERENCES invoices(id),
					position INTEGER NOT NULL DEFAULT 0,
					code VARCHAR(60) NOT NULL DEFAULT '',
					name VARCHAR(255) NOT NULL,
					ncm VARCHAR(10) NOT NULL DEFAULT '',
					cest VARCHAR(10) NOT NULL DEFAULT '',
					cfop VARCHAR(10) NOT NULL DEFAULT '',
					quantity DECIMAL(15,4) NOT NULL DEFAULT 0,
					unit_price DECIMAL(15,4) NOT NULL DEFAULT 0,
					total_value DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_icms DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_st DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_ipi DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_pis DECIMAL(15,2) NOT NULL DEFAULT 0,
					v_cofins DECIMAL(15,2) NOT NULL DEFAULT 0
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice_id ON invoice_items(invoice_id);
				CREATE INDEX IF NOT EXISTS idx_invoice_items_ncm ON invoice_items(ncm);
				CREATE INDEX IF NOT EXISTS idx_invoice_items_cest ON invoice_items(cest);
			`,
		},
		{
			version: "003_create_fiscal_settings",
			up: `
				-- Tabela de configurações fiscais (registro único)
				CREATE TABLE IF NOT EXISTS fiscal_settings (
					id UUID PRIMARY KEY,
					singleton BOOLEAN NOT NULL DEFAULT true UNIQUE CHECK (singleton),
					rbt12 DECIMAL(15,2) NOT NULL DEFAULT 0,
					annex VARCHAR(20) NOT NULL DEFAULT 'Anexo I',
					effective_rate DECIMAL(10,6) NOT NULL DEFAULT 0,
					difal_rate DECIMAL(10,6) NOT NULL DEFAULT 0.12,
					home_uf VARCHAR(2) NOT NULL DEFAULT 'SP',
					updated_at TIMESTAMP NOT NULL
				);
			`,
		},
	}

	// Executar migrações pendentes
	for _, m := range migrations {
		if m.version <= lastMigration {
			log.Printf("Pulando migração %s (já executada)", m.version)
			continue
		}

		log.Printf("Executando migração %s", m.version)

		// Iniciar transação
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("erro ao iniciar transação: %w", err)
		}

		// Executar migração
		_, err = tx.Exec(ctx, m.up)
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao fazer rollback: %v", rbErr)
			}
			return fmt.Errorf("erro ao executar migração %s: %w", m.version, err)
		}

		// Registrar migração executada
		_, err = tx.Exec(ctx,
			"INSERT INTO migrations (version, executed_at) VALUES ($1, $2)",
			m.version, time.Now())
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao fazer rollback: %v", rbErr)
			}
			return fmt.Errorf("erro ao registrar migração %s: %w", m.version, err)
		}

		// Commit
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("erro ao fazer commit da migração %s: %w", m.version, err)
		}

		log.Printf("Migração %s executada com sucesso", m.version)
	}

	return nil
}

func createMigrationsTable(ctx context.Context, conn *pgxpool.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(100) PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL
		)
	`
	_, err := conn.Exec(ctx, query)
	return err
}

func getLastMigration(ctx context.Context, conn *pgxpool.Conn) (string, error) {
	var version string
	err := conn.QueryRow(ctx,
		"SELECT version FROM migrations ORDER BY executed_at DESC LIMIT 1").Scan(&version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return version, nil
}

type migration struct {
	version string
	up      string
}
