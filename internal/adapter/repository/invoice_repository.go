package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceRepository implementa a interface invoice.Repository
type InvoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository cria uma nova instância de InvoiceRepository
func NewInvoiceRepository(db *pgxpool.Pool) invoice.Repository {
	return &InvoiceRepository{
		db: db,
	}
}

// Create implementa o método Create da interface invoice.Repository.
// A nota e seus itens são gravados em uma única transação.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (
			id, number, issue_date, sender_cnpj, sender_name, sender_uf,
			total_value, v_icms, v_st, v_ipi, v_pis, v_cofins,
			v_frete, v_seg, v_desc, v_outro,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`,
		inv.ID, inv.Number, inv.IssueDate, inv.SenderCNPJ, inv.SenderName, inv.SenderUF,
		inv.TotalValue, inv.VICMS, inv.VST, inv.VIPI, inv.VPIS, inv.VCOFINS,
		inv.VFrete, inv.VSeg, inv.VDesc, inv.VOutro,
		inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("falha ao inserir nota fiscal: %w", err)
	}

	for pos, item := range inv.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (
				id, invoice_id, position, code, name, ncm, cest, cfop,
				quantity, unit_price, total_value,
				v_icms, v_st, v_ipi, v_pis, v_cofins
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`,
			item.ID, inv.ID, pos, item.Code, item.Name, item.NCM, item.CEST, item.CFOP,
			item.Quantity, item.UnitPrice, item.TotalValue,
			item.VICMS, item.VST, item.VIPI, item.VPIS, item.VCOFINS)
		if err != nil {
			return fmt.Errorf("falha ao inserir item da nota: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}

	return nil
}

// FindByID implementa o método FindByID da interface invoice.Repository
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	var inv invoice.Invoice
	err = conn.QueryRow(ctx, `
		SELECT id, number, issue_date, sender_cnpj, sender_name, sender_uf,
			total_value, v_icms, v_st, v_ipi, v_pis, v_cofins,
			v_frete, v_seg, v_desc, v_outro,
			created_at, updated_at
		FROM invoices
		WHERE id = $1
	`, id).Scan(
		&inv.ID, &inv.Number, &inv.IssueDate, &inv.SenderCNPJ, &inv.SenderName, &inv.SenderUF,
		&inv.TotalValue, &inv.VICMS, &inv.VST, &inv.VIPI, &inv.VPIS, &inv.VCOFINS,
		&inv.VFrete, &inv.VSeg, &inv.VDesc, &inv.VOutro,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar nota fiscal: %w", err)
	}

	items, err := r.loadItems(ctx, conn, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Items = items[inv.ID]

	return &inv, nil
}

// FindAll implementa o método FindAll da interface invoice.Repository
func (r *InvoiceRepository) FindAll(ctx context.Context, limit, offset int) ([]*invoice.Invoice, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	return r.query(ctx, `
		SELECT id, number, issue_date, sender_cnpj, sender_name, sender_uf,
			total_value, v_icms, v_st, v_ipi, v_pis, v_cofins,
			v_frete, v_seg, v_desc, v_outro,
			created_at, updated_at
		FROM invoices
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

// FindAllWithItems implementa o método FindAllWithItems da interface
// invoice.Repository, na ordem de ingestão
func (r *InvoiceRepository) FindAllWithItems(ctx context.Context) ([]*invoice.Invoice, error) {
	return r.query(ctx, `
		SELECT id, number, issue_date, sender_cnpj, sender_name, sender_uf,
			total_value, v_icms, v_st, v_ipi, v_pis, v_cofins,
			v_frete, v_seg, v_desc, v_outro,
			created_at, updated_at
		FROM invoices
		ORDER BY created_at
	`)
}

// FindRecent implementa o método FindRecent da interface invoice.Repository
func (r *InvoiceRepository) FindRecent(ctx context.Context, limit int) ([]*invoice.Invoice, error) {
	if limit <= 0 {
		limit = 10
	}

	return r.query(ctx, `
		SELECT id, number, issue_date, sender_cnpj, sender_name, sender_uf,
			total_value, v_icms, v_st, v_ipi, v_pis, v_cofins,
			v_frete, v_seg, v_desc, v_outro,
			created_at, updated_at
		FROM invoices
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

// Delete implementa o método Delete da interface invoice.Repository.
// A exclusão da nota e dos itens acontece em uma única transação.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", id); err != nil {
		return fmt.Errorf("falha ao excluir itens da nota: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("falha ao excluir nota fiscal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}

	return nil
}

// Summary implementa o método Summary da interface invoice.Repository
func (r *InvoiceRepository) Summary(ctx context.Context) (*invoice.Summary, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	var summary invoice.Summary
	err = conn.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_value), 0), COALESCE(SUM(v_st), 0)
		FROM invoices
	`).Scan(&summary.TotalInvoices, &summary.TotalValue, &summary.TotalST)
	if err != nil {
		return nil, fmt.Errorf("falha ao calcular totais das notas: %w", err)
	}

	return &summary, nil
}

// FindItemsWithoutCEST implementa o método FindItemsWithoutCEST da
// interface invoice.Repository
func (r *InvoiceRepository) FindItemsWithoutCEST(ctx context.Context) ([]invoice.Item, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT i.id, i.invoice_id, i.code, i.name, i.ncm, i.cest, i.cfop,
			i.quantity, i.unit_price, i.total_value,
			i.v_icms, i.v_st, i.v_ipi, i.v_pis, i.v_cofins
		FROM invoice_items i
		JOIN invoices n ON n.id = i.invoice_id
		WHERE i.cest IS NULL OR TRIM(i.cest) = '' OR UPPER(TRIM(i.cest)) = 'NÃO INFORMADO'
		ORDER BY n.created_at, i.position
	`)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar itens sem CEST: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateCESTByNCM implementa o método UpdateCESTByNCM da interface
// invoice.Repository. A atualização é condicional aos itens ainda sem
// CEST, em um único comando, o que a torna idempotente e segura sob
// concorrência.
func (r *InvoiceRepository) UpdateCESTByNCM(ctx context.Context, ncm, cest string) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
		UPDATE invoice_items
		SET cest = $2
		WHERE ncm = $1 AND (cest IS NULL OR TRIM(cest) = '' OR UPPER(TRIM(cest)) = 'NÃO INFORMADO')
	`, ncm, cest)
	if err != nil {
		return 0, fmt.Errorf("falha ao atualizar CEST do NCM %s: %w", ncm, err)
	}

	return tag.RowsAffected(), nil
}

// Exists implementa o método Exists da interface invoice.Repository
func (r *InvoiceRepository) Exists(ctx context.Context, id string) (bool, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM invoices WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("falha ao verificar se a nota existe: %w", err)
	}

	return exists, nil
}

// query executa uma consulta de notas e carrega os itens de todas elas
func (r *InvoiceRepository) query(ctx context.Context, sql string, args ...interface{}) ([]*invoice.Invoice, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar notas fiscais: %w", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}
	ids := []string{}
	for rows.Next() {
		var inv invoice.Invoice
		err = rows.Scan(
			&inv.ID, &inv.Number, &inv.IssueDate, &inv.SenderCNPJ, &inv.SenderName, &inv.SenderUF,
			&inv.TotalValue, &inv.VICMS, &inv.VST, &inv.VIPI, &inv.VPIS, &inv.VCOFINS,
			&inv.VFrete, &inv.VSeg, &inv.VDesc, &inv.VOutro,
			&inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler nota fiscal: %w", err)
		}
		invoices = append(invoices, &inv)
		ids = append(ids, inv.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar notas fiscais: %w", err)
	}

	if len(ids) == 0 {
		return invoices, nil
	}

	itemsByInvoice, err := r.loadItems(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		inv.Items = itemsByInvoice[inv.ID]
	}

	return invoices, nil
}

// loadItems carrega os itens das notas informadas na ordem de ingestão
func (r *InvoiceRepository) loadItems(ctx context.Context, conn *pgxpool.Conn, invoiceIDs []string) (map[string][]invoice.Item, error) {
	rows, err := conn.Query(ctx, `
		SELECT id, invoice_id, code, name, ncm, cest, cfop,
			quantity, unit_price, total_value,
			v_icms, v_st, v_ipi, v_pis, v_cofins
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY position
	`, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar itens das notas: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	byInvoice := make(map[string][]invoice.Item)
	for _, item := range items {
		byInvoice[item.InvoiceID] = append(byInvoice[item.InvoiceID], item)
	}

	return byInvoice, nil
}

func scanItems(rows pgx.Rows) ([]invoice.Item, error) {
	items := []invoice.Item{}
	for rows.Next() {
		var item invoice.Item
		err := rows.Scan(
			&item.ID, &item.InvoiceID, &item.Code, &item.Name, &item.NCM, &item.CEST, &item.CFOP,
			&item.Quantity, &item.UnitPrice, &item.TotalValue,
			&item.VICMS, &item.VST, &item.VIPI, &item.VPIS, &item.VCOFINS)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler item da nota: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens das notas: %w", err)
	}

	return items, nil
}
