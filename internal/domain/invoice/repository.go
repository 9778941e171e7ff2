package invoice

import (
	"context"

	"github.com/shopspring/decimal"
)

// Summary agrega os totais exibidos no dashboard
type Summary struct {
	TotalInvoices int64
	TotalValue    decimal.Decimal
	TotalST       decimal.Decimal
}

// Repository define a interface para operações de repositório de notas fiscais
type Repository interface {
	// Create persiste uma nota fiscal com seus itens em uma única transação
	Create(ctx context.Context, inv *Invoice) error

	// FindByID busca uma nota pelo ID, com seus itens
	FindByID(ctx context.Context, id string) (*Invoice, error)

	// FindAll lista as notas com paginação, com seus itens
	FindAll(ctx context.Context, limit, offset int) ([]*Invoice, error)

	// FindAllWithItems retorna todas as notas e itens na ordem de ingestão
	FindAllWithItems(ctx context.Context) ([]*Invoice, error)

	// FindRecent retorna as notas mais recentes, com seus itens
	FindRecent(ctx context.Context, limit int) ([]*Invoice, error)

	// Delete remove uma nota e seus itens em uma única transação
	Delete(ctx context.Context, id string) error

	// Summary calcula os totais do dashboard
	Summary(ctx context.Context) (*Summary, error)

	// FindItemsWithoutCEST retorna os itens sem CEST informado, na ordem de ingestão
	FindItemsWithoutCEST(ctx context.Context) ([]Item, error)

	// UpdateCESTByNCM aplica o CEST a todos os itens de um NCM que ainda
	// estão sem CEST e retorna a quantidade de itens alterados
	UpdateCESTByNCM(ctx context.Context, ncm, cest string) (int64, error)

	// Exists verifica se uma nota existe
	Exists(ctx context.Context, id string) (bool, error)
}
