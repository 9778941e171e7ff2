package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices   []*invoice.Invoice
	lastLimit  int
	lastOffset int
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.invoices = append(r.invoices, inv)
	return nil
}

func (r *fakeInvoiceRepo) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, invoice.ErrNotFound
}

func (r *fakeInvoiceRepo) FindAll(ctx context.Context, limit, offset int) ([]*invoice.Invoice, error) {
	r.lastLimit = limit
	r.lastOffset = offset
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) FindAllWithItems(ctx context.Context) ([]*invoice.Invoice, error) {
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) FindRecent(ctx context.Context, limit int) ([]*invoice.Invoice, error) {
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id string) error {
	for i, inv := range r.invoices {
		if inv.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return invoice.ErrNotFound
}

func (r *fakeInvoiceRepo) Summary(ctx context.Context) (*invoice.Summary, error) {
	summary := &invoice.Summary{}
	for _, inv := range r.invoices {
		summary.TotalInvoices++
		summary.TotalValue = summary.TotalValue.Add(inv.TotalValue)
		summary.TotalST = summary.TotalST.Add(inv.VST)
	}
	return summary, nil
}

func (r *fakeInvoiceRepo) FindItemsWithoutCEST(ctx context.Context) ([]invoice.Item, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) UpdateCESTByNCM(ctx context.Context, ncm, cest string) (int64, error) {
	return 0, nil
}

func (r *fakeInvoiceRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.FindByID(ctx, id)
	return err == nil, nil
}

func newInvoiceRouter(repo *fakeInvoiceRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewInvoiceController(repo, logger.NewLogger())

	router := gin.New()
	router.POST("/invoices", ctrl.Create)
	router.GET("/invoices", ctrl.List)
	router.GET("/invoices/:id", ctrl.Get)
	router.DELETE("/invoices/:id", ctrl.Delete)
	return router
}

func TestInvoiceCreateAndGet(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	router := newInvoiceRouter(repo)

	payload := `{
		"number": "12345",
		"issue_date": "2024-03-01",
		"sender_cnpj": "11222333000181",
		"sender_name": "Distribuidora Alfa",
		"sender_uf": "MG",
		"total_value": 1500.50,
		"v_st": 120,
		"items": [
			{"code": "P1", "name": "Refrigerante 2L", "ncm": "22021000", "total_value": 1500.50, "v_st": 120}
		]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "12345", created["number"])
	assert.Equal(t, 1500.5, created["total_value"])
	require.Len(t, repo.invoices, 1)

	// Buscar a nota pelo ID retornado
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/invoices/"+created["id"].(string), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var fetched map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	items := fetched["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Refrigerante 2L", item["name"])
	assert.Equal(t, "NÃO INFORMADO", item["cest"])
}

func TestInvoiceCreateRejectsMissingSender(t *testing.T) {
	router := newInvoiceRouter(&fakeInvoiceRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{"number": "1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceListPagination(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	router := newInvoiceRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices?page=3&page_size=20", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, repo.lastLimit)
	assert.Equal(t, 40, repo.lastOffset)

	// Valores fora da faixa caem nos padrões
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/invoices?page=0&page_size=1000", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
}

func TestInvoiceGetNotFound(t *testing.T) {
	router := newInvoiceRouter(&fakeInvoiceRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/inexistente", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceDelete(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	inv, err := invoice.NewInvoice("99", "2024-01-10", "", "Fornecedor Beta", "SP", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), inv))

	router := newInvoiceRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/invoices/"+inv.ID, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.invoices)

	// Segunda exclusão retorna 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/invoices/"+inv.ID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
