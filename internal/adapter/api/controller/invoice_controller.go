package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/dto"
	invoicedomain "github.com/hugohenrick/controle-fiscal/internal/domain/invoice"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
)

// InvoiceController gerencia as requisições relacionadas a notas fiscais
type InvoiceController struct {
	invoiceRepo invoicedomain.Repository
	logger      logger.Logger
}

// NewInvoiceController cria uma nova instância de InvoiceController
func NewInvoiceController(invoiceRepo invoicedomain.Repository, logger logger.Logger) *InvoiceController {
	return &InvoiceController{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// Create registra uma nova nota fiscal com seus itens
// @Summary Registrar nota fiscal
// @Description Registra uma nota fiscal já estruturada com seus itens
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param invoice body dto.InvoiceRequest true "Dados da nota fiscal"
// @Success 201 {object} dto.InvoiceDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [post]
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.InvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	inv, err := req.ToInvoice()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao montar nota fiscal", err.Error()))
		return
	}

	if err := c.invoiceRepo.Create(ctx, inv); err != nil {
		c.logger.Error("erro ao salvar nota fiscal no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar nota fiscal", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceDetailResponse(inv))
}

// List retorna as notas fiscais registradas
// @Summary Listar notas fiscais
// @Description Retorna as notas fiscais na ordem de ingestão
// @Tags invoices
// @Accept json
// @Produce json
// @Param page query int false "Página"
// @Param page_size query int false "Quantidade de registros por página"
// @Success 200 {object} dto.InvoiceListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [get]
func (c *InvoiceController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "50"))
	pagination := dto.GetPagination(page, pageSize)

	offset := (pagination.Page - 1) * pagination.PageSize
	invoices, err := c.invoiceRepo.FindAll(ctx, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar notas fiscais", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar notas fiscais", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices))
}

// Get retorna uma nota fiscal pelo ID
// @Summary Buscar nota fiscal
// @Description Retorna uma nota fiscal com todos os itens
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "ID da nota fiscal"
// @Success 200 {object} dto.InvoiceDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices/{id} [get]
func (c *InvoiceController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return
	}

	inv, err := c.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota fiscal não encontrada", ""))
			return
		}
		c.logger.Error("erro ao buscar nota fiscal", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar nota fiscal", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceDetailResponse(inv))
}

// Delete exclui uma nota fiscal e seus itens
// @Summary Excluir nota fiscal
// @Description Exclui a nota fiscal e todos os itens dela
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota fiscal"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices/{id} [delete]
func (c *InvoiceController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return
	}

	if err := c.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota fiscal não encontrada", ""))
			return
		}
		c.logger.Error("erro ao excluir nota fiscal", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir nota fiscal", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("nota fiscal excluída", nil))
}
