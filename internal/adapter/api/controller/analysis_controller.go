package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/dto"
	"github.com/hugohenrick/controle-fiscal/internal/domain/analysis"
	"github.com/hugohenrick/controle-fiscal/internal/domain/enrichment"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
)

// AnalysisController gerencia as requisições da análise fiscal
type AnalysisController struct {
	analysisService   *analysis.Service
	enrichmentService *enrichment.Service
	logger            logger.Logger
}

// NewAnalysisController cria uma nova instância de AnalysisController
func NewAnalysisController(analysisService *analysis.Service, enrichmentService *enrichment.Service, logger logger.Logger) *AnalysisController {
	return &AnalysisController{
		analysisService:   analysisService,
		enrichmentService: enrichmentService,
		logger:            logger,
	}
}

// Analyze retorna a análise fiscal completa das notas registradas
// @Summary Análise fiscal
// @Description Classifica os itens, detecta inconsistências e projeta os impostos
// @Tags analysis
// @Accept json
// @Produce json
// @Success 200 {object} dto.AnalysisResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis [get]
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	result, err := c.analysisService.Analyze(ctx)
	if err != nil {
		c.logger.Error("erro ao executar análise fiscal", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao executar análise fiscal", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalysisResponse(result))
}

// SearchCEST busca códigos CEST na fonte externa para os itens sem CEST
// @Summary Buscar CEST
// @Description Consulta a fonte externa por NCM e preenche o CEST dos itens pendentes
// @Tags analysis
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SearchCESTResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.SearchCESTResponse
// @Router /analysis/search-cest [post]
func (c *AnalysisController) SearchCEST(ctx *gin.Context) {
	result, err := c.enrichmentService.Run(ctx)
	if err != nil {
		if errors.Is(err, enrichment.ErrSourceUnavailable) {
			c.logger.Warn("fonte externa de CEST indisponível", "error", err)
			ctx.JSON(http.StatusBadGateway, dto.SearchCESTResponse{Success: false, UpdatedCount: 0})
			return
		}
		c.logger.Error("erro ao enriquecer CEST", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao enriquecer CEST", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.SearchCESTResponse{
		Success:      result.Success,
		UpdatedCount: result.UpdatedCount,
	})
}
