package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/dto"
	"github.com/hugohenrick/controle-fiscal/internal/domain/analysis"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
)

// DashboardController gerencia as requisições do dashboard
type DashboardController struct {
	analysisService *analysis.Service
	logger          logger.Logger
}

// NewDashboardController cria uma nova instância de DashboardController
func NewDashboardController(analysisService *analysis.Service, logger logger.Logger) *DashboardController {
	return &DashboardController{
		analysisService: analysisService,
		logger:          logger,
	}
}

// Get retorna os totais agregados e as notas mais recentes
// @Summary Dashboard
// @Description Retorna os totais das notas e as dez mais recentes
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (c *DashboardController) Get(ctx *gin.Context) {
	dashboard, err := c.analysisService.GetDashboard(ctx)
	if err != nil {
		c.logger.Error("erro ao montar dashboard", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar dashboard", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}
