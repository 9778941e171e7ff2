package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/dto"
	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	settingsdomain "github.com/hugohenrick/controle-fiscal/internal/domain/settings"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
	"github.com/shopspring/decimal"
)

// SettingsController gerencia as requisições das configurações fiscais
type SettingsController struct {
	settingsRepo settingsdomain.Repository
	rateTable    fiscal.RateTable
	logger       logger.Logger
}

// NewSettingsController cria uma nova instância de SettingsController
func NewSettingsController(settingsRepo settingsdomain.Repository, rateTable fiscal.RateTable, logger logger.Logger) *SettingsController {
	return &SettingsController{
		settingsRepo: settingsRepo,
		rateTable:    rateTable,
		logger:       logger,
	}
}

// Get retorna as configurações fiscais vigentes
// @Summary Buscar configurações
// @Description Retorna as configurações fiscais, criando o padrão na primeira leitura
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	cfg, err := c.settingsRepo.Get(ctx)
	if err != nil {
		c.logger.Error("erro ao buscar configurações fiscais", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar configurações fiscais", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(cfg))
}

// Update atualiza as configurações fiscais. A alíquota efetiva é
// recalculada na mesma operação quando o RBT12 muda.
// @Summary Atualizar configurações
// @Description Atualiza RBT12, alíquota DIFAL e UF da empresa
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param settings body dto.SettingsRequest true "Novos valores"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	var req dto.SettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cfg, err := c.settingsRepo.Get(ctx)
	if err != nil {
		c.logger.Error("erro ao buscar configurações fiscais", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar configurações fiscais", err.Error()))
		return
	}

	if req.RBT12 != nil {
		if err := cfg.UpdateRBT12(decimal.NewFromFloat(*req.RBT12), c.rateTable); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "RBT12 inválido", err.Error()))
			return
		}
	}

	if req.DIFALRate != nil {
		if err := cfg.UpdateDIFALRate(decimal.NewFromFloat(*req.DIFALRate)); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "alíquota DIFAL inválida", err.Error()))
			return
		}
	}

	if req.HomeUF != nil {
		if err := cfg.UpdateHomeUF(*req.HomeUF); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "UF inválida", err.Error()))
			return
		}
	}

	if err := c.settingsRepo.Save(ctx, cfg); err != nil {
		c.logger.Error("erro ao salvar configurações fiscais", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar configurações fiscais", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(cfg))
}
