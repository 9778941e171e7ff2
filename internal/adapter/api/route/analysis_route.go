package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/controller"
	"github.com/hugohenrick/controle-fiscal/pkg/auth"
)

// SetupAnalysisRoutes configura as rotas da análise fiscal e do dashboard
func SetupAnalysisRoutes(router *gin.RouterGroup, analysisController *controller.AnalysisController, dashboardController *controller.DashboardController) {
	router.GET("/dashboard", dashboardController.Get)

	analysisRouter := router.Group("/analysis")
	{
		analysisRouter.GET("", analysisController.Analyze)

		// O enriquecimento grava nos itens, então requer autenticação
		analysisRouter.POST("/search-cest", auth.JWTAuthMiddleware(), analysisController.SearchCEST)
	}
}
