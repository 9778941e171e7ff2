package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/controller"
	"github.com/hugohenrick/controle-fiscal/pkg/auth"
)

// SetupSettingsRoutes configura as rotas das configurações fiscais
func SetupSettingsRoutes(router *gin.RouterGroup, settingsController *controller.SettingsController) {
	settingsRouter := router.Group("/settings")
	{
		settingsRouter.GET("", settingsController.Get)
		settingsRouter.PUT("", auth.JWTAuthMiddleware(), settingsController.Update)
	}
}
