package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/controller"
	"github.com/hugohenrick/controle-fiscal/pkg/auth"
)

// SetupInvoiceRoutes configura as rotas do módulo de notas fiscais
func SetupInvoiceRoutes(router *gin.RouterGroup, invoiceController *controller.InvoiceController) {
	invoices := router.Group("/invoices")
	{
		// Leituras são públicas
		invoices.GET("", invoiceController.List)
		invoices.GET("/:id", invoiceController.Get)

		// Mutações requerem autenticação
		invoices.POST("", auth.JWTAuthMiddleware(), invoiceController.Create)
		invoices.DELETE("/:id", auth.JWTAuthMiddleware(), invoiceController.Delete)
	}
}
