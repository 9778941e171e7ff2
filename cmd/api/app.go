package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/controller"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/api/route"
	"github.com/hugohenrick/controle-fiscal/internal/adapter/repository"
	"github.com/hugohenrick/controle-fiscal/internal/domain/analysis"
	"github.com/hugohenrick/controle-fiscal/internal/domain/enrichment"
	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	"github.com/hugohenrick/controle-fiscal/internal/infrastructure/database"
	"github.com/hugohenrick/controle-fiscal/pkg/auth"
	"github.com/hugohenrick/controle-fiscal/pkg/cosmos"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger

	authController      *controller.AuthController
	invoiceController   *controller.InvoiceController
	dashboardController *controller.DashboardController
	analysisController  *controller.AnalysisController
	settingsController  *controller.SettingsController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Credencial do contador
	credential, err := auth.CredentialFromEnv()
	if err != nil {
		return nil, err
	}

	// Criar serviços
	rateTable := fiscal.AnexoI()
	analysisService := analysis.NewService(invoiceRepo, settingsRepo, log)
	cosmosClient := cosmos.NewClient(log)
	enrichmentService := enrichment.NewService(invoiceRepo, cosmosClient, log)

	// Criar controllers
	authController := controller.NewAuthController(credential, log)
	invoiceController := controller.NewInvoiceController(invoiceRepo, log)
	dashboardController := controller.NewDashboardController(analysisService, log)
	analysisController := controller.NewAnalysisController(analysisService, enrichmentService, log)
	settingsController := controller.NewSettingsController(settingsRepo, rateTable, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())

	// Configurar CORS para o frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	return &App{
		router:              router,
		db:                  db,
		logger:              log,
		authController:      authController,
		invoiceController:   invoiceController,
		dashboardController: dashboardController,
		analysisController:  analysisController,
		settingsController:  settingsController,
	}, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, a.authController)
	route.SetupInvoiceRoutes(api, a.invoiceController)
	route.SetupAnalysisRoutes(api, a.analysisController, a.dashboardController)
	route.SetupSettingsRoutes(api, a.settingsController)
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
