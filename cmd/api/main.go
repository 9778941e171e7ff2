package main

import (
	"log"
	"os"

	"github.com/hugohenrick/controle-fiscal/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	// Aplicar migrações pendentes, se configurado
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := database.RunMigrations(); err != nil {
			log.Fatalf("Erro ao executar migrações: %v", err)
		}
	}

	// Criar aplicação
	app, err := NewApp()
	if err != nil {
		log.Fatalf("Erro ao inicializar a aplicação: %v", err)
	}
	defer app.Close()

	app.SetupRoutes("/api")

	// Iniciar o servidor
	if err := app.Start(); err != nil {
		log.Fatalf("Erro ao iniciar o servidor: %v", err)
	}
}
