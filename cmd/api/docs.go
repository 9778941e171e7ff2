package main

// @title           Controle Fiscal API
// @version         1.0
// @description     API de análise fiscal de notas para empresas do Simples Nacional

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
