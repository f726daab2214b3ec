package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/wayfare/tripplan-backend-go/internal/api"
	"github.com/wayfare/tripplan-backend-go/internal/config"
	"github.com/wayfare/tripplan-backend-go/internal/database"
	"github.com/wayfare/tripplan-backend-go/internal/handler"
	"github.com/wayfare/tripplan-backend-go/internal/planner"
	"github.com/wayfare/tripplan-backend-go/internal/repository"
	"github.com/wayfare/tripplan-backend-go/internal/service"
)

func main() {
	// .env is optional; the environment wins either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	resultRepo := repository.NewResultRepository(db)
	optimizationService := service.NewOptimizationService(planner.NewEngine(), resultRepo)
	optimizationHandler := handler.NewOptimizationHandler(optimizationService)

	router := api.SetupRouter(cfg, optimizationHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
