package main

import (
	"log"

	"github.com/StoreSphere/affiliate-discount/config"
	"github.com/StoreSphere/affiliate-discount/controllers"
	"github.com/StoreSphere/affiliate-discount/events"
	"github.com/StoreSphere/affiliate-discount/repository"
	"github.com/StoreSphere/affiliate-discount/routes"
	"github.com/StoreSphere/affiliate-discount/services"
	"github.com/StoreSphere/affiliate-discount/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Wire up the affiliate ledger
	repo := repository.NewAffiliateDiscountRepository(config.DB)
	ledger := services.NewAffiliateDiscountService(repo)

	// Hook commission accrual into the order lifecycle
	bus := events.NewBus()
	events.RegisterAffiliateSubscriber(bus, ledger, events.NewGormOrderLoader(config.DB), cfg.AffiliateUpdateWhen)

	// Set up router
	router := routes.SetupRouter(ledger, bus)

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
