package app

import (
	"fmt"
	"os"

	"hypewear-studio/app/controller"
	"hypewear-studio/app/router"
	"hypewear-studio/db"
	"hypewear-studio/pricing"
	"hypewear-studio/repository"
	"hypewear-studio/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Quotation engine config (falls back to built-in defaults)
	pricing.Init(os.Getenv("PRICING_CONFIG"))

	// Base URL used by the print blueprint render round trip
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	// Object storage adapter for finalization uploads
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}
	folderID := os.Getenv("STORAGE_FOLDER_ID")
	if folderID == "" {
		return fmt.Errorf("STORAGE_FOLDER_ID environment variable is not set")
	}
	storage, err := service.NewDriveStorageService(credentialsPath, folderID)
	if err != nil {
		return err
	}

	// Reproducible renderer shared by every surface
	renderer, err := service.NewDesignRenderer()
	if err != nil {
		return err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()
	designRepo := repository.NewDesignRepository()

	// Initialize services
	studio := service.NewStudioService()
	finalizer := service.NewFinalizeService(storage)
	cartService := service.NewCartService(cartRepo, productRepo, orderRepo, studio, renderer, finalizer)
	printer := service.NewPrintService(renderer, baseURL)
	exporter := service.NewExportService(renderer)

	// Create controllers
	controllers := &router.Controllers{
		Studio:  controller.NewStudioController(studio, renderer),
		Catalog: controller.NewCatalogController(productRepo),
		Cart:    controller.NewCartController(cartRepo, cartService),
		Admin:   controller.NewAdminDesignController(designRepo, renderer, printer, exporter),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
