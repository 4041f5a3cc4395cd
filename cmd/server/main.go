package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ozonegraphics/invoice-service/internal/config"
	"github.com/ozonegraphics/invoice-service/internal/docstore"
	"github.com/ozonegraphics/invoice-service/internal/gemini"
	"github.com/ozonegraphics/invoice-service/internal/handler"
	"github.com/ozonegraphics/invoice-service/internal/pdf"
	"github.com/ozonegraphics/invoice-service/internal/repository"
	"github.com/ozonegraphics/invoice-service/internal/server"
	"github.com/ozonegraphics/invoice-service/internal/service"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the document store
	log.Println("Connecting to the document store...")
	store, err := docstore.NewPostgresStore(context.Background(), cfg.PostgresDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to the document store: %v", err)
	}
	defer store.Close()

	// Initialize repository
	log.Println("Initializing repository...")
	repo := repository.NewDocstoreInvoiceRepository(store.Collection("invoices"))

	// Initialize Gemini client for thank-you message generation
	geminiClient := gemini.NewClient(&gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		ModelID: cfg.GeminiModelID,
		Timeout: cfg.GeminiTimeout,
	})

	// Create invoice service
	log.Println("Creating invoice service...")
	invoiceService := service.NewInvoiceService(repo, geminiClient, pdf.NewMarotoRenderer(), service.ShopIdentity{
		ShopName:   cfg.ShopName,
		GPayNumber: cfg.GPayNumber,
	})

	// Create handler
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg, invoiceHandler)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
