// @title           Canvas Art Backend API
// @version         1.0.0
// @description     Backend API for the canvas-art storefront: server-backed carts, checkout orders, and the curator/admin moderation ledger (feedback notes and custom-print upload review).

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"canvas-art-backend/internal/auth"
	"canvas-art-backend/internal/catalog"
	"canvas-art-backend/internal/config"
	"canvas-art-backend/internal/database"
	"canvas-art-backend/internal/handlers"
	"canvas-art-backend/internal/middleware"
	"canvas-art-backend/internal/moderation"
	"canvas-art-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	storageClient, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	catalogClient := catalog.NewClient(cfg.CatalogAPIBaseURL, cfg.CatalogAPIKey)

	noteService := moderation.NewNoteService(dbClient)
	uploadService := moderation.NewUploadService(dbClient, storageClient)

	cartHandler := handlers.NewCartHandler(dbClient, catalogClient)
	ordersHandler := handlers.NewOrdersHandler(dbClient)
	notesHandler := handlers.NewNotesHandler(noteService)
	uploadsHandler := handlers.NewUploadsHandler(uploadService)

	router := gin.Default()

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Cart persistence, keyed by (product_id, variant) per user
	api.GET("/cart", cartHandler.GetCart)
	api.PUT("/cart/items", cartHandler.UpsertItem)
	api.DELETE("/cart/items/:product_id/:variant", cartHandler.DeleteItem)
	api.DELETE("/cart", cartHandler.ClearCart)

	// Orders
	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders", ordersHandler.ListOrders)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.PATCH("/orders/:order_id/payment", ordersHandler.UpdatePayment)
	api.PATCH("/orders/:order_id/status",
		middleware.RequireRole(auth.RoleAdmin), ordersHandler.UpdateStatus)

	// Editorial feedback notes. The services gate again with the same
	// HasAccess check, so a misrouted handler still cannot skip the gate.
	notes := api.Group("/notes", middleware.RequireRole(auth.RoleCurator))
	notes.POST("", notesHandler.CreateNote)
	notes.GET("", notesHandler.ListNotes)
	notes.PATCH("/:note_id/resolve", notesHandler.ResolveNote)
	notes.DELETE("/:note_id", middleware.RequireRole(auth.RoleAdmin), notesHandler.DeleteNote)

	// Custom-print upload review
	uploads := api.Group("/uploads", middleware.RequireRole(auth.RoleCurator))
	uploads.POST("", uploadsHandler.CreateUpload)
	uploads.GET("", uploadsHandler.ListUploads)
	uploads.PATCH("/:upload_id/review", middleware.RequireRole(auth.RoleAdmin), uploadsHandler.ReviewUpload)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
