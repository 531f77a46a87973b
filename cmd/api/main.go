package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"snaplink/internal/config"
	"snaplink/internal/database"
	"snaplink/internal/middleware"
	"snaplink/internal/modules/capture"
	"snaplink/internal/modules/link"
	"snaplink/internal/modules/provider"
	"snaplink/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(context.Background(), db, cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}

	providerRepo := provider.NewRepository(db)
	linkRepo := link.NewRepository(db)
	captureRepo := capture.NewRepository(db)

	providerService := provider.NewService(providerRepo)
	captureService := capture.NewService(captureRepo, linkRepo, linkRepo, providerService, storage.ForKind)
	linkService := link.NewService(linkRepo, providerService, captureService)

	providerHandler := provider.NewHandler(providerService)
	linkHandler := link.NewHandler(linkService, cfg.BaseURL)
	captureHandler := capture.NewHandler(captureService, linkRepo)

	r := gin.Default()
	r.Use(middleware.ErrorLogger(), middleware.CORS())
	r.LoadHTMLGlob("web/templates/*.html")

	root := r.Group("/")
	{
		capture.RegisterVisitorRoutes(root, captureHandler)
		capture.RegisterAdminRoutes(root, captureHandler)
		link.RegisterRoutes(root, linkHandler)
		provider.RegisterRoutes(root, providerHandler)

		// schema bootstrap endpoints kept for the deployment flow; both
		// re-run the same idempotent migration ledger
		root.GET("/init_db", migrateHandler(db, cfg.DatabaseURL))
		root.GET("/migrate_db", migrateHandler(db, cfg.DatabaseURL))
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func migrateHandler(db *gorm.DB, dsn string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Migrate(c.Request.Context(), db, dsn); err != nil {
			c.String(http.StatusInternalServerError, "migration failed: %v", err)
			return
		}
		c.String(http.StatusOK, "database schema is up to date")
	}
}
