package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apple-inventory/internal/kvstore"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, inv Inventory, adapter *kvstore.Adapter, corsOrigins string, log zerolog.Logger) {
	handlers := NewHandlers(inv, adapter, log)

	r.Use(corsMiddleware(corsOrigins))

	v1 := r.Group("/api")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Products
		v1.GET("/products", handlers.GetProducts)
		v1.POST("/products", handlers.CreateProduct)
		v1.POST("/products/bulk", handlers.BulkCreateProducts)
		v1.GET("/products/:id", handlers.GetProduct)
		v1.PUT("/products/:id", handlers.UpdateProduct)
		v1.DELETE("/products/:id", handlers.DeleteProduct)

		// Aggregates
		v1.GET("/stats", handlers.GetStats)
		v1.GET("/widget-summary", handlers.GetWidgetSummary)

		// CSV transfer
		v1.GET("/export", handlers.ExportCSV)
		v1.POST("/import", handlers.ImportCSV)

		// Catalog
		v1.GET("/catalog/:category", handlers.GetCatalog)

		// Settings
		v1.GET("/settings/accent-color", handlers.GetAccentColor)
		v1.PUT("/settings/accent-color", handlers.SetAccentColor)

		// Destructive admin operation
		v1.POST("/reset", handlers.ResetCollection)
	}
}

func corsMiddleware(origins string) gin.HandlerFunc {
	allowed := strings.Split(origins, ",")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, o := range allowed {
			if strings.TrimSpace(o) == origin {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
