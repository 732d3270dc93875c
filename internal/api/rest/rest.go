package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Collection read endpoints
		v1.GET("/collections/:address", handler.GetCollection)
		v1.GET("/collections/:address/nfts", handler.ListCollectionNFTs)
		v1.GET("/collections/:address/errors", handler.ListFetchErrors)

		// Synchronous refresh: run and inspect
		v1.POST("/collections/:address/refresh", handler.RefreshCollection)
		v1.GET("/collections/:address/refresh", handler.GetRefreshStatus)

		// Comprehensive background population: start and inspect
		v1.POST("/collections/:address/populate", handler.PopulateCollection)
		v1.GET("/collections/:address/populate", handler.GetPopulateStatus)

		// Error ledger retry
		v1.POST("/collections/:address/retry", handler.RetryCollection)
	}
}
