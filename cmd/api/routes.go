package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"nearby/internal/middleware"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	app.router.GET("/geocode", app.handleGeocode)

	// Search endpoints share one token bucket
	limited := app.router.Group("/", middleware.RateLimit(app.cfg.Server.Limit))
	limited.GET("/search", app.handleSearch)
	limited.GET("/places", app.handlePlaces)
	limited.GET("/places/markers", app.handleMarkers)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
