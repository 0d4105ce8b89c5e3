package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nearby/internal/location"
	_ "nearby/internal/types" // imported for swagger type definitions
)

// GeocodeInput defines the query parameters for the geocode endpoint
type GeocodeInput struct {
	Query string `form:"q"` // Place name to look up
}

// handleGeocode godoc
// @Summary Geocode a place name
// @Description Resolve a free-text place name to coordinates using OpenStreetMap Nominatim
// @Tags location
// @Produce json
// @Param q query string true "Place name" example(Kanpur)
// @Success 200 {object} types.Location
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /geocode [get]
func (app *App) handleGeocode(c *gin.Context) {
	var input GeocodeInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := app.geocoder.Resolve(c.Request.Context(), input.Query)
	if err != nil {
		app.writeGeocodeError(c, input.Query, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

// writeGeocodeError maps geocoder failures to responses
func (app *App) writeGeocodeError(c *gin.Context, query string, err error) {
	switch {
	case errors.Is(err, location.ErrInputEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": location.ErrInputEmpty.Error()})
	case errors.Is(err, location.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": location.ErrNotFound.Error()})
	default:
		app.logger.Error("failed to geocode",
			"query", query,
			"error", err,
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "geocoding service is unavailable, please try again later"})
	}
}
