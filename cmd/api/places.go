package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nearby/internal/navigation"
	"nearby/internal/render"
	"nearby/internal/search"
	"nearby/internal/types"
)

// HeaderSessionID identifies a caller whose older searches may be superseded
const HeaderSessionID = "X-Session-ID"

// resultsPath is where /search sends callers once the origin is known
const resultsPath = "/places"

// SearchInput defines the query parameters for the search endpoint
type SearchInput struct {
	Query    string `form:"q"`        // Place name to search around
	Radius   string `form:"radius"`   // Search radius in meters
	Category string `form:"category"` // all, tourism, historic or temple
	Sort     string `form:"sort"`     // nearest, name or none
}

// handleSearch godoc
// @Summary Search around a place name
// @Description Geocode a place name and redirect to the results location for it
// @Tags places
// @Param q query string true "Place name" example(Kanpur)
// @Param radius query int false "Search radius in meters" default(3000)
// @Param category query string false "Category filter" Enums(all, tourism, historic, temple)
// @Param sort query string false "Sort order" Enums(nearest, name, none)
// @Success 302 "Redirect to /places"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /search [get]
func (app *App) handleSearch(c *gin.Context) {
	var input SearchInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := types.ParseCategory(input.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sort, err := types.ParseSortMode(input.Sort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := app.geocoder.Resolve(c.Request.Context(), input.Query)
	if err != nil {
		app.writeGeocodeError(c, input.Query, err)
		return
	}

	c.Redirect(http.StatusFound, navigation.ResultsURLWith(resultsPath, navigation.Params{
		Origin:       loc.Coordinates,
		RadiusMeters: navigation.ParseRadius(input.Radius),
		Category:     category,
		Sort:         sort,
	}))
}

// handlePlaces godoc
// @Summary Places around a coordinate
// @Description Find, order and enrich points of interest around lat/lon. When the map data service stays unavailable the response is still 200 with an empty list and a notice.
// @Tags places
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(26.4499)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(80.3319)
// @Param radius query int false "Search radius in meters" default(3000)
// @Param category query string false "Category filter" Enums(all, tourism, historic, temple)
// @Param sort query string false "Sort order" Enums(nearest, name, none)
// @Param X-Session-ID header string false "Caller session; a newer search in the same session supersedes older ones"
// @Success 200 {object} search.Result
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /places [get]
func (app *App) handlePlaces(c *gin.Context) {
	res, ok := app.runSearch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleMarkers godoc
// @Summary Map markers around a coordinate
// @Description Same search as /places rendered as a GeoJSON FeatureCollection with the origin first
// @Tags places
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" example(26.4499)
// @Param lon query number true "Longitude in decimal degrees" example(80.3319)
// @Param radius query int false "Search radius in meters" default(3000)
// @Param category query string false "Category filter" Enums(all, tourism, historic, temple)
// @Param sort query string false "Sort order" Enums(nearest, name, none)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /places/markers [get]
func (app *App) handleMarkers(c *gin.Context) {
	res, ok := app.runSearch(c)
	if !ok {
		return
	}

	data, err := render.Markers(res).MarshalJSON()
	if err != nil {
		app.logger.Error("failed to encode markers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode markers"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// runSearch parses the results location, runs the search in the caller's
// session and writes an error response when it cannot produce a result.
func (app *App) runSearch(c *gin.Context) (*search.Result, bool) {
	params, err := navigation.ParseResults(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	req := search.Request{
		Origin:       params.Origin,
		RadiusMeters: params.RadiusMeters,
		Category:     params.Category,
		Sort:         params.Sort,
	}

	res, err := search.RunInSession(c.Request.Context(), app.sessions, c.GetHeader(HeaderSessionID),
		func(ctx context.Context) (*search.Result, error) {
			return app.search.Search(ctx, req)
		},
	)

	switch {
	case err == nil:
		return res, true
	case errors.Is(err, search.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": search.ErrSuperseded.Error()})
	case errors.Is(err, types.ErrInvalidLatitude), errors.Is(err, types.ErrInvalidLongitude):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		app.logger.Error("search failed",
			"latitude", req.Origin.Latitude,
			"longitude", req.Origin.Longitude,
			"error", err,
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search could not be completed"})
	}
	return nil, false
}
