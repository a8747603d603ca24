package routes

import (
	"net/http"
	"strconv"

	"github.com/cinepedia/scraper/internal/server/middleware"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/store"

	"github.com/labstack/echo/v4"
)

// SearchEntitiesHandler searches stored entities by title. The optional
// type parameter narrows results to movies or persons.
func SearchEntitiesHandler(c echo.Context) error {
	type searchResponse struct {
		Message string              `json:"message,omitempty"`
		Results []store.EntityRecord `json:"results"`
	}

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Missing query parameter q",
		})
	}

	entityType := c.QueryParam("type")
	switch entityType {
	case "", "movie", "person":
	default:
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid entity type",
		})
	}

	limit := 10
	if rawLimit := c.QueryParam("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, searchResponse{
				Message: "Invalid limit",
			})
		}
		limit = parsed
	}

	app := c.(*middleware.AppContext).App
	results, err := app.Store.SearchEntities(c.Request().Context(), query, entityType, limit)
	if err != nil {
		logger.Error("Failed to search entities", "query", query, "err", err)
		return c.JSON(http.StatusInternalServerError, searchResponse{
			Message: "Internal server error",
		})
	}

	if results == nil {
		results = []store.EntityRecord{}
	}
	return c.JSON(http.StatusOK, searchResponse{Results: results})
}
