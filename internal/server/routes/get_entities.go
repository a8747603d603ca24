package routes

import (
	"errors"
	"net/http"

	"github.com/cinepedia/scraper/internal/server/middleware"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/store"

	"github.com/labstack/echo/v4"
)

// GetMovieHandler returns the composed movie document for a uid.
func GetMovieHandler(c echo.Context) error {
	return getEntity(c, common.EntityTypeMovie)
}

// GetPersonHandler returns the composed person document for a uid.
func GetPersonHandler(c echo.Context) error {
	return getEntity(c, common.EntityTypePerson)
}

// ListEntitiesHandler walks the whole store, optionally narrowed by type.
// Meant for exports and reconciliation, not end-user search.
func ListEntitiesHandler(c echo.Context) error {
	entityType := c.QueryParam("type")
	switch entityType {
	case "", "movie", "person":
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid entity type"})
	}

	app := c.(*middleware.AppContext).App
	records, err := app.Store.ScanEntities(c.Request().Context(), entityType)
	if err != nil {
		logger.Error("Failed to scan entities", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if records == nil {
		records = []store.EntityRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func getEntity(c echo.Context, entityType string) error {
	uid := c.Param("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing uid"})
	}

	app := c.(*middleware.AppContext).App
	record, err := app.Store.GetEntity(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
		}
		logger.Error("Failed to load entity", "uid", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if record.Type != entityType {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}

	return c.JSONBlob(http.StatusOK, record.Payload)
}
