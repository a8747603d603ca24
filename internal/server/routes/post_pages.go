package routes

import (
	"encoding/json"
	"net/http"

	"github.com/cinepedia/scraper/internal/queue"
	"github.com/cinepedia/scraper/internal/server/middleware"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
	"github.com/cinepedia/scraper/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreatePageHandler enqueues one encyclopedia page for scraping. The
// response carries the uid the resolved entity will be stored under.
func CreatePageHandler(c echo.Context) error {
	type createPageBody struct {
		URL        string `json:"url" validate:"required,url"`
		Title      string `json:"title" validate:"required"`
		SourceID   string `json:"source_id"`
		EntityType string `json:"entity_type" validate:"required,oneof=movie person"`
	}

	type createPageResponse struct {
		Message       string `json:"message"`
		CorrelationID string `json:"correlation_id,omitempty"`
		UID           string `json:"uid,omitempty"`
	}

	data := new(createPageBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createPageResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createPageResponse{
			Message: "Invalid request body",
		})
	}

	uid, err := entity.DeriveEntityUID(common.BaseInfo{
		Title:      data.Title,
		SourceID:   data.SourceID,
		EntityType: data.EntityType,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, createPageResponse{
			Message: "Page has no usable identity",
		})
	}

	msg := queue.NewPageMsg(data.URL, data.Title, data.SourceID, data.EntityType)
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal page message", "err", err)
		return c.JSON(http.StatusInternalServerError, createPageResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.ScrapeQueue, body); err != nil {
		logger.Error("Failed to publish page message", "err", err)
		return c.JSON(http.StatusInternalServerError, createPageResponse{
			Message: "Internal server error",
		})
	}

	logger.Info("Enqueued page", "correlation_id", msg.CorrelationID, "uid", uid)
	return c.JSON(http.StatusAccepted, createPageResponse{
		Message:       "Page enqueued",
		CorrelationID: msg.CorrelationID,
		UID:           uid,
	})
}
