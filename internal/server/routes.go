package server

import (
	"github.com/cinepedia/scraper/internal/server/middleware"
	"github.com/cinepedia/scraper/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Scrape pipeline routes
	apiRoutes.POST("/pages", routes.CreatePageHandler)

	// Entity routes
	apiRoutes.GET("/entities", routes.ListEntitiesHandler)
	apiRoutes.GET("/movies/:uid", routes.GetMovieHandler)
	apiRoutes.GET("/persons/:uid", routes.GetPersonHandler)
	apiRoutes.GET("/search", routes.SearchEntitiesHandler)
}
