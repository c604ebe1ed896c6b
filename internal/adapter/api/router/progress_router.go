package router

import (
	"nyayapath/internal/adapter/api/handler"
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProgressRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	progressionHandler := handler.GetProgressionHandler()

	progress := e.Group("/v1/progress")
	progress.Use(authMiddleware.Authenticate)

	progress.GET("/me", progressionHandler.GetProgress)
	progress.GET("/leaderboard", progressionHandler.Leaderboard)
}
