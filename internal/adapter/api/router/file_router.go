package router

import (
	"nyayapath/internal/adapter/api/handler"
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.Use(adminMiddleware.AdminOnly)

	files.POST("", fileHandler.Upload)
	files.DELETE("", fileHandler.Delete)
}
