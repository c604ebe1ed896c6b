package router

import (
	"nyayapath/internal/adapter/api/handler"
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFigureRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	figureHandler := handler.GetFigureHandler()

	figures := e.Group("/v1/figures")
	figures.Use(authMiddleware.Authenticate)

	figures.GET("", figureHandler.ListFigures)
	figures.GET("/:id", figureHandler.GetFigure)

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", figureHandler.StartChat)
	chats.GET("", figureHandler.ListChats)
	chats.GET("/:id/messages", figureHandler.ListMessages)
	chats.POST("/:id/messages", figureHandler.SendMessage, rateLimitMiddleware.Limit("send_message"))

	admin := e.Group("/v1/admin/figures")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("", figureHandler.CreateFigure)
}
