package router

import (
	"nyayapath/internal/adapter/api/handler"
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupBattleRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	battleHandler := handler.GetBattleHandler()

	battles := e.Group("/v1/battles")
	battles.Use(authMiddleware.Authenticate)

	battles.POST("", battleHandler.Start, rateLimitMiddleware.Limit("start_battle"))
	battles.GET("/:id", battleHandler.GetState)
	battles.POST("/:id/ready", battleHandler.Ready)
	battles.POST("/:id/choose", battleHandler.Choose)
	battles.POST("/:id/continue", battleHandler.Continue)
	battles.POST("/:id/tick", battleHandler.Tick)
	battles.DELETE("/:id", battleHandler.Abandon)
}
