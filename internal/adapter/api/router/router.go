package router

import (
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupCaseRouter(e, authMiddleware, adminMiddleware)
	SetupBattleRouter(e, authMiddleware, rateLimitMiddleware)
	SetupProgressRouter(e, authMiddleware)
	SetupQuizRouter(e, authMiddleware, adminMiddleware, rateLimitMiddleware)
	SetupFigureRouter(e, authMiddleware, adminMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
