package router

import (
	"nyayapath/internal/adapter/api/handler"
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCaseRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	caseHandler := handler.GetCaseHandler()

	cases := e.Group("/v1/cases")
	cases.Use(authMiddleware.Authenticate)

	cases.GET("", caseHandler.ListCases)
	cases.GET("/:id", caseHandler.GetCase)

	admin := e.Group("/v1/admin/cases")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("", caseHandler.CreateCase)
	admin.PUT("/:id", caseHandler.UpdateCase)
	admin.DELETE("/:id", caseHandler.DeleteCase)
}
