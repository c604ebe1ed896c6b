package router

import (
	"nyayapath/internal/adapter/api/handler"
	"nyayapath/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupQuizRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	quizHandler := handler.GetQuizHandler()

	quizzes := e.Group("/v1/quizzes")
	quizzes.Use(authMiddleware.Authenticate)

	quizzes.GET("", quizHandler.ListQuizzes)
	quizzes.GET("/attempts", quizHandler.ListAttempts)
	quizzes.GET("/:id", quizHandler.GetQuiz)
	quizzes.POST("/:id/submit", quizHandler.SubmitQuiz, rateLimitMiddleware.Limit("submit_quiz"))

	admin := e.Group("/v1/admin/quizzes")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("", quizHandler.CreateQuiz)
}
