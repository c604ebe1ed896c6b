package handler

import (
	"nyayapath/internal/domain/entity"
	"nyayapath/internal/usecase"
	"nyayapath/pkg/response"
	"nyayapath/pkg/utils"

	"github.com/labstack/echo/v4"
)

type QuizHandler struct {
	quizUseCase *usecase.QuizUseCase
}

func NewQuizHandler(quizUseCase *usecase.QuizUseCase) *QuizHandler {
	return &QuizHandler{
		quizUseCase: quizUseCase,
	}
}

type submitQuizRequest struct {
	Answers []int `json:"answers" validate:"required,min=1"`
}

func (h *QuizHandler) ListQuizzes(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	quizzes, total, err := h.quizUseCase.ListQuizzes(c.Request().Context(), c.QueryParam("topic"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, quizzes, total, pagination.Page, pagination.PageSize)
}

func (h *QuizHandler) GetQuiz(c echo.Context) error {
	quiz, err := h.quizUseCase.GetQuiz(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quiz)
}

func (h *QuizHandler) SubmitQuiz(c echo.Context) error {
	var req submitQuizRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	submission, err := h.quizUseCase.SubmitQuiz(c.Request().Context(), uid, c.Param("id"), req.Answers)
	if err != nil && submission == nil {
		return response.Error(c, err)
	}
	if err != nil {
		return response.PartialFailure(c, submission, err)
	}

	return response.Success(c, submission)
}

func (h *QuizHandler) ListAttempts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	uid := c.Get("uid").(string)

	attempts, total, err := h.quizUseCase.ListAttempts(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, attempts, total, pagination.Page, pagination.PageSize)
}

func (h *QuizHandler) CreateQuiz(c echo.Context) error {
	var quiz entity.Quiz
	if err := c.Bind(&quiz); err != nil {
		return response.Error(c, err)
	}

	created, err := h.quizUseCase.CreateQuiz(c.Request().Context(), &quiz)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, created)
}
