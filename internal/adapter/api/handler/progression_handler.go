package handler

import (
	"strconv"

	"nyayapath/internal/usecase"
	"nyayapath/pkg/response"

	"github.com/labstack/echo/v4"
)

type ProgressionHandler struct {
	progressionUseCase *usecase.ProgressionUseCase
}

func NewProgressionHandler(progressionUseCase *usecase.ProgressionUseCase) *ProgressionHandler {
	return &ProgressionHandler{
		progressionUseCase: progressionUseCase,
	}
}

func (h *ProgressionHandler) GetProgress(c echo.Context) error {
	uid := c.Get("uid").(string)

	view, err := h.progressionUseCase.GetProgress(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ProgressionHandler) Leaderboard(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	top, err := h.progressionUseCase.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, top)
}
