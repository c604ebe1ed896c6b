package handler

import (
	"nyayapath/internal/domain/entity"
	"nyayapath/internal/usecase"
	"nyayapath/pkg/response"
	"nyayapath/pkg/utils"

	"github.com/labstack/echo/v4"
)

type CaseHandler struct {
	caseUseCase *usecase.CaseUseCase
}

func NewCaseHandler(caseUseCase *usecase.CaseUseCase) *CaseHandler {
	return &CaseHandler{
		caseUseCase: caseUseCase,
	}
}

func (h *CaseHandler) ListCases(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	difficulty := entity.Difficulty(c.QueryParam("difficulty"))

	cases, total, err := h.caseUseCase.ListCases(c.Request().Context(), difficulty, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, cases, total, pagination.Page, pagination.PageSize)
}

func (h *CaseHandler) GetCase(c echo.Context) error {
	scenario, err := h.caseUseCase.GetCase(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, scenario)
}

func (h *CaseHandler) CreateCase(c echo.Context) error {
	var scenario entity.CaseScenario
	if err := c.Bind(&scenario); err != nil {
		return response.Error(c, err)
	}

	created, err := h.caseUseCase.CreateCase(c.Request().Context(), &scenario)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, created)
}

func (h *CaseHandler) UpdateCase(c echo.Context) error {
	var scenario entity.CaseScenario
	if err := c.Bind(&scenario); err != nil {
		return response.Error(c, err)
	}
	scenario.ID = c.Param("id")

	updated, err := h.caseUseCase.UpdateCase(c.Request().Context(), &scenario)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updated)
}

func (h *CaseHandler) DeleteCase(c echo.Context) error {
	if err := h.caseUseCase.DeleteCase(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Case deleted",
	})
}
