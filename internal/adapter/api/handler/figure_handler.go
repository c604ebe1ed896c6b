package handler

import (
	"nyayapath/internal/domain/entity"
	"nyayapath/internal/usecase"
	"nyayapath/pkg/response"
	"nyayapath/pkg/utils"

	"github.com/labstack/echo/v4"
)

type FigureHandler struct {
	figureChatUseCase *usecase.FigureChatUseCase
}

func NewFigureHandler(figureChatUseCase *usecase.FigureChatUseCase) *FigureHandler {
	return &FigureHandler{
		figureChatUseCase: figureChatUseCase,
	}
}

type startChatRequest struct {
	FigureID string `json:"figure_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *FigureHandler) ListFigures(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	figures, total, err := h.figureChatUseCase.ListFigures(c.Request().Context(), c.QueryParam("era"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, figures, total, pagination.Page, pagination.PageSize)
}

func (h *FigureHandler) GetFigure(c echo.Context) error {
	figure, err := h.figureChatUseCase.GetFigure(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, figure)
}

func (h *FigureHandler) StartChat(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	chat, greeting, err := h.figureChatUseCase.StartChat(c.Request().Context(), uid, req.FigureID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"chat":     chat,
		"greeting": greeting,
	})
}

func (h *FigureHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	reply, err := h.figureChatUseCase.SendMessage(c.Request().Context(), uid, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reply)
}

func (h *FigureHandler) ListChats(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	uid := c.Get("uid").(string)

	chats, total, err := h.figureChatUseCase.ListChats(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, pagination.Page, pagination.PageSize)
}

func (h *FigureHandler) ListMessages(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	uid := c.Get("uid").(string)

	messages, total, err := h.figureChatUseCase.ListMessages(c.Request().Context(), uid, c.Param("id"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *FigureHandler) CreateFigure(c echo.Context) error {
	var figure entity.Figure
	if err := c.Bind(&figure); err != nil {
		return response.Error(c, err)
	}

	created, err := h.figureChatUseCase.CreateFigure(c.Request().Context(), &figure)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, created)
}
