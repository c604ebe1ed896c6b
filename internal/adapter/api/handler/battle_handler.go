package handler

import (
	"nyayapath/internal/domain/entity"
	"nyayapath/internal/usecase"
	"nyayapath/pkg/response"

	"github.com/labstack/echo/v4"
)

type BattleHandler struct {
	battleUseCase *usecase.BattleUseCase
}

func NewBattleHandler(battleUseCase *usecase.BattleUseCase) *BattleHandler {
	return &BattleHandler{
		battleUseCase: battleUseCase,
	}
}

type startBattleRequest struct {
	CaseID string `json:"case_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=defense prosecution"`
}

type chooseRequest struct {
	OptionIndex *int `json:"option_index" validate:"required,gte=0,lte=3"`
}

func (h *BattleHandler) Start(c echo.Context) error {
	var req startBattleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	state, err := h.battleUseCase.StartBattle(c.Request().Context(), uid, req.CaseID, entity.CaseRole(req.Role))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, state)
}

func (h *BattleHandler) GetState(c echo.Context) error {
	uid := c.Get("uid").(string)

	outcome, err := h.battleUseCase.GetState(c.Request().Context(), c.Param("id"), uid)
	return respondOutcome(c, outcome, err)
}

func (h *BattleHandler) Ready(c echo.Context) error {
	uid := c.Get("uid").(string)

	outcome, err := h.battleUseCase.Ready(c.Request().Context(), c.Param("id"), uid)
	return respondOutcome(c, outcome, err)
}

func (h *BattleHandler) Choose(c echo.Context) error {
	var req chooseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	outcome, err := h.battleUseCase.Choose(c.Request().Context(), c.Param("id"), uid, *req.OptionIndex)
	return respondOutcome(c, outcome, err)
}

// Continue advances past the results screen. On the final phase the
// payload carries the completion alongside the terminal state; a
// storage failure still returns the outcome with the error surfaced in
// the envelope.
func (h *BattleHandler) Continue(c echo.Context) error {
	uid := c.Get("uid").(string)

	outcome, err := h.battleUseCase.Continue(c.Request().Context(), c.Param("id"), uid)
	return respondOutcome(c, outcome, err)
}

func (h *BattleHandler) Tick(c echo.Context) error {
	uid := c.Get("uid").(string)

	outcome, err := h.battleUseCase.Tick(c.Request().Context(), c.Param("id"), uid)
	return respondOutcome(c, outcome, err)
}

// respondOutcome renders a battle outcome, keeping the computed payload
// visible when only the durability step failed.
func respondOutcome(c echo.Context, outcome *usecase.BattleOutcome, err error) error {
	if err != nil && outcome == nil {
		return response.Error(c, err)
	}
	if err != nil {
		return response.PartialFailure(c, outcome, err)
	}
	return response.Success(c, outcome)
}

func (h *BattleHandler) Abandon(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.battleUseCase.Abandon(c.Request().Context(), c.Param("id"), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Battle abandoned",
	})
}
