package handler

import (
	"nyayapath/internal/usecase"
	"nyayapath/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Username     string `json:"username" validate:"omitempty,min=3,max=30"`
	Bio          string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
	PreferredEra string `json:"preferred_era" validate:"omitempty,max=100"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Username:     req.Username,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
		PreferredEra: req.PreferredEra,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
