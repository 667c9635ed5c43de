package handler

import (
	"net/http"

	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 利用者登録
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, adminGuard echo.MiddlewareFunc) {
	e.POST("/users/register", h.register, adminGuard)
}

func (h *UserHandler) register(c echo.Context) error {
	var req usecase.RegisterUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	u, err := h.uc.RegisterUser(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}
