package handler

import (
	"net/http"

	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// レジ端末からの購入API
type PurchaseHandler struct {
	uc *usecase.PurchaseUsecase
}

// DI
func NewPurchaseHandler(uc *usecase.PurchaseUsecase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

func (h *PurchaseHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/purchases", h.purchase)
}

type purchaseRequest struct {
	StudentID string `json:"student_id"`
	JANCode   string `json:"jan_code"`
}

func (h *PurchaseHandler) purchase(c echo.Context) error {
	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Purchase(c.Request().Context(), usecase.PurchaseInput{
		StudentID: req.StudentID,
		JANCode:   req.JANCode,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
