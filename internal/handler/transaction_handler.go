package handler

import (
	"net/http"
	"strconv"

	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 台帳の閲覧と訂正
type TransactionHandler struct {
	listUC  *usecase.TransactionUsecase
	amendUC *usecase.AmendUsecase
}

// DI
func NewTransactionHandler(listUC *usecase.TransactionUsecase, amendUC *usecase.AmendUsecase) *TransactionHandler {
	return &TransactionHandler{listUC: listUC, amendUC: amendUC}
}

func (h *TransactionHandler) RegisterRoutes(e *echo.Echo, adminGuard echo.MiddlewareFunc) {
	e.GET("/transactions", h.list)
	e.GET("/transactions/:id", h.detail)
	e.POST("/transactions/:id/amend", h.amend, adminGuard)
}

func (h *TransactionHandler) list(c echo.Context) error {
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	txs, err := h.listUC.ListTransactions(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, txs)
}

func (h *TransactionHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	tx, err := h.listUC.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) amend(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	created, err := h.amendUC.Amend(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}
