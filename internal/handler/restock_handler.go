package handler

import (
	"errors"
	"net/http"

	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 入荷CSVのアップロード
type RestockHandler struct {
	uc *usecase.RestockImportUsecase
}

// DI
func NewRestockHandler(uc *usecase.RestockImportUsecase) *RestockHandler {
	return &RestockHandler{uc: uc}
}

func (h *RestockHandler) RegisterRoutes(e *echo.Echo, adminGuard echo.MiddlewareFunc) {
	e.POST("/restocks/import", h.importCSV, adminGuard)
}

// バッチ棄却時のレスポンス。created_countは常に0。
type importErrorResponse struct {
	Error        string                `json:"error"`
	Errors       []usecase.ImportIssue `json:"errors"`
	CreatedCount int                   `json:"created_count"`
	SkippedCount int                   `json:"skipped_count"`
}

func (h *RestockHandler) importCSV(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file could not be read"})
	}
	defer f.Close()

	out, err := h.uc.ImportRestocks(c.Request().Context(), usecase.ImportInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	})
	if err != nil {
		var ie *usecase.ImportError
		if errors.As(err, &ie) {
			return c.JSON(ie.Status, importErrorResponse{
				Error:        ie.Message,
				Errors:       ie.Errors,
				CreatedCount: 0,
				SkippedCount: ie.SkippedCount,
			})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
