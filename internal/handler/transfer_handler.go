package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /transfers の在庫移動API
type TransferHandler struct {
	uc *usecase.TransferUsecase
}

// DI
func NewTransferHandler(uc *usecase.TransferUsecase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

func (h *TransferHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/transfers", h.transfer)
}

type transferRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int64  `json:"quantity"`
	Type        string `json:"type"` // STORE_TO_SHELF / STORE_TO_ONLINE
}

func (h *TransferHandler) transfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.TransferStock(c.Request().Context(), req.ProductCode, req.Quantity, usecase.TransferType(req.Type))
	if err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
