package handler

import (
	"net/http"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /stock の入荷API
type StockHandler struct {
	uc *usecase.StockUsecase
}

// DI
func NewStockHandler(uc *usecase.StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/stock/batches", h.receiveBatch)
	g.GET("/stock/movements/:code", h.listMovements)
}

type receiveBatchRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int64  `json:"quantity"`
	ExpiryDate  string `json:"expiry_date"` // YYYY-MM-DD
}

func (h *StockHandler) receiveBatch(c echo.Context) error {
	var req receiveBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expiry_date"})
	}

	batch, err := h.uc.ReceiveBatch(c.Request().Context(), req.ProductCode, req.Quantity, expiry)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, batch)
}

func (h *StockHandler) listMovements(c echo.Context) error {
	items, err := h.uc.ListMovements(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
