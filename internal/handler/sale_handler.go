package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /sales の販売API
type SaleHandler struct {
	uc *usecase.SaleUsecase
}

// DI
func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func (h *SaleHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sales", h.processSale)
}

type saleLineRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int64  `json:"quantity"`
}

type processSaleRequest struct {
	Lines        []saleLineRequest `json:"lines"`
	CashTendered decimal.Decimal   `json:"cash_tendered"`
	Channel      string            `json:"channel"`
	CustomerID   string            `json:"customer_id,omitempty"`
}

func (h *SaleHandler) processSale(c echo.Context) error {
	var req processSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.SaleLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, usecase.SaleLine{ProductCode: l.ProductCode, Quantity: l.Quantity})
	}

	bill, err := h.uc.ProcessSale(c.Request().Context(), usecase.ProcessSaleInput{
		Lines:        lines,
		CashTendered: req.CashTendered,
		Channel:      model.SaleChannel(req.Channel),
		CustomerID:   req.CustomerID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, bill)
}
