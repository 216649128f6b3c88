package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /reports のレポートAPI
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reports/daily-sales", h.dailySales)
	g.GET("/reports/bills", h.bills)
	g.GET("/reports/reorder-levels", h.reorderLevels)
	g.GET("/reports/stock", h.stock)
	g.GET("/reports/reshelve", h.reshelve)
	g.GET("/bills/:serial", h.billDetail)
}

func (h *ReportHandler) dailySales(c echo.Context) error {
	// date（default 今日）
	day := time.Now()
	if v := c.QueryParam("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		}
		day = d
	}

	out, err := h.uc.DailySales(c.Request().Context(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) reorderLevels(c echo.Context) error {
	out, err := h.uc.ReorderLevels(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) stock(c echo.Context) error {
	out, err := h.uc.StockReport(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) reshelve(c echo.Context) error {
	out, err := h.uc.Reshelve(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) bills(c echo.Context) error {
	day := time.Now()
	if v := c.QueryParam("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		}
		day = d
	}

	out, err := h.uc.BillReport(c.Request().Context(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) billDetail(c echo.Context) error {
	serial, err := strconv.ParseInt(c.Param("serial"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid serial"})
	}

	bill, err := h.uc.BillBySerial(c.Request().Context(), serial)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bill)
}
