package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseの型付きエラーをHTTPステータスへ写す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message})
	}

	var pnf *usecase.ProductNotFoundError
	if errors.As(err, &pnf) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: pnf.Error()})
	}
	var inf *usecase.InventoryNotFoundError
	if errors.As(err, &inf) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: inf.Error()})
	}

	var is *usecase.InsufficientStockError
	if errors.As(err, &is) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: is.Error()})
	}
	var isq *usecase.InsufficientStoreQuantityError
	if errors.As(err, &isq) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: isq.Error()})
	}

	//台帳の不整合は運用者による突き合わせが必要
	var be *usecase.BatchExhaustionError
	if errors.As(err, &be) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: be.Error()})
	}
	var nab *usecase.NoAvailableBatchError
	if errors.As(err, &nab) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: nab.Error()})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
