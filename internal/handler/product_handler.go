package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /products の商品API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 参照は認証のみ、登録・更新はマネージャー専用
func (h *ProductHandler) RegisterRoutes(g *echo.Group, managerOnly echo.MiddlewareFunc) {
	g.GET("/products", h.list)
	g.GET("/products/:code", h.detail)
	g.POST("/products", h.create, managerOnly)
	g.PUT("/products/:code", h.update, managerOnly)
}

type productResponse struct {
	model.Product

	//割引適用後の単価。レジ画面がそのまま表示できるように計算して返す
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{Product: p, DiscountedPrice: p.DiscountedPrice().Round(2)}
}

func (h *ProductHandler) list(c echo.Context) error {
	items, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProductByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

type productRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Unit:        req.Unit,
		Price:       req.Price,
		DiscountPct: req.DiscountPct,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), c.Param("code"), usecase.UpdateProductInput{
		Name:        req.Name,
		Unit:        req.Unit,
		Price:       req.Price,
		DiscountPct: req.DiscountPct,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}
