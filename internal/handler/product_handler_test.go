package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeProductRepo struct {
	products map[string]model.Product
}

func (r *fakeProductRepo) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCode(ctx context.Context, code string) (model.Product, error) {
	p, ok := r.products[code]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.products[p.Code] = p
	return p, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p model.Product) error {
	r.products[p.Code] = p
	return nil
}

func newProductTestContext(t *testing.T, code string) (echo.Context, *httptest.ResponseRecorder, *ProductHandler) {
	t.Helper()

	products := map[string]model.Product{
		"P001": {
			ID:          1,
			Code:        "P001",
			Name:        "Milk",
			Unit:        "本",
			Price:       decimal.RequireFromString("200"),
			DiscountPct: decimal.RequireFromString("10"),
		},
	}
	h := NewProductHandler(usecase.NewProductUsecase(&fakeProductRepo{products: products}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/:code")
	c.SetParamNames("code")
	c.SetParamValues(code)
	return c, rec, h
}

// Test: 商品詳細は割引適用後の単価を含めて返す
func TestProductDetailIncludesDiscountedPrice(t *testing.T) {
	c, rec, h := newProductTestContext(t, "P001")

	err := h.detail(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Code            string `json:"code"`
		Price           string `json:"price"`
		DiscountedPrice string `json:"discounted_price"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "P001", body.Code)
	assert.Equal(t, "200", body.Price)
	assert.Equal(t, "180", body.DiscountedPrice)
}

// Test: 存在しない商品コードは404
func TestProductDetailNotFound(t *testing.T) {
	c, rec, h := newProductTestContext(t, "NOPE")

	err := h.detail(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
