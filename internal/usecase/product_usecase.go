package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProductByCode(ctx context.Context, code string) (model.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}

	p, err := u.productRepo.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type CreateProductInput struct {
	Code        string
	Name        string
	Unit        string
	Price       decimal.Decimal
	DiscountPct decimal.Decimal
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)

	if in.Code == "" || len(in.Code) > 20 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}
	if in.Name == "" || len(in.Name) > 255 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Unit == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid unit")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	hundred := decimal.NewFromInt(100)
	if in.DiscountPct.IsNegative() || in.DiscountPct.GreaterThan(hundred) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "discount must be in [0,100]")
	}

	//コード重複チェック
	if _, err := u.productRepo.FindByCode(ctx, in.Code); err == nil {
		return model.Product{}, NewHTTPError(http.StatusConflict, "code already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Code:        in.Code,
		Name:        in.Name,
		Unit:        in.Unit,
		Price:       in.Price,
		DiscountPct: in.DiscountPct,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

type UpdateProductInput struct {
	Name        string
	Unit        string
	Price       decimal.Decimal
	DiscountPct decimal.Decimal
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, code string, in UpdateProductInput) (model.Product, error) {
	p, err := u.GetProductByCode(ctx, code)
	if err != nil {
		return model.Product{}, err
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	hundred := decimal.NewFromInt(100)
	if in.DiscountPct.IsNegative() || in.DiscountPct.GreaterThan(hundred) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "discount must be in [0,100]")
	}
	p.Price = in.Price
	p.DiscountPct = in.DiscountPct

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
