package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
	"kiosk/internal/validator"
)

type ProductUsecase struct {
	products repo.ProductRepository
	tx       repo.TransactionManager

	//alert_threshold未指定時の既定値
	defaultAlertThreshold int64
}

// DI
func NewProductUsecase(products repo.ProductRepository, tx repo.TransactionManager, defaultAlertThreshold int64) *ProductUsecase {
	return &ProductUsecase{
		products:              products,
		tx:                    tx,
		defaultAlertThreshold: defaultAlertThreshold,
	}
}

type RegisterProductInput struct {
	JANCode        string  `json:"jan_code" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Price          int64   `json:"price" validate:"gte=0"`
	ImageURL       *string `json:"image_url" validate:"omitempty,url"`
	AlertThreshold *int64  `json:"alert_threshold"`
}

// 商品の新規登録。JANコード重複は409で返す。
func (u *ProductUsecase) RegisterProduct(ctx context.Context, in RegisterProductInput) (model.Product, error) {
	in.JANCode = strings.TrimSpace(in.JANCode)
	in.Name = strings.TrimSpace(in.Name)

	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("validation failed: %s", errs[0]))
	}
	if in.AlertThreshold != nil && *in.AlertThreshold < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "alert_threshold must be >= 0")
	}

	threshold := u.defaultAlertThreshold
	if in.AlertThreshold != nil {
		threshold = *in.AlertThreshold
	}

	p, err := u.products.Create(ctx, model.Product{
		JANCode:        in.JANCode,
		Name:           in.Name,
		Price:          in.Price,
		ImageURL:       in.ImageURL,
		AlertThreshold: threshold,
	})
	if err == repo.ErrDuplicate {
		//同時登録でunique制約に当たるケースもここに落ちる
		return model.Product{}, NewHTTPError(http.StatusConflict, "jan_code_taken")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type ProductWithStock struct {
	model.Product
	CurrentStock int64 `json:"current_stock"`
}

// 商品一覧。現在在庫（delta合計）を添えて返す。
func (u *ProductUsecase) ListProducts(ctx context.Context) ([]ProductWithStock, error) {
	var out []ProductWithStock

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = make([]ProductWithStock, 0, len(products))
		for _, p := range products {
			stock, err := r.Ledger().SumDeltaByProductID(ctx, p.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = append(out, ProductWithStock{Product: p, CurrentStock: stock})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateProductInput struct {
	Name           *string `json:"name"`
	Price          *int64  `json:"price"`
	ImageURL       *string `json:"image_url"`
	AlertThreshold *int64  `json:"alert_threshold"`
}

// 商品の部分更新。jan_codeは変更できない。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.AlertThreshold != nil && *in.AlertThreshold < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "alert_threshold must be >= 0")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not_found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ImageURL != nil {
		p.ImageURL = in.ImageURL
	}
	if in.AlertThreshold != nil {
		p.AlertThreshold = *in.AlertThreshold
	}

	if err := u.products.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not_found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
