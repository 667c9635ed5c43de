package repository

import (
	"context"
	"errors"

	"kiosk/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// unique制約違反（JANコード・学生証番号の重複など）
var ErrDuplicate = errors.New("duplicate")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByJANCode(ctx context.Context, janCode string) (model.Product, error)

	// 行ロック付きで取得。購入の在庫ガードはこのロック下で評価する。
	FindByJANCodeForUpdate(ctx context.Context, janCode string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
}
