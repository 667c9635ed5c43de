package repository

import (
	"context"

	"kiosk/internal/domain/model"
)

// 台帳（StockTransaction）の永続化。追記のみ。UPDATE/DELETEは提供しない。
type TransactionRepository interface {
	// 商品のdelta合計（現在在庫）。呼び出し側が張ったロックと同じtxで評価すること。
	SumDeltaByProductID(ctx context.Context, productID int64) (int64, error)

	Create(ctx context.Context, tx model.StockTransaction) (model.StockTransaction, error)

	// 入荷インポートの一括追記。1つのtx内でまとめてINSERTする。
	CreateBulk(ctx context.Context, txs []model.StockTransaction) error

	FindByID(ctx context.Context, id int64) (model.StockTransaction, error)

	// 行ロック付きで取得。訂正の単一性チェックはこのロック下で行う。
	FindByIDForUpdate(ctx context.Context, id int64) (model.StockTransaction, error)

	// idを打ち消すCORRECTIONが既に存在するか
	HasAmendment(ctx context.Context, id int64) (bool, error)

	// 新しい順。product / user / amended_of を解決して返す。
	List(ctx context.Context, limit int) ([]model.StockTransaction, error)
}
