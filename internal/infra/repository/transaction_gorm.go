package repository

import (
	"context"
	"errors"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionGormRepository struct {
	db *gorm.DB
}

// DI
func NewTransactionGormRepository(db *gorm.DB) *TransactionGormRepository {
	return &TransactionGormRepository{db: db}
}

// 商品のdelta合計＝現在在庫。エントリが無ければ0。
func (r *TransactionGormRepository) SumDeltaByProductID(ctx context.Context, productID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.StockTransaction{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// 台帳への追記
func (r *TransactionGormRepository) Create(ctx context.Context, tx model.StockTransaction) (model.StockTransaction, error) {
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return model.StockTransaction{}, err
	}
	return tx, nil
}

// 一括追記（入荷インポート）
func (r *TransactionGormRepository) CreateBulk(ctx context.Context, txs []model.StockTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&txs).Error
}

// IDでエントリを取得（参照も解決）
func (r *TransactionGormRepository) FindByID(ctx context.Context, id int64) (model.StockTransaction, error) {
	var tx model.StockTransaction
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("User").Preload("AmendedOf").
		First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StockTransaction{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StockTransaction{}, err
	}
	return tx, nil
}

// IDでエントリを取得（SELECT ... FOR UPDATE）。
// PreloadはJOIN先までロックしてしまうので、ここでは本体行だけを取る。
func (r *TransactionGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.StockTransaction, error) {
	var tx model.StockTransaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StockTransaction{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StockTransaction{}, err
	}
	return tx, nil
}

// idを打ち消すCORRECTIONが既にあるか
func (r *TransactionGormRepository) HasAmendment(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StockTransaction{}).
		Where("amended_of_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 新しい順の一覧。product / user / amended_of を解決して返す。
func (r *TransactionGormRepository) List(ctx context.Context, limit int) ([]model.StockTransaction, error) {
	var txs []model.StockTransaction
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("User").Preload("AmendedOf").
		Order("created_at desc").Order("id desc").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return []model.StockTransaction{}, err
	}
	return txs, nil
}
