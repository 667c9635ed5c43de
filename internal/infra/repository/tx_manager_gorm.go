package repository

import (
	"context"

	repo "kiosk/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users    repo.UserRepository
	products repo.ProductRepository
	ledger   repo.TransactionRepository
}

func (r *txReposGorm) Users() repo.UserRepository         { return r.users }
func (r *txReposGorm) Products() repo.ProductRepository   { return r.products }
func (r *txReposGorm) Ledger() repo.TransactionRepository { return r.ledger }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:    NewUserGormRepository(tx),
			products: NewProductGormRepository(tx),
			ledger:   NewTransactionGormRepository(tx),
		}
		return fn(r)
	})
}
