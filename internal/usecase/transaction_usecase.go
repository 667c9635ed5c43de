package usecase

import (
	"context"
	"net/http"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
)

type TransactionUsecase struct {
	ledger repo.TransactionRepository
}

// DI
func NewTransactionUsecase(ledger repo.TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{ledger: ledger}
}

// 台帳の閲覧（新しい順）
func (u *TransactionUsecase) ListTransactions(ctx context.Context, limit int) ([]model.StockTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	txs, err := u.ledger.List(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return txs, nil
}

func (u *TransactionUsecase) GetTransaction(ctx context.Context, id int64) (model.StockTransaction, error) {
	if id <= 0 {
		return model.StockTransaction{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	tx, err := u.ledger.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.StockTransaction{}, NewHTTPError(http.StatusNotFound, "not_found")
	}
	if err != nil {
		return model.StockTransaction{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return tx, nil
}
