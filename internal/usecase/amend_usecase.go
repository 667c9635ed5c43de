package usecase

import (
	"context"
	"fmt"
	"net/http"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
)

type AmendUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewAmendUsecase(tx repo.TransactionManager) *AmendUsecase {
	return &AmendUsecase{tx: tx}
}

// 台帳エントリを打ち消すCORRECTIONを追記する。
// 対象行をロックした上でチェックするので、同じエントリへの同時訂正は
// 片方がalready_amendedになる。
func (u *AmendUsecase) Amend(ctx context.Context, txID int64) (model.StockTransaction, error) {
	if txID <= 0 {
		return model.StockTransaction{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.StockTransaction

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orig, err := r.Ledger().FindByIDForUpdate(ctx, txID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not_found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//CORRECTIONの打ち消しは禁止（打ち消しの連鎖を作らない）
		if orig.Type == model.TxTypeCorrection {
			return NewHTTPError(http.StatusBadRequest, "cannot_amend_correction")
		}

		//訂正は1エントリにつき1回まで
		amended, err := r.Ledger().HasAmendment(ctx, orig.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if amended {
			return NewHTTPError(http.StatusConflict, "already_amended")
		}

		origID := orig.ID
		created, err := r.Ledger().Create(ctx, model.StockTransaction{
			ProductID:   orig.ProductID,
			UserID:      orig.UserID,
			Type:        model.TxTypeCorrection,
			Delta:       -orig.Delta,
			Description: fmt.Sprintf("amend of %d", orig.ID),
			AmendedOfID: &origID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//参照（product / user / amended_of）を解決して返す
		out, err = r.Ledger().FindByID(ctx, created.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return model.StockTransaction{}, err
	}
	return out, nil
}
