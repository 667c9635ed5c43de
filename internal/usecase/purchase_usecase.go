package usecase

import (
	"context"
	"log"
	"net/http"
	"strings"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
)

type PurchaseUsecase struct {
	tx       repo.TransactionManager
	notifier Notifier
}

// DI
func NewPurchaseUsecase(tx repo.TransactionManager, notifier Notifier) *PurchaseUsecase {
	return &PurchaseUsecase{tx: tx, notifier: notifier}
}

type PurchaseInput struct {
	StudentID string
	JANCode   string
}

type PurchaseOutput struct {
	ProductName string `json:"product_name"`
	JANCode     string `json:"jan_code"`
	Price       int64  `json:"price"`
	Remaining   int64  `json:"remaining"`
}

// 1点購入。利用者特定→商品行ロック→在庫ガード→PURCHASE追記を
// 1トランザクションで行う。低在庫通知はcommit後にのみ飛ばす。
func (u *PurchaseUsecase) Purchase(ctx context.Context, in PurchaseInput) (PurchaseOutput, error) {
	studentID := strings.TrimSpace(in.StudentID)
	janCode := strings.TrimSpace(in.JANCode)
	if studentID == "" {
		return PurchaseOutput{}, NewHTTPError(http.StatusBadRequest, "student_id required")
	}
	if janCode == "" {
		return PurchaseOutput{}, NewHTTPError(http.StatusBadRequest, "jan_code required")
	}

	var out PurchaseOutput
	var alert *LowStockAlert

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//購入者の特定
		user, err := r.Users().FindByStudentID(ctx, studentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "user_not_found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//商品特定（行ロック）。ロックなしだと最後の1個を同時購入で
		//両方通してしまうので必須。
		p, err := r.Products().FindByJANCodeForUpdate(ctx, janCode)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product_not_found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//現在在庫の確認。必ずロック下で評価する。
		current, err := r.Ledger().SumDeltaByProductID(ctx, p.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if current <= 0 {
			return NewHTTPError(http.StatusConflict, "out_of_stock")
		}

		//購入確定
		userID := user.ID
		_, err = r.Ledger().Create(ctx, model.StockTransaction{
			ProductID: p.ID,
			UserID:    &userID,
			Type:      model.TxTypePurchase,
			Delta:     -1,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		remaining := current - 1
		out = PurchaseOutput{
			ProductName: p.Name,
			JANCode:     p.JANCode,
			Price:       p.Price,
			Remaining:   remaining,
		}

		if remaining <= p.AlertThreshold {
			alert = &LowStockAlert{
				ProductName: p.Name,
				JANCode:     p.JANCode,
				Remaining:   remaining,
			}
		}
		return nil
	})
	if err != nil {
		return PurchaseOutput{}, err
	}

	//通知はcommit後のみ。失敗しても購入は確定済みなのでログに残すだけ。
	if alert != nil {
		if err := u.notifier.NotifyLowStock(ctx, *alert); err != nil {
			log.Printf("low stock notification failed: jan=%s err=%v", alert.JANCode, err)
		}
	}

	return out, nil
}
