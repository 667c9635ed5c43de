package usecase_test

import (
	"context"
	"errors"
	"testing"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
	"kiosk/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPurchaseFixture() (*stubTxManager, *NotifierMock, *usecase.PurchaseUsecase) {
	tm := &stubTxManager{
		users:    new(UserRepoMock),
		products: new(ProductRepoMock),
		ledger:   new(LedgerRepoMock),
	}
	notifier := new(NotifierMock)
	return tm, notifier, usecase.NewPurchaseUsecase(tm, notifier)
}

func TestPurchase_Success(t *testing.T) {
	ctx := context.Background()
	tm, notifier, uc := newPurchaseFixture()

	user := model.User{ID: 7, StudentID: "S1234", Name: "山田"}
	product := model.Product{ID: 3, JANCode: "4901234567894", Name: "コーヒー", Price: 120, AlertThreshold: 3}

	tm.users.On("FindByStudentID", mock.Anything, "S1234").Return(user, nil)
	tm.products.On("FindByJANCodeForUpdate", mock.Anything, "4901234567894").Return(product, nil)
	tm.ledger.On("SumDeltaByProductID", mock.Anything, int64(3)).Return(int64(10), nil)
	tm.ledger.On("Create", mock.Anything, mock.MatchedBy(func(tx model.StockTransaction) bool {
		return tx.ProductID == 3 &&
			tx.Type == model.TxTypePurchase &&
			tx.Delta == -1 &&
			tx.UserID != nil && *tx.UserID == 7
	})).Return(model.StockTransaction{ID: 100}, nil)

	out, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "S1234", JANCode: "4901234567894"})
	assert.NoError(t, err)
	assert.Equal(t, "コーヒー", out.ProductName)
	assert.Equal(t, "4901234567894", out.JANCode)
	assert.Equal(t, int64(120), out.Price)
	assert.Equal(t, int64(9), out.Remaining)

	//在庫が閾値より上なら通知は飛ばない
	notifier.AssertNotCalled(t, "NotifyLowStock", mock.Anything, mock.Anything)
	tm.ledger.AssertExpectations(t)
}

func TestPurchase_UserNotFound(t *testing.T) {
	ctx := context.Background()
	tm, _, uc := newPurchaseFixture()

	tm.users.On("FindByStudentID", mock.Anything, "unknown").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "unknown", JANCode: "4901234567894"})
	assertErrContains(t, err, "user_not_found")

	//商品ロックも書き込みも起きない
	tm.products.AssertNotCalled(t, "FindByJANCodeForUpdate", mock.Anything, mock.Anything)
	tm.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchase_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	tm, _, uc := newPurchaseFixture()

	tm.users.On("FindByStudentID", mock.Anything, "S1234").Return(model.User{ID: 7}, nil)
	tm.products.On("FindByJANCodeForUpdate", mock.Anything, "000").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "S1234", JANCode: "000"})
	assertErrContains(t, err, "product_not_found")
	tm.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchase_OutOfStock(t *testing.T) {
	ctx := context.Background()
	tm, notifier, uc := newPurchaseFixture()

	tm.users.On("FindByStudentID", mock.Anything, "S1234").Return(model.User{ID: 7}, nil)
	tm.products.On("FindByJANCodeForUpdate", mock.Anything, "4901234567894").
		Return(model.Product{ID: 3, JANCode: "4901234567894"}, nil)
	tm.ledger.On("SumDeltaByProductID", mock.Anything, int64(3)).Return(int64(0), nil)

	_, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "S1234", JANCode: "4901234567894"})
	assertErrContains(t, err, "out_of_stock")

	tm.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyLowStock", mock.Anything, mock.Anything)
}

func TestPurchase_NotifiesAtThreshold(t *testing.T) {
	ctx := context.Background()
	tm, notifier, uc := newPurchaseFixture()

	user := model.User{ID: 7, StudentID: "S1234"}
	product := model.Product{ID: 3, JANCode: "4901234567894", Name: "コーヒー", AlertThreshold: 3}

	tm.users.On("FindByStudentID", mock.Anything, "S1234").Return(user, nil)
	tm.products.On("FindByJANCodeForUpdate", mock.Anything, "4901234567894").Return(product, nil)
	//残り4 → 購入後3 = 閾値ちょうどで通知
	tm.ledger.On("SumDeltaByProductID", mock.Anything, int64(3)).Return(int64(4), nil)
	tm.ledger.On("Create", mock.Anything, mock.Anything).Return(model.StockTransaction{ID: 100}, nil)

	notifier.On("NotifyLowStock", mock.Anything, usecase.LowStockAlert{
		ProductName: "コーヒー",
		JANCode:     "4901234567894",
		Remaining:   3,
	}).Return(nil).Once()

	out, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "S1234", JANCode: "4901234567894"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Remaining)

	notifier.AssertExpectations(t)
}

func TestPurchase_NotifierFailureDoesNotFailPurchase(t *testing.T) {
	ctx := context.Background()
	tm, notifier, uc := newPurchaseFixture()

	user := model.User{ID: 7, StudentID: "S1234"}
	product := model.Product{ID: 3, JANCode: "4901234567894", Name: "コーヒー", AlertThreshold: 3}

	tm.users.On("FindByStudentID", mock.Anything, "S1234").Return(user, nil)
	tm.products.On("FindByJANCodeForUpdate", mock.Anything, "4901234567894").Return(product, nil)
	tm.ledger.On("SumDeltaByProductID", mock.Anything, int64(3)).Return(int64(1), nil)
	tm.ledger.On("Create", mock.Anything, mock.Anything).Return(model.StockTransaction{ID: 100}, nil)

	notifier.On("NotifyLowStock", mock.Anything, mock.Anything).Return(errors.New("webhook down")).Once()

	out, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "S1234", JANCode: "4901234567894"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Remaining)
}

func TestPurchase_BlankInput(t *testing.T) {
	ctx := context.Background()
	_, _, uc := newPurchaseFixture()

	_, err := uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "", JANCode: "4901234567894"})
	assertErrContains(t, err, "student_id required")

	_, err = uc.Purchase(ctx, usecase.PurchaseInput{StudentID: "S1234", JANCode: "  "})
	assertErrContains(t, err, "jan_code required")
}
