package usecase_test

import (
	"context"
	"strings"
	"testing"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
	"kiosk/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByStudentID(ctx context.Context, studentID string) (model.User, error) {
	args := m.Called(ctx, studentID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByJANCode(ctx context.Context, janCode string) (model.Product, error) {
	args := m.Called(ctx, janCode)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByJANCodeForUpdate(ctx context.Context, janCode string) (model.Product, error) {
	args := m.Called(ctx, janCode)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type LedgerRepoMock struct{ mock.Mock }

func (m *LedgerRepoMock) SumDeltaByProductID(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LedgerRepoMock) Create(ctx context.Context, tx model.StockTransaction) (model.StockTransaction, error) {
	args := m.Called(ctx, tx)
	created, _ := args.Get(0).(model.StockTransaction)
	return created, args.Error(1)
}

func (m *LedgerRepoMock) CreateBulk(ctx context.Context, txs []model.StockTransaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *LedgerRepoMock) FindByID(ctx context.Context, id int64) (model.StockTransaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(model.StockTransaction)
	return tx, args.Error(1)
}

func (m *LedgerRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.StockTransaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(model.StockTransaction)
	return tx, args.Error(1)
}

func (m *LedgerRepoMock) HasAmendment(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerRepoMock) List(ctx context.Context, limit int) ([]model.StockTransaction, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.StockTransaction)
	return items, args.Error(1)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) NotifyLowStock(ctx context.Context, alert usecase.LowStockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

// モックのrepo群をそのままTxReposとして見せるTransactionManager。
// ロックの検証はしない（直列実行のユニットテスト用）。
type stubTxManager struct {
	users    *UserRepoMock
	products *ProductRepoMock
	ledger   *LedgerRepoMock
}

func (m *stubTxManager) Users() repo.UserRepository         { return m.users }
func (m *stubTxManager) Products() repo.ProductRepository   { return m.products }
func (m *stubTxManager) Ledger() repo.TransactionRepository { return m.ledger }

func (m *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m)
}

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error containing %q, got %q", want, err.Error())
	}
}
