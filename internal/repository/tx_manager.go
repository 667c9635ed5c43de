package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	Products() ProductRepository
	Ledger() TransactionRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全体がロールバックされる。行ロックはcommit/rollbackで解放。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
