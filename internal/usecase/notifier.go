package usecase

import "context"

// 低在庫アラートの内容
type LowStockAlert struct {
	ProductName string
	JANCode     string
	Remaining   int64
}

// 通知チャネルの約束。実装はinfra側（Discord Webhookなど）。
// 通知はbest-effort：失敗しても購入処理には影響させない。
type Notifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}
