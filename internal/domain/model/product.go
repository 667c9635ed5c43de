package model

import "time"

// 商品。JANコードは登録後変更不可。
// 在庫数は持たない（StockTransactionのdelta合計が唯一の真実）。
type Product struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	JANCode string `gorm:"type:varchar(20);uniqueIndex;not null" json:"jan_code"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`

	// 単価（円、整数）
	Price int64 `gorm:"not null" json:"price"`

	ImageURL *string `gorm:"type:varchar(500)" json:"image_url,omitempty"`

	// 在庫がこの数以下になったら通知する閾値
	AlertThreshold int64 `gorm:"not null;default:3" json:"alert_threshold"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
