package model

import "time"

// 在庫変動の種別
type TransactionType string

const (
	//購入（在庫減）
	TxTypePurchase TransactionType = "PURCHASE"

	//入荷（在庫増）
	TxTypeRestock TransactionType = "RESTOCK"

	//修正（打ち消し・棚卸し調整）
	TxTypeCorrection TransactionType = "CORRECTION"
)

// 在庫変動の台帳エントリ。すべての在庫変動はここに追記される。
// 作成後のUPDATE/DELETEは禁止。誤りの訂正はCORRECTIONの追記で行う。
type StockTransaction struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//対象商品。エントリが参照している間は商品を消せない。
	ProductID int64    `gorm:"not null;index;constraint:OnDelete:RESTRICT" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	//購入者。利用者が消された場合はNULLに戻すだけで履歴は残す。
	UserID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"user_id,omitempty"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type TransactionType `gorm:"type:varchar(20);not null" json:"type"`

	//変動数。購入ならマイナス、入荷ならプラス。
	Delta int64 `gorm:"not null" json:"delta"`

	//仕入単価（入荷時のみ）
	UnitCost *int64 `json:"unit_cost,omitempty"`

	Description string `gorm:"type:varchar(200)" json:"description"`

	//打ち消し対象のエントリ（CORRECTIONのみ設定）
	AmendedOfID *int64            `gorm:"index" json:"amended_of_id,omitempty"`
	AmendedOf   *StockTransaction `gorm:"foreignKey:AmendedOfID" json:"amended_of,omitempty"`

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
