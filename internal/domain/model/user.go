package model

import "time"

// 利用者（学生・教職員）。学生証バーコードで特定する。
// 台帳エンジンからは参照されるだけで、更新されない。
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"student_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
