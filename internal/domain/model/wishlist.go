package model

import "time"

// ウィッシュリストの1エントリ。(user, product)で一意。
type WishlistItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:idx_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
