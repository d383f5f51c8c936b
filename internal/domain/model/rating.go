package model

import (
	"time"

	"gorm.io/datatypes"
)

// 商品レビュー。1ユーザー1商品につき1件。
type Rating struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;index;uniqueIndex:idx_product_user" json:"product_id"`
	UserID    int64 `gorm:"not null;index;uniqueIndex:idx_product_user" json:"user_id"`

	Rating int64  `gorm:"not null" json:"rating"` // 1〜5
	Title  string `gorm:"type:varchar(255)" json:"title"`
	Review string `gorm:"type:text" json:"review"`

	Images datatypes.JSON `gorm:"type:json" json:"images"`

	HelpfulVotes     int64 `gorm:"not null;default:0" json:"helpful_votes"`
	VerifiedPurchase bool  `gorm:"not null;default:false" json:"verified_purchase"`

	SoftDelete

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
