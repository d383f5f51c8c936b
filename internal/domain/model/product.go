package model

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	// グローバルに一意。タイトル変更時に作り直す。
	Slug string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`

	BrandID    *int64 `gorm:"index" json:"brand_id,omitempty"`
	CategoryID *int64 `gorm:"index" json:"category_id,omitempty"`

	Thumbnail string         `gorm:"type:varchar(500)" json:"thumbnail"`
	Images    datatypes.JSON `gorm:"type:json" json:"images"`

	Price float64 `gorm:"not null" json:"price"`

	// 設定されていれば表示・カート・注文すべてでこちらを使う
	DiscountPrice *float64 `json:"discount_price,omitempty"`

	CreatedBy int64 `gorm:"not null" json:"created_by"`

	SoftDelete

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 実売価格（割引があれば割引価格）
func (p *Product) SellingPrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}
