package model

import (
	"time"

	"gorm.io/datatypes"
)

// Productと1:1の詳細情報。在庫の正はここだけ。
type ProductDetail struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;uniqueIndex" json:"product_id"`

	Description string `gorm:"type:text" json:"description"`

	// 自由形式のkey-value（色・サイズ・素材など）
	Specifications datatypes.JSONMap `gorm:"type:json" json:"specifications"`

	Stock int64 `gorm:"not null;default:0" json:"stock"`

	Warranty     string `gorm:"type:varchar(100)" json:"warranty"`
	ShippingInfo string `gorm:"type:varchar(255)" json:"shipping_info"`
	ReturnPolicy string `gorm:"type:varchar(255)" json:"return_policy"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
