package model

import "time"

// カテゴリ。parent_idで1段のツリーを表す。
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(500)" json:"image"`

	// 親カテゴリ（nullならトップレベル）
	ParentID *int64 `gorm:"column:parent_id;index" json:"parent_id,omitempty"`

	IsFeatured bool  `gorm:"not null;default:false" json:"is_featured"`
	SortOrder  int64 `gorm:"not null;default:0" json:"sort_order"`

	SoftDelete

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	SubCategories []Category `gorm:"-" json:"sub_categories,omitempty"`
}
