package model

import "time"

type Brand struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string `gorm:"type:varchar(120);not null;index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// ロゴは外部ストレージのURLをそのまま持つ
	Logo    string `gorm:"type:varchar(500)" json:"logo"`
	Website string `gorm:"type:varchar(255)" json:"website"`

	SEOMetaTitle       string `gorm:"column:seo_meta_title;type:varchar(70)" json:"seo_meta_title"`
	SEOMetaDescription string `gorm:"column:seo_meta_description;type:varchar(160)" json:"seo_meta_description"`

	CreatedBy int64 `gorm:"not null" json:"created_by"`

	SoftDelete

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
