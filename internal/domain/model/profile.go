package model

import "time"

// Userと1:1のプロフィール。登録時にトランザクションで一緒に作る。
type Profile struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null" json:"email"`
	Role  Role   `gorm:"type:varchar(20);not null" json:"role"`

	Avatar      string     `gorm:"type:varchar(500)" json:"avatar"`
	Phone       string     `gorm:"type:varchar(30)" json:"phone"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Bio         string     `gorm:"type:text" json:"bio"`
	KYCVerified bool       `gorm:"column:kyc_verified;not null;default:false" json:"kyc_verified"`

	Addresses []Address `gorm:"foreignKey:ProfileID" json:"addresses"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 配送先住所（プロフィールに複数ぶら下がる）
type Address struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID int64  `gorm:"not null;index" json:"profile_id"`
	Label     string `gorm:"type:varchar(50);not null;default:'Home'" json:"label"`

	Street     string `gorm:"type:varchar(255)" json:"street"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	State      string `gorm:"type:varchar(100)" json:"state"`
	Country    string `gorm:"type:varchar(100)" json:"country"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`

	IsDefault bool `gorm:"not null;default:false" json:"is_default"`
}
