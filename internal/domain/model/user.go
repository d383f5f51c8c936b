package model

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Mobile       string `gorm:"type:varchar(30);uniqueIndex;not null" json:"mobile"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`

	// パスワードリセット用OTP（6桁・5分有効）
	ResetOTP       string     `gorm:"column:reset_otp;type:varchar(6)" json:"-"`
	ResetOTPExpire *time.Time `gorm:"column:reset_otp_expire" json:"-"`

	SoftDelete

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
