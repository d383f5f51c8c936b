package model

import "time"

type AuditAction string

const (
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionSoftDelete        AuditAction = "SOFT_DELETE"
	AuditActionRestore           AuditAction = "RESTORE"
)

type AuditResourceType string

const (
	AuditResourceUser     AuditResourceType = "user"
	AuditResourceBrand    AuditResourceType = "brand"
	AuditResourceCategory AuditResourceType = "category"
	AuditResourceProduct  AuditResourceType = "product"
	AuditResourceOrder    AuditResourceType = "order"
	AuditResourceRating   AuditResourceType = "rating"
)

// 管理者操作ログ。「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID int64             `gorm:"not null;index" json:"actor_user_id"`
	Action      AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	Resource    AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource"`
	ResourceID  int64             `gorm:"not null;index" json:"resource_id"`

	// 変更前後をJSON文字列で保存する
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
