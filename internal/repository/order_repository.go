package repository

import (
	"context"

	"ecom/internal/domain/model"
)

type OrderRepository interface {
	// 明細ごと作成する
	Create(ctx context.Context, order *model.Order) error

	// 明細付きで1件取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// 自分の注文一覧（新しい順）
	ListByUserID(ctx context.Context, userID int64, q PageQuery) ([]model.Order, int64, error)

	// ステータス・支払いなどの更新を保存
	Save(ctx context.Context, order *model.Order) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	ListByResource(ctx context.Context, resource model.AuditResourceType, resourceID int64) ([]model.AuditLog, error)
}
