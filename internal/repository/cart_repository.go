package repository

import (
	"context"

	"ecom/internal/domain/model"
)

type CartRepository interface {
	// ユーザーのカートを取得し、無ければ作る
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)

	ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error)

	// 明細の数量を絶対値で設定（無ければ作る）
	SetItemQuantity(ctx context.Context, cartID, productID, quantity int64) error

	RemoveItem(ctx context.Context, cartID, productID int64) error

	// 全明細を削除（チェックアウト後）
	ClearItems(ctx context.Context, cartID int64) error
}
