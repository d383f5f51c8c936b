package repository

import (
	"context"

	"ecom/internal/domain/model"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	FindByID(ctx context.Context, ratingID int64) (model.Rating, error)

	// (product, user)のレビューが既にあるか（削除済み含む）
	ExistsByProductAndUser(ctx context.Context, productID, userID int64) (bool, error)

	Update(ctx context.Context, rating *model.Rating) error
	List(ctx context.Context, q PageQuery, active bool) ([]model.Rating, int64, error)
}

type WishlistRepository interface {
	// 既にあればErrDuplicate
	Add(ctx context.Context, item *model.WishlistItem) error

	// 無ければErrNotFound
	Remove(ctx context.Context, userID, productID int64) error

	Clear(ctx context.Context, userID int64) error

	// ウィッシュリスト内の商品をページングで返す
	ListProducts(ctx context.Context, userID int64, q PageQuery) ([]model.Product, int64, error)
}
