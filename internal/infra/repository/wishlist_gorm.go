package repository

import (
	"context"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"gorm.io/gorm"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

// 既にあればErrDuplicate
func (r *WishlistGormRepository) Add(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.WishlistItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return repo.ErrDuplicate
		}
		return tx.Create(item).Error
	})
}

func (r *WishlistGormRepository) Remove(ctx context.Context, userID, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WishlistGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.WishlistItem{}).Error
}

// ウィッシュリスト内の商品をページングで返す
func (r *WishlistGormRepository) ListProducts(ctx context.Context, userID int64, q repo.PageQuery) ([]model.Product, int64, error) {
	q.Normalize()

	base := r.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("wishlist_items.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	var products []model.Product
	err := r.db.WithContext(ctx).
		Table("products").
		Joins("join wishlist_items on wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.id asc").
		Offset(q.Offset()).Limit(q.Size).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}
