package repository

import (
	"context"
	"errors"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"gorm.io/gorm"
)

type RatingGormRepository struct {
	db *gorm.DB
}

// DI
func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingGormRepository) FindByID(ctx context.Context, ratingID int64) (model.Rating, error) {
	var rt model.Rating
	err := r.db.WithContext(ctx).First(&rt, ratingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Rating{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Rating{}, err
	}
	return rt, nil
}

// 削除済みも含めて数える（復元で重複しないように）
func (r *RatingGormRepository) ExistsByProductAndUser(ctx context.Context, productID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RatingGormRepository) Update(ctx context.Context, rating *model.Rating) error {
	res := r.db.WithContext(ctx).Save(rating)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RatingGormRepository) List(ctx context.Context, q repo.PageQuery, active bool) ([]model.Rating, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&model.Rating{}).Where("is_active = ?", active)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Rating{}, 0, err
	}

	var ratings []model.Rating
	if err := tx.Order("id desc").Offset(q.Offset()).Limit(q.Size).Find(&ratings).Error; err != nil {
		return []model.Rating{}, 0, err
	}

	return ratings, total, nil
}
