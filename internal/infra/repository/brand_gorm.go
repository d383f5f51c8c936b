package repository

import (
	"context"
	"errors"
	"strings"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"gorm.io/gorm"
)

type BrandGormRepository struct {
	db *gorm.DB
}

// DI
func NewBrandGormRepository(db *gorm.DB) *BrandGormRepository {
	return &BrandGormRepository{db: db}
}

func (r *BrandGormRepository) Create(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *BrandGormRepository) FindByID(ctx context.Context, brandID int64) (model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).First(&b, brandID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Brand{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Brand{}, err
	}
	return b, nil
}

// 削除されていないブランドをslugで取得
func (r *BrandGormRepository) FindBySlug(ctx context.Context, slug string) (model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Brand{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Brand{}, err
	}
	return b, nil
}

// 同名slugの未削除ブランドがあるか（自分自身は除外）
func (r *BrandGormRepository) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&model.Brand{}).
		Where("slug = ? AND is_active = ?", slug, true)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BrandGormRepository) Update(ctx context.Context, brand *model.Brand) error {
	res := r.db.WithContext(ctx).Save(brand)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BrandGormRepository) List(ctx context.Context, q repo.PageQuery, active bool) ([]model.Brand, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&model.Brand{}).Where("is_active = ?", active)

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Brand{}, 0, err
	}

	var brands []model.Brand
	if err := tx.Order("name asc").Offset(q.Offset()).Limit(q.Size).Find(&brands).Error; err != nil {
		return []model.Brand{}, 0, err
	}

	return brands, total, nil
}
