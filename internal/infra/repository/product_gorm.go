package repository

import (
	"context"
	"errors"
	"strings"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// slugはグローバルに一意（削除済みも含めて衝突扱い）
func (r *ProductGormRepository) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&model.Product{}).Where("slug = ?", slug)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, product *model.Product) error {
	res := r.db.WithContext(ctx).Save(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 検索＋カテゴリ（本体または直下の子）フィルタ＋ページング
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery, active bool) ([]model.Product, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", active)

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	if len(q.CategoryIDs) > 0 {
		tx = tx.Where("category_id IN ?", q.CategoryIDs)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	var products []model.Product
	if err := tx.Order("created_at desc").Order("id desc").
		Offset(q.Offset()).Limit(q.Size).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) CreateDetail(ctx context.Context, detail *model.ProductDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *ProductGormRepository) FindDetailByProductID(ctx context.Context, productID int64) (model.ProductDetail, error) {
	var d model.ProductDetail
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductDetail{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductDetail{}, err
	}
	return d, nil
}

func (r *ProductGormRepository) UpdateDetail(ctx context.Context, detail *model.ProductDetail) error {
	res := r.db.WithContext(ctx).Save(detail)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
