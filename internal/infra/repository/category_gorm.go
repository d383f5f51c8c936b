package repository

import (
	"context"
	"errors"
	"strings"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("name = ? OR slug = ?", name, slug)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, category *model.Category) error {
	res := r.db.WithContext(ctx).Save(category)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) List(ctx context.Context, q repo.PageQuery, active bool) ([]model.Category, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&model.Category{}).Where("is_active = ?", active)

	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Category{}, 0, err
	}

	var categories []model.Category
	if err := tx.Order("sort_order asc").Order("name asc").
		Offset(q.Offset()).Limit(q.Size).Find(&categories).Error; err != nil {
		return []model.Category{}, 0, err
	}

	return categories, total, nil
}

// トップレベルカテゴリに、アクティブな直下の子をぶら下げて返す。
// 子はsort_order→name順。
func (r *CategoryGormRepository) ListWithSubCategories(ctx context.Context) ([]model.Category, error) {
	var parents []model.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL AND is_active = ?", true).
		Order("sort_order asc").Order("name asc").
		Find(&parents).Error
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return []model.Category{}, nil
	}

	parentIDs := make([]int64, 0, len(parents))
	for _, p := range parents {
		parentIDs = append(parentIDs, p.ID)
	}

	var children []model.Category
	err = r.db.WithContext(ctx).
		Where("parent_id IN ? AND is_active = ?", parentIDs, true).
		Order("sort_order asc").Order("name asc").
		Find(&children).Error
	if err != nil {
		return nil, err
	}

	byParent := make(map[int64][]model.Category, len(parents))
	for _, c := range children {
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	for i := range parents {
		parents[i].SubCategories = byParent[parents[i].ID]
	}
	return parents, nil
}

func (r *CategoryGormRepository) ListChildIDs(ctx context.Context, parentID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("parent_id = ?", parentID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
