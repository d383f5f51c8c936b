package usecase

import (
	"context"
	"net/http"
	"strings"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/gosimple/slug"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	clock        Clock
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, clock Clock) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, clock: clock}
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
	ParentID    *int64
	IsFeatured  bool
	SortOrder   int64
}

// カテゴリ作成。ツリーは親→子の1段まで。
func (u *CategoryUsecase) Create(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category name is required")
	}

	s := slug.Make(name)

	exists, err := u.categoryRepo.ExistsByNameOrSlug(ctx, name, s, 0)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category already exists")
	}

	// 親の存在と深さを確認
	if in.ParentID != nil {
		parent, err := u.categoryRepo.FindByID(ctx, *in.ParentID)
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "Parent category not found")
		}
		if err != nil {
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if parent.ParentID != nil {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "Nested sub categories are not allowed")
		}
	}

	category := model.Category{
		Name:        name,
		Slug:        s,
		Description: in.Description,
		Image:       in.Image,
		ParentID:    in.ParentID,
		IsFeatured:  in.IsFeatured,
		SortOrder:   in.SortOrder,
		SoftDelete:  model.SoftDelete{IsActive: true},
	}

	if err := u.categoryRepo.Create(ctx, &category); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return category, nil
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
	IsFeatured  *bool
	SortOrder   *int64
}

func (u *CategoryUsecase) Update(ctx context.Context, categoryID int64, in UpdateCategoryInput) error {
	category, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !category.IsActive {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		name := strings.TrimSpace(*in.Name)
		newSlug := slug.Make(name)

		exists, err := u.categoryRepo.ExistsByNameOrSlug(ctx, name, newSlug, category.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusBadRequest, "Category already exists")
		}

		category.Name = name
		category.Slug = newSlug
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Image != nil {
		category.Image = *in.Image
	}
	if in.IsFeatured != nil {
		category.IsFeatured = *in.IsFeatured
	}
	if in.SortOrder != nil {
		category.SortOrder = *in.SortOrder
	}

	if err := u.categoryRepo.Update(ctx, &category); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CategoryUsecase) SoftDelete(ctx context.Context, actorID, categoryID int64) error {
	category, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	category.MarkDeleted(actorID, u.clock.Now())

	if err := u.categoryRepo.Update(ctx, &category); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CategoryUsecase) Restore(ctx context.Context, categoryID int64) error {
	category, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	category.Restore()

	if err := u.categoryRepo.Update(ctx, &category); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type CategoryListOutput struct {
	Categories []model.Category
	Total      int64
}

func (u *CategoryUsecase) List(ctx context.Context, q repo.PageQuery, active bool) (CategoryListOutput, error) {
	categories, total, err := u.categoryRepo.List(ctx, q, active)
	if err != nil {
		return CategoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CategoryListOutput{Categories: categories, Total: total}, nil
}

// トップレベルのカテゴリを子付きで返す（公開画面向け）
func (u *CategoryUsecase) ListWithSubCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.ListWithSubCategories(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *CategoryUsecase) GetByID(ctx context.Context, categoryID int64) (model.Category, error) {
	category, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !category.IsActive {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	return category, nil
}
