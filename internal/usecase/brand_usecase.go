package usecase

import (
	"context"
	"net/http"
	"strings"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/gosimple/slug"
)

type BrandUsecase struct {
	brandRepo repo.BrandRepository
	clock     Clock
}

// DI
func NewBrandUsecase(brandRepo repo.BrandRepository, clock Clock) *BrandUsecase {
	return &BrandUsecase{brandRepo: brandRepo, clock: clock}
}

type CreateBrandInput struct {
	Name               string
	Description        string
	Website            string
	Logo               string
	SEOMetaTitle       string
	SEOMetaDescription string
}

// ブランド作成。slugはnameから作る。未削除ブランドの中で一意。
func (u *BrandUsecase) Create(ctx context.Context, actorID int64, in CreateBrandInput) (model.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "Brand name is required")
	}

	s := slug.Make(name)

	exists, err := u.brandRepo.ExistsBySlug(ctx, s, 0)
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "Brand already exists")
	}

	brand := model.Brand{
		Name:               name,
		Slug:               s,
		Description:        in.Description,
		Website:            in.Website,
		Logo:               in.Logo,
		SEOMetaTitle:       in.SEOMetaTitle,
		SEOMetaDescription: in.SEOMetaDescription,
		CreatedBy:          actorID,
		SoftDelete:         model.SoftDelete{IsActive: true},
	}

	if err := u.brandRepo.Create(ctx, &brand); err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return brand, nil
}

type UpdateBrandInput struct {
	Name               *string
	Description        *string
	Website            *string
	Logo               *string
	SEOMetaTitle       *string
	SEOMetaDescription *string
}

// ブランド更新。name変更時はslugも作り直す。
func (u *BrandUsecase) Update(ctx context.Context, brandID int64, in UpdateBrandInput) error {
	brand, err := u.brandRepo.FindByID(ctx, brandID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !brand.IsActive {
		return NewHTTPError(http.StatusNotFound, "Brand not found")
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		name := strings.TrimSpace(*in.Name)
		newSlug := slug.Make(name)

		exists, err := u.brandRepo.ExistsBySlug(ctx, newSlug, brand.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusBadRequest, "Brand already exists")
		}

		brand.Name = name
		brand.Slug = newSlug
	}
	if in.Description != nil {
		brand.Description = *in.Description
	}
	if in.Website != nil {
		brand.Website = *in.Website
	}
	if in.Logo != nil {
		brand.Logo = *in.Logo
	}
	if in.SEOMetaTitle != nil {
		brand.SEOMetaTitle = *in.SEOMetaTitle
	}
	if in.SEOMetaDescription != nil {
		brand.SEOMetaDescription = *in.SEOMetaDescription
	}

	if err := u.brandRepo.Update(ctx, &brand); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *BrandUsecase) SoftDelete(ctx context.Context, actorID, brandID int64) error {
	brand, err := u.brandRepo.FindByID(ctx, brandID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	brand.MarkDeleted(actorID, u.clock.Now())

	if err := u.brandRepo.Update(ctx, &brand); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *BrandUsecase) Restore(ctx context.Context, brandID int64) error {
	brand, err := u.brandRepo.FindByID(ctx, brandID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	brand.Restore()

	if err := u.brandRepo.Update(ctx, &brand); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type BrandListOutput struct {
	Brands []model.Brand
	Total  int64
}

func (u *BrandUsecase) List(ctx context.Context, q repo.PageQuery, active bool) (BrandListOutput, error) {
	brands, total, err := u.brandRepo.List(ctx, q, active)
	if err != nil {
		return BrandListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return BrandListOutput{Brands: brands, Total: total}, nil
}

func (u *BrandUsecase) GetBySlug(ctx context.Context, s string) (model.Brand, error) {
	brand, err := u.brandRepo.FindBySlug(ctx, s)
	if err == repo.ErrNotFound {
		return model.Brand{}, NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return brand, nil
}
