package usecase_test

import (
	"context"
	"testing"
	"time"

	"ecom/internal/domain/model"
	"ecom/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBrandUsecase(bRepo *BrandRepoMock) *usecase.BrandUsecase {
	return usecase.NewBrandUsecase(bRepo, &fixedClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)})
}

// nameからslugが作られる
func TestBrandUsecase_Create_Slug(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BrandRepoMock)
	uc := newBrandUsecase(bRepo)

	bRepo.On("ExistsBySlug", mock.Anything, "blue-bottle-coffee", int64(0)).Return(false, nil)
	bRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Brand) bool {
		return b.Slug == "blue-bottle-coffee" && b.IsActive && b.CreatedBy == 9
	})).Return(nil)

	brand, err := uc.Create(ctx, 9, usecase.CreateBrandInput{Name: "Blue Bottle Coffee"})
	assert.NoError(t, err)
	assert.Equal(t, "blue-bottle-coffee", brand.Slug)

	bRepo.AssertExpectations(t)
}

// 未削除の中に同じslugがあれば拒否
func TestBrandUsecase_Create_DuplicateSlug(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BrandRepoMock)
	uc := newBrandUsecase(bRepo)

	bRepo.On("ExistsBySlug", mock.Anything, "nike", int64(0)).Return(true, nil)

	_, err := uc.Create(ctx, 9, usecase.CreateBrandInput{Name: "Nike"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	bRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// rename時はslugも作り直す（自分自身は重複チェックから除外）
func TestBrandUsecase_Update_RegeneratesSlug(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BrandRepoMock)
	uc := newBrandUsecase(bRepo)

	bRepo.On("FindByID", mock.Anything, int64(2)).
		Return(model.Brand{ID: 2, Name: "Old Name", Slug: "old-name",
			SoftDelete: model.SoftDelete{IsActive: true}}, nil)
	bRepo.On("ExistsBySlug", mock.Anything, "new-name", int64(2)).Return(false, nil)
	bRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Brand) bool {
		return b.Slug == "new-name" && b.Name == "New Name"
	})).Return(nil)

	name := "New Name"
	err := uc.Update(ctx, 2, usecase.UpdateBrandInput{Name: &name})
	assert.NoError(t, err)

	bRepo.AssertExpectations(t)
}

// 削除で3つのマーカーが立つ
func TestBrandUsecase_SoftDelete_SetsMarkers(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BrandRepoMock)
	uc := newBrandUsecase(bRepo)

	bRepo.On("FindByID", mock.Anything, int64(2)).
		Return(model.Brand{ID: 2, Name: "Nike", Slug: "nike",
			SoftDelete: model.SoftDelete{IsActive: true}}, nil)
	bRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Brand) bool {
		return !b.IsActive && b.DeletedAt != nil && b.DeletedBy != nil && *b.DeletedBy == 9
	})).Return(nil)

	err := uc.SoftDelete(ctx, 9, 2)
	assert.NoError(t, err)

	bRepo.AssertExpectations(t)
}

// 復元でマーカーが消える
func TestBrandUsecase_Restore_ClearsMarkers(t *testing.T) {
	ctx := context.Background()

	now := time.Now()
	actor := int64(9)

	bRepo := new(BrandRepoMock)
	uc := newBrandUsecase(bRepo)

	bRepo.On("FindByID", mock.Anything, int64(2)).
		Return(model.Brand{ID: 2, Name: "Nike", Slug: "nike",
			SoftDelete: model.SoftDelete{IsActive: false, DeletedAt: &now, DeletedBy: &actor}}, nil)
	bRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Brand) bool {
		return b.IsActive && b.DeletedAt == nil && b.DeletedBy == nil
	})).Return(nil)

	err := uc.Restore(ctx, 2)
	assert.NoError(t, err)

	bRepo.AssertExpectations(t)
}
