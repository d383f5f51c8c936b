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

func newRatingUsecase(rRepo *RatingRepoMock, pRepo *ProductRepoMock) *usecase.RatingUsecase {
	return usecase.NewRatingUsecase(rRepo, pRepo, &fixedClock{now: time.Now()})
}

// 同じ(user, product)の2件目は拒否
func TestRatingUsecase_Create_Duplicate(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RatingRepoMock)
	pRepo := new(ProductRepoMock)
	uc := newRatingUsecase(rRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(10)).Return(stockedProduct(10, 100), nil)
	rRepo.On("ExistsByProductAndUser", mock.Anything, int64(10), int64(1)).Return(true, nil)

	_, err := uc.Create(ctx, 1, usecase.CreateRatingInput{ProductID: 10, Rating: 4})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "You have already reviewed this product", he.Message)

	rRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingUsecase_Create_OutOfRange(t *testing.T) {
	ctx := context.Background()

	uc := newRatingUsecase(new(RatingRepoMock), new(ProductRepoMock))

	_, err := uc.Create(ctx, 1, usecase.CreateRatingInput{ProductID: 10, Rating: 6})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestRatingUsecase_Create_Success(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RatingRepoMock)
	pRepo := new(ProductRepoMock)
	uc := newRatingUsecase(rRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(10)).Return(stockedProduct(10, 100), nil)
	rRepo.On("ExistsByProductAndUser", mock.Anything, int64(10), int64(1)).Return(false, nil)
	rRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Rating) bool {
		return r.ProductID == 10 && r.UserID == 1 && r.IsActive
	})).Return(nil)

	rating, err := uc.Create(ctx, 1, usecase.CreateRatingInput{
		ProductID: 10,
		Rating:    5,
		Title:     "great",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), rating.Rating)

	rRepo.AssertExpectations(t)
}

// 他人のレビューは更新できない
func TestRatingUsecase_Update_NotOwner(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RatingRepoMock)
	uc := newRatingUsecase(rRepo, new(ProductRepoMock))

	rRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.Rating{ID: 3, ProductID: 10, UserID: 1, Rating: 4,
			SoftDelete: model.SoftDelete{IsActive: true}}, nil)

	newScore := int64(1)
	err := uc.Update(ctx, 2, 3, usecase.UpdateRatingInput{Rating: &newScore})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

// 管理者は他人のレビューを消せる
func TestRatingUsecase_SoftDelete_AdminOverride(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RatingRepoMock)
	uc := newRatingUsecase(rRepo, new(ProductRepoMock))

	rRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.Rating{ID: 3, ProductID: 10, UserID: 1, Rating: 4,
			SoftDelete: model.SoftDelete{IsActive: true}}, nil)
	rRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Rating) bool {
		return !r.IsActive && r.DeletedAt != nil && r.DeletedBy != nil
	})).Return(nil)

	err := uc.SoftDelete(ctx, 99, model.RoleAdmin, 3)
	assert.NoError(t, err)

	rRepo.AssertExpectations(t)
}
