package usecase_test

import (
	"context"
	"testing"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"
	"ecom/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func stockedProduct(id int64, price float64) model.Product {
	return model.Product{
		ID:         id,
		Title:      "Coffee Beans",
		Slug:       "coffee-beans",
		Price:      price,
		SoftDelete: model.SoftDelete{IsActive: true},
	}
}

// 在庫5・カート2に+10は「Only 5 items available in stock」で拒否、状態は変えない
func TestCartUsecase_ApplyDelta_ExceedsStock(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(10)).Return(stockedProduct(10, 100), nil)
	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{{CartID: 7, ProductID: 10, Quantity: 2}}, nil)
	pRepo.On("FindDetailByProductID", mock.Anything, int64(10)).
		Return(model.ProductDetail{ProductID: 10, Stock: 5}, nil)

	_, err := uc.ApplyDelta(ctx, 1, usecase.ApplyDeltaInput{ProductID: 10, Quantity: 10})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "Only 5 items available in stock", he.Message)

	// 書き込み系は一切呼ばれない
	cRepo.AssertNotCalled(t, "SetItemQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cRepo.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything, mock.Anything)
}

// 在庫5・カート2に+2で数量4になる
func TestCartUsecase_ApplyDelta_Increment(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(10)).Return(stockedProduct(10, 100), nil)
	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{{CartID: 7, ProductID: 10, Quantity: 2}}, nil).Once()
	pRepo.On("FindDetailByProductID", mock.Anything, int64(10)).
		Return(model.ProductDetail{ProductID: 10, Stock: 5}, nil)
	cRepo.On("SetItemQuantity", mock.Anything, int64(7), int64(10), int64(4)).Return(nil)

	// 更新後の再取得
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{{CartID: 7, ProductID: 10, Quantity: 4}}, nil)

	out, err := uc.ApplyDelta(ctx, 1, usecase.ApplyDeltaInput{ProductID: 10, Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(4), out.Items[0].Quantity)
	assert.Equal(t, float64(400), out.Total)

	cRepo.AssertExpectations(t)
}

// 減らして0以下になったら行ごと消える
func TestCartUsecase_ApplyDelta_RemovesLineAtZero(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(10)).Return(stockedProduct(10, 100), nil)
	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{{CartID: 7, ProductID: 10, Quantity: 2}}, nil).Once()
	cRepo.On("RemoveItem", mock.Anything, int64(7), int64(10)).Return(nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).Return([]model.CartItem{}, nil)

	out, err := uc.ApplyDelta(ctx, 1, usecase.ApplyDeltaInput{ProductID: 10, Quantity: -2})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, float64(0), out.Total)

	// 在庫チェックは不要（削除経路）
	pRepo.AssertNotCalled(t, "FindDetailByProductID", mock.Anything, mock.Anything)
	cRepo.AssertExpectations(t)
}

// 商品詳細が無い商品は404
func TestCartUsecase_ApplyDelta_MissingDetail(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(10)).Return(stockedProduct(10, 100), nil)
	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).Return([]model.CartItem{}, nil)
	pRepo.On("FindDetailByProductID", mock.Anything, int64(10)).
		Return(model.ProductDetail{}, repo.ErrNotFound)

	_, err := uc.ApplyDelta(ctx, 1, usecase.ApplyDeltaInput{ProductID: 10, Quantity: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	assert.Equal(t, "Product detail not found", he.Message)

	cRepo.AssertNotCalled(t, "SetItemQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 割引価格があれば合計は割引価格で計算される
func TestCartUsecase_Get_UsesDiscountPrice(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	discount := 80.0
	p := stockedProduct(10, 100)
	p.DiscountPrice = &discount

	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{{CartID: 7, ProductID: 10, Quantity: 3}}, nil)
	pRepo.On("FindByID", mock.Anything, int64(10)).Return(p, nil)

	out, err := uc.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(240), out.Total)
	assert.Equal(t, float64(80), out.Items[0].Price)
}

// 消えた商品の行は表示から落とす
func TestCartUsecase_Get_SkipsMissingProducts(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{
			{CartID: 7, ProductID: 10, Quantity: 1},
			{CartID: 7, ProductID: 11, Quantity: 1},
		}, nil)
	pRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("FindByID", mock.Anything, int64(11)).Return(stockedProduct(11, 50), nil)

	out, err := uc.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(11), out.Items[0].ProductID)
}
