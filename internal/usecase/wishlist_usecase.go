package usecase

import (
	"context"
	"net/http"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

// DI
func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// ウィッシュリストに追加。重複はエラー。
func (u *WishlistUsecase) Add(ctx context.Context, userID, productID int64) error {
	product, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !product.IsActive {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}

	item := model.WishlistItem{UserID: userID, ProductID: productID}
	if err := u.wishlistRepo.Add(ctx, &item); err != nil {
		if err == repo.ErrDuplicate {
			return NewHTTPError(http.StatusBadRequest, "Product already in wishlist")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID, productID int64) error {
	if err := u.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Product not in wishlist")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WishlistUsecase) Clear(ctx context.Context, userID int64) error {
	if err := u.wishlistRepo.Clear(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type WishlistOutput struct {
	Products []model.Product
	Total    int64
}

func (u *WishlistUsecase) List(ctx context.Context, userID int64, q repo.PageQuery) (WishlistOutput, error) {
	products, total, err := u.wishlistRepo.ListProducts(ctx, userID, q)
	if err != nil {
		return WishlistOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return WishlistOutput{Products: products, Total: total}, nil
}
