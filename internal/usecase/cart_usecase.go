package usecase

import (
	"context"
	"fmt"
	"net/http"

	repo "ecom/internal/repository"
)

type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

// カート表示用の1行。実売価格は表示時点の商品から引く。
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartOutput struct {
	CartID int64      `json:"cart_id"`
	Items  []CartLine `json:"items"`
	Total  float64    `json:"total"`
}

// カート取得。無ければ空のカートを作って返す。
func (u *CartUsecase) Get(ctx context.Context, userID int64) (CartOutput, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := CartOutput{CartID: cart.ID, Items: []CartLine{}}
	for _, item := range items {
		product, err := u.productRepo.FindByID(ctx, item.ProductID)
		if err == repo.ErrNotFound {
			// 商品が消えた行は表示しない
			continue
		}
		if err != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		price := product.SellingPrice()
		line := CartLine{
			ProductID: product.ID,
			Title:     product.Title,
			Thumbnail: product.Thumbnail,
			Price:     price,
			Quantity:  item.Quantity,
			Subtotal:  price * float64(item.Quantity),
		}
		out.Items = append(out.Items, line)
		out.Total += line.Subtotal
	}

	return out, nil
}

type ApplyDeltaInput struct {
	ProductID int64
	Quantity  int64 // 符号付きの増減
}

// 数量を増減する単一エンドポイントの本体。
// 新数量 = 現数量 + delta。在庫超過は拒否、0以下は行削除。
func (u *CartUsecase) ApplyDelta(ctx context.Context, userID int64, in ApplyDeltaInput) (CartOutput, error) {
	product, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !product.IsActive {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var current int64
	items, err := u.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, item := range items {
		if item.ProductID == in.ProductID {
			current = item.Quantity
			break
		}
	}

	next := current + in.Quantity

	if next <= 0 {
		if current > 0 {
			if err := u.cartRepo.RemoveItem(ctx, cart.ID, in.ProductID); err != nil && err != repo.ErrNotFound {
				return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return u.Get(ctx, userID)
	}

	// 在庫チェック
	detail, err := u.productRepo.FindDetailByProductID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "Product detail not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if next > detail.Stock {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Only %d items available in stock", detail.Stock))
	}

	if err := u.cartRepo.SetItemQuantity(ctx, cart.ID, in.ProductID, next); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, userID)
}
