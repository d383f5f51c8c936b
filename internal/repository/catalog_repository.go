package repository

import (
	"context"

	"ecom/internal/domain/model"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *model.Brand) error
	FindByID(ctx context.Context, brandID int64) (model.Brand, error)

	// 削除されていないブランドをslugで取得
	FindBySlug(ctx context.Context, slug string) (model.Brand, error)

	// 削除されていないブランドに同じslugがあるか
	ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error)

	Update(ctx context.Context, brand *model.Brand) error
	List(ctx context.Context, q PageQuery, active bool) ([]model.Brand, int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)

	// nameかslugが一致する既存カテゴリがあるか
	ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID int64) (bool, error)

	Update(ctx context.Context, category *model.Category) error
	List(ctx context.Context, q PageQuery, active bool) ([]model.Category, int64, error)

	// トップレベルカテゴリと、そのアクティブな直下の子（sort_order→name順）
	ListWithSubCategories(ctx context.Context) ([]model.Category, error)

	// 直下の子カテゴリのID一覧
	ListChildIDs(ctx context.Context, parentID int64) ([]int64, error)
}

// 商品一覧の検索条件
type ProductListQuery struct {
	PageQuery

	// カテゴリ本体＋直下の子でのフィルタ（空なら全件）
	CategoryIDs []int64
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, product *model.Product) error
	List(ctx context.Context, q ProductListQuery, active bool) ([]model.Product, int64, error)

	CreateDetail(ctx context.Context, detail *model.ProductDetail) error
	FindDetailByProductID(ctx context.Context, productID int64) (model.ProductDetail, error)
	UpdateDetail(ctx context.Context, detail *model.ProductDetail) error
}
