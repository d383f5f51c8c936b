package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	brandRepo    repo.BrandRepository
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
	clock        Clock
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	brandRepo repo.BrandRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		clock:        clock,
	}
}

type CreateProductInput struct {
	Title         string
	BrandID       *int64
	CategoryID    *int64
	Thumbnail     string
	Images        []string
	Price         float64
	DiscountPrice *float64

	Description    string
	Specifications map[string]interface{}
	Stock          int64
	Warranty       string
	ShippingInfo   string
	ReturnPolicy   string
}

// 商品＋詳細を作成する。slugはtitleから生成し全体で一意。
func (u *ProductUsecase) Create(ctx context.Context, actorID int64, in CreateProductInput) (ProductOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Product title is required")
	}
	if in.Price <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Product price must be positive")
	}
	if in.DiscountPrice != nil && *in.DiscountPrice >= in.Price {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Discount price must be lower than price")
	}

	s := slug.Make(title)
	exists, err := u.productRepo.ExistsBySlug(ctx, s, 0)
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Product already exists")
	}

	// ブランド・カテゴリは存在かつアクティブなものだけ許す
	if in.BrandID != nil {
		brand, err := u.brandRepo.FindByID(ctx, *in.BrandID)
		if err == repo.ErrNotFound {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Brand not found")
		}
		if err != nil {
			return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !brand.IsActive {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Brand not found")
		}
	}
	if in.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(ctx, *in.CategoryID)
		if err == repo.ErrNotFound {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Category not found")
		}
		if err != nil {
			return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !category.IsActive {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Category not found")
		}
	}

	product := model.Product{
		Title:         title,
		Slug:          s,
		BrandID:       in.BrandID,
		CategoryID:    in.CategoryID,
		Thumbnail:     in.Thumbnail,
		Images:        marshalImages(in.Images),
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		CreatedBy:     actorID,
		SoftDelete:    model.SoftDelete{IsActive: true},
	}

	if err := u.productRepo.Create(ctx, &product); err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	detail := model.ProductDetail{
		ProductID:      product.ID,
		Description:    in.Description,
		Specifications: in.Specifications,
		Stock:          in.Stock,
		Warranty:       in.Warranty,
		ShippingInfo:   in.ShippingInfo,
		ReturnPolicy:   in.ReturnPolicy,
	}
	if err := u.productRepo.CreateDetail(ctx, &detail); err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductOutput{Product: product, Detail: &detail}, nil
}

type UpdateProductInput struct {
	Title         *string
	BrandID       *int64
	CategoryID    *int64
	Thumbnail     *string
	Images        []string
	Price         *float64
	DiscountPrice *float64

	Description    *string
	Specifications map[string]interface{}
	Stock          *int64
	Warranty       *string
	ShippingInfo   *string
	ReturnPolicy   *string
}

// 商品更新。title変更時はslugも作り直す。詳細フィールドも一緒に更新できる。
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) error {
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

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		title := strings.TrimSpace(*in.Title)
		newSlug := slug.Make(title)

		exists, err := u.productRepo.ExistsBySlug(ctx, newSlug, product.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusBadRequest, "Product already exists")
		}

		product.Title = title
		product.Slug = newSlug
	}
	if in.BrandID != nil {
		brand, err := u.brandRepo.FindByID(ctx, *in.BrandID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "Brand not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !brand.IsActive {
			return NewHTTPError(http.StatusBadRequest, "Brand not found")
		}
		product.BrandID = in.BrandID
	}
	if in.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(ctx, *in.CategoryID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "Category not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !category.IsActive {
			return NewHTTPError(http.StatusBadRequest, "Category not found")
		}
		product.CategoryID = in.CategoryID
	}
	if in.Thumbnail != nil {
		product.Thumbnail = *in.Thumbnail
	}
	if in.Images != nil {
		product.Images = marshalImages(in.Images)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return NewHTTPError(http.StatusBadRequest, "Product price must be positive")
		}
		product.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		if *in.DiscountPrice >= product.Price {
			return NewHTTPError(http.StatusBadRequest, "Discount price must be lower than price")
		}
		product.DiscountPrice = in.DiscountPrice
	}

	if err := u.productRepo.Update(ctx, &product); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 詳細側の更新
	if in.Description != nil || in.Specifications != nil || in.Stock != nil ||
		in.Warranty != nil || in.ShippingInfo != nil || in.ReturnPolicy != nil {
		detail, err := u.productRepo.FindDetailByProductID(ctx, product.ID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		created := err == repo.ErrNotFound
		if created {
			detail = model.ProductDetail{ProductID: product.ID}
		}

		if in.Description != nil {
			detail.Description = *in.Description
		}
		if in.Specifications != nil {
			detail.Specifications = in.Specifications
		}
		if in.Stock != nil {
			if *in.Stock < 0 {
				return NewHTTPError(http.StatusBadRequest, "Stock cannot be negative")
			}
			detail.Stock = *in.Stock
		}
		if in.Warranty != nil {
			detail.Warranty = *in.Warranty
		}
		if in.ShippingInfo != nil {
			detail.ShippingInfo = *in.ShippingInfo
		}
		if in.ReturnPolicy != nil {
			detail.ReturnPolicy = *in.ReturnPolicy
		}

		if created {
			err = u.productRepo.CreateDetail(ctx, &detail)
		} else {
			err = u.productRepo.UpdateDetail(ctx, &detail)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return nil
}

func (u *ProductUsecase) SoftDelete(ctx context.Context, actorID, productID int64) error {
	product, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	product.MarkDeleted(actorID, u.clock.Now())

	if err := u.productRepo.Update(ctx, &product); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionSoftDelete, product.ID, true, false)
	return nil
}

func (u *ProductUsecase) Restore(ctx context.Context, actorID, productID int64) error {
	product, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	product.Restore()

	if err := u.productRepo.Update(ctx, &product); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionRestore, product.ID, false, true)
	return nil
}

type ProductListInput struct {
	repo.PageQuery

	// カテゴリ指定時は本体＋直下の子カテゴリの商品も含める
	CategoryID *int64
}

type ProductListOutput struct {
	Products []model.Product
	Total    int64
}

func (u *ProductUsecase) List(ctx context.Context, in ProductListInput, active bool) (ProductListOutput, error) {
	q := repo.ProductListQuery{PageQuery: in.PageQuery}

	if in.CategoryID != nil {
		childIDs, err := u.categoryRepo.ListChildIDs(ctx, *in.CategoryID)
		if err != nil {
			return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		q.CategoryIDs = append([]int64{*in.CategoryID}, childIDs...)
	}

	products, total, err := u.productRepo.List(ctx, q, active)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductListOutput{Products: products, Total: total}, nil
}

type ProductOutput struct {
	Product model.Product        `json:"product"`
	Detail  *model.ProductDetail `json:"detail,omitempty"`
}

// 商品1件を詳細付きで取得。削除済みは404。
func (u *ProductUsecase) GetByID(ctx context.Context, productID int64) (ProductOutput, error) {
	product, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !product.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}

	out := ProductOutput{Product: product}

	detail, err := u.productRepo.FindDetailByProductID(ctx, product.ID)
	if err == nil {
		out.Detail = &detail
	} else if err != repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}

func (u *ProductUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, productID int64, before, after bool) {
	_ = u.auditRepo.Create(ctx, &model.AuditLog{
		ActorUserID: actorID,
		Action:      action,
		Resource:    model.AuditResourceProduct,
		ResourceID:  productID,
		BeforeJSON:  boolStateJSON(before),
		AfterJSON:   boolStateJSON(after),
		CreatedAt:   u.clock.Now(),
	})
}

func marshalImages(images []string) datatypes.JSON {
	if len(images) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	b, err := json.Marshal(images)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
