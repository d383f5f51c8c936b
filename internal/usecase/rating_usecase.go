package usecase

import (
	"context"
	"net/http"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"
)

type RatingUsecase struct {
	ratingRepo  repo.RatingRepository
	productRepo repo.ProductRepository
	clock       Clock
}

// DI
func NewRatingUsecase(ratingRepo repo.RatingRepository, productRepo repo.ProductRepository, clock Clock) *RatingUsecase {
	return &RatingUsecase{ratingRepo: ratingRepo, productRepo: productRepo, clock: clock}
}

type CreateRatingInput struct {
	ProductID int64
	Rating    int64
	Title     string
	Review    string
	Images    []string
}

// レビュー投稿。1ユーザー1商品1件（削除済みも含めて数える）。
func (u *RatingUsecase) Create(ctx context.Context, userID int64, in CreateRatingInput) (model.Rating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return model.Rating{}, NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	product, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return model.Rating{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Rating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !product.IsActive {
		return model.Rating{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}

	exists, err := u.ratingRepo.ExistsByProductAndUser(ctx, in.ProductID, userID)
	if err != nil {
		return model.Rating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Rating{}, NewHTTPError(http.StatusBadRequest, "You have already reviewed this product")
	}

	rating := model.Rating{
		ProductID:  in.ProductID,
		UserID:     userID,
		Rating:     in.Rating,
		Title:      in.Title,
		Review:     in.Review,
		Images:     marshalImages(in.Images),
		SoftDelete: model.SoftDelete{IsActive: true},
	}

	if err := u.ratingRepo.Create(ctx, &rating); err != nil {
		if err == repo.ErrDuplicate {
			return model.Rating{}, NewHTTPError(http.StatusBadRequest, "You have already reviewed this product")
		}
		return model.Rating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return rating, nil
}

type UpdateRatingInput struct {
	Rating *int64
	Title  *string
	Review *string
	Images []string
}

// レビュー更新。本人だけが編集できる。
func (u *RatingUsecase) Update(ctx context.Context, userID, ratingID int64, in UpdateRatingInput) error {
	rating, err := u.ratingRepo.FindByID(ctx, ratingID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Review not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !rating.IsActive {
		return NewHTTPError(http.StatusNotFound, "Review not found")
	}
	if rating.UserID != userID {
		return NewHTTPError(http.StatusForbidden, "Unauthorized action")
	}

	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
		}
		rating.Rating = *in.Rating
	}
	if in.Title != nil {
		rating.Title = *in.Title
	}
	if in.Review != nil {
		rating.Review = *in.Review
	}
	if in.Images != nil {
		rating.Images = marshalImages(in.Images)
	}

	if err := u.ratingRepo.Update(ctx, &rating); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// レビュー削除（ソフト）。本人か管理者。
func (u *RatingUsecase) SoftDelete(ctx context.Context, actorID int64, actorRole model.Role, ratingID int64) error {
	rating, err := u.ratingRepo.FindByID(ctx, ratingID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Review not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if rating.UserID != actorID && actorRole != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "Unauthorized action")
	}

	rating.MarkDeleted(actorID, u.clock.Now())

	if err := u.ratingRepo.Update(ctx, &rating); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *RatingUsecase) Restore(ctx context.Context, ratingID int64) error {
	rating, err := u.ratingRepo.FindByID(ctx, ratingID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Review not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rating.Restore()

	if err := u.ratingRepo.Update(ctx, &rating); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type RatingListOutput struct {
	Ratings []model.Rating
	Total   int64
}

func (u *RatingUsecase) List(ctx context.Context, q repo.PageQuery, active bool) (RatingListOutput, error) {
	ratings, total, err := u.ratingRepo.List(ctx, q, active)
	if err != nil {
		return RatingListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return RatingListOutput{Ratings: ratings, Total: total}, nil
}

func (u *RatingUsecase) GetByID(ctx context.Context, ratingID int64) (model.Rating, error) {
	rating, err := u.ratingRepo.FindByID(ctx, ratingID)
	if err == repo.ErrNotFound {
		return model.Rating{}, NewHTTPError(http.StatusNotFound, "Review not found")
	}
	if err != nil {
		return model.Rating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !rating.IsActive {
		return model.Rating{}, NewHTTPError(http.StatusNotFound, "Review not found")
	}
	return rating, nil
}
