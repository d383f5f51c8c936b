package repository

import (
	"context"

	"ecom/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, user *model.User) error

	// active=trueで通常一覧、falseで削除済み一覧
	List(ctx context.Context, q PageQuery, active bool) ([]model.User, int64, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByUserID(ctx context.Context, userID int64) (model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
}
