package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"
)

type UserUsecase struct {
	userRepo    repo.UserRepository
	profileRepo repo.ProfileRepository
	auditRepo   repo.AuditLogRepository
	clock       Clock
}

// DI
func NewUserUsecase(
	userRepo repo.UserRepository,
	profileRepo repo.ProfileRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		clock:       clock,
	}
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

// 管理者によるユーザー更新。name/emailだけ許可する。
func (u *UserUsecase) Update(ctx context.Context, userID int64, in UpdateUserInput) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}

	if err := u.userRepo.Update(ctx, &user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ソフトデリート。名前をメッセージに入れて返すのでuserを返す。
func (u *UserUsecase) SoftDelete(ctx context.Context, actorID, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.MarkDeleted(actorID, u.clock.Now())

	if err := u.userRepo.Update(ctx, &user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionSoftDelete, user.ID, true, false)
	return user, nil
}

func (u *UserUsecase) Restore(ctx context.Context, actorID, userID int64) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.Restore()

	if err := u.userRepo.Update(ctx, &user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionRestore, user.ID, false, true)
	return nil
}

type UserListOutput struct {
	Users []model.User
	Total int64
}

func (u *UserUsecase) List(ctx context.Context, q repo.PageQuery, active bool) (UserListOutput, error) {
	users, total, err := u.userRepo.List(ctx, q, active)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return UserListOutput{Users: users, Total: total}, nil
}

type UpdateProfileInput struct {
	Avatar      *string
	Phone       *string
	Gender      *string
	DateOfBirth *time.Time
	Bio         *string
	Addresses   []model.Address
}

func (in UpdateProfileInput) empty() bool {
	return in.Avatar == nil && in.Phone == nil && in.Gender == nil &&
		in.DateOfBirth == nil && in.Bio == nil && in.Addresses == nil
}

// プロフィール取得または更新。更新フィールドが無ければ取得だけ。
func (u *UserUsecase) GetOrUpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (model.Profile, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Profile{}, NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	if err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.empty() {
		return profile, nil
	}

	if in.Avatar != nil {
		profile.Avatar = *in.Avatar
	}
	if in.Phone != nil {
		profile.Phone = *in.Phone
	}
	if in.Gender != nil {
		profile.Gender = *in.Gender
	}
	if in.DateOfBirth != nil {
		profile.DateOfBirth = in.DateOfBirth
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.Addresses != nil {
		for i := range in.Addresses {
			in.Addresses[i].ProfileID = profile.ID
		}
		profile.Addresses = in.Addresses
	}

	if err := u.profileRepo.Update(ctx, &profile); err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return profile, nil
}

// 監査ログは失敗しても本処理を巻き戻さない
func (u *UserUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, userID int64, before, after bool) {
	_ = u.auditRepo.Create(ctx, &model.AuditLog{
		ActorUserID: actorID,
		Action:      action,
		Resource:    model.AuditResourceUser,
		ResourceID:  userID,
		BeforeJSON:  boolStateJSON(before),
		AfterJSON:   boolStateJSON(after),
		CreatedAt:   u.clock.Now(),
	})
}
