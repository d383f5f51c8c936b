package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// JWTを発行する約束（実装はcmd/api側）
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (string, error)
}

// OTPメールを外へ送る約束
type Mailer interface {
	SendOTP(ctx context.Context, email string, otp string) error
}

// 現在時刻
type Clock interface {
	Now() time.Time
}

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}

const otpTTL = 5 * time.Minute

type AuthUsecase struct {
	tx       repo.TransactionManager
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   TokenIssuer
	mailer   Mailer
	clock    Clock
}

// DI
func NewAuthUsecase(
	tx repo.TransactionManager,
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	mailer Mailer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		tx:       tx,
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		mailer:   mailer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

type AuthOutput struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// 会員登録。UserとProfileは1トランザクションで一緒に作る。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// email重複チェック
	_, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "User already exists")
	}
	if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	// 登録ロールは常にcustomer
	user := model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Mobile:       strings.TrimSpace(in.Mobile),
		PasswordHash: hashed,
		Role:         model.RoleCustomer,
		SoftDelete:   model.SoftDelete{IsActive: true},
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, &user); err != nil {
			return err
		}

		profile := model.Profile{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Phone:  user.Mobile,
		}
		return r.Profiles().Create(ctx, &profile)
	})
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := u.issuer.Issue(user.ID, user.Role, u.clock.Now())
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AuthOutput{User: user, Token: token}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// ログイン。アクティブなユーザーだけ通す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "User not found")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := u.issuer.Issue(user.ID, user.Role, u.clock.Now())
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AuthOutput{User: user, Token: token}, nil
}

// パスワードリセットのOTPを発行する。
// ユーザーが存在しなくても成功として返す（存在の漏洩防止）。
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	otp, err := generateOTP()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "otp error")
	}

	expire := u.clock.Now().Add(otpTTL)
	user.ResetOTP = otp
	user.ResetOTPExpire = &expire

	if err := u.userRepo.Update(ctx, &user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.mailer.SendOTP(ctx, user.Email, otp); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	}

	return nil
}

type ResetPasswordInput struct {
	Email       string
	OTP         string
	NewPassword string
}

// OTPを使い捨てて新しいパスワードを設定する。
func (u *AuthUsecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "Invalid or expired OTP")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if user.ResetOTP == "" || user.ResetOTP != in.OTP {
		return NewHTTPError(http.StatusBadRequest, "Invalid or expired OTP")
	}
	if user.ResetOTPExpire == nil || u.clock.Now().After(*user.ResetOTPExpire) {
		return NewHTTPError(http.StatusBadRequest, "Invalid or expired OTP")
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user.PasswordHash = hashed
	user.ResetOTP = ""
	user.ResetOTPExpire = nil

	if err := u.userRepo.Update(ctx, &user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 6桁の数字OTP
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
