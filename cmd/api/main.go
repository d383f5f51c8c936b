package main

import (
	"time"

	"ecom/internal/config"
	"ecom/internal/domain/model"
	"ecom/internal/handler"
	"ecom/internal/infra/db"
	infraRepo "ecom/internal/infra/repository"
	"ecom/internal/mail"
	"ecom/internal/server"
	"ecom/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 7日有効のHS256トークン
type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   string(role),
		"iat":    now.Unix(),
		"exp":    now.Add(i.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

func main() {
	// .envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    7 * 24 * time.Hour,
	}
	mailer := mail.NewLogMailer()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(txManager, userRepo, hasher, verifier, issuer, mailer, clock)
	userUC := usecase.NewUserUsecase(userRepo, profileRepo, auditRepo, clock)
	brandUC := usecase.NewBrandUsecase(brandRepo, clock)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, clock)
	productUC := usecase.NewProductUsecase(productRepo, brandRepo, categoryRepo, auditRepo, clock)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, cartRepo, productRepo, auditRepo, clock)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, productRepo, clock)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)

	//Server起動
	e := server.New(cfg)

	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewUserHandler(userUC).RegisterRoutes(e, cfg)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewBrandHandler(brandUC).RegisterRoutes(e, cfg)
	handler.NewCategoryHandler(categoryUC).RegisterRoutes(e, cfg)
	handler.NewProductHandler(productUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg)
	handler.NewRatingHandler(ratingUC).RegisterRoutes(e, cfg)
	handler.NewWishlistHandler(wishlistUC).RegisterRoutes(e, cfg)

	if err := server.Start(e, cfg.Port); err != nil {
		panic(err)
	}
}
