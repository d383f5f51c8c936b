package usecase_test

import (
	"context"
	"time"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) List(ctx context.Context, q repo.PageQuery, active bool) ([]model.User, int64, error) {
	args := m.Called(ctx, q, active)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

type ProfileRepoMock struct{ mock.Mock }

func (m *ProfileRepoMock) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(model.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepoMock) Update(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery, active bool) ([]model.Product, int64, error) {
	args := m.Called(ctx, q, active)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) CreateDetail(ctx context.Context, detail *model.ProductDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *ProductRepoMock) FindDetailByProductID(ctx context.Context, productID int64) (model.ProductDetail, error) {
	args := m.Called(ctx, productID)
	d, _ := args.Get(0).(model.ProductDetail)
	return d, args.Error(1)
}

func (m *ProductRepoMock) UpdateDetail(ctx context.Context, detail *model.ProductDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartRepoMock) SetItemQuantity(ctx context.Context, cartID, productID, quantity int64) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *CartRepoMock) RemoveItem(ctx context.Context, cartID, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *CartRepoMock) ClearItems(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, q repo.PageQuery) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, q)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Save(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log *model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) ListByResource(ctx context.Context, resource model.AuditResourceType, resourceID int64) ([]model.AuditLog, error) {
	args := m.Called(ctx, resource, resourceID)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type RatingRepoMock struct{ mock.Mock }

func (m *RatingRepoMock) Create(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RatingRepoMock) FindByID(ctx context.Context, ratingID int64) (model.Rating, error) {
	args := m.Called(ctx, ratingID)
	r, _ := args.Get(0).(model.Rating)
	return r, args.Error(1)
}

func (m *RatingRepoMock) ExistsByProductAndUser(ctx context.Context, productID, userID int64) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *RatingRepoMock) Update(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RatingRepoMock) List(ctx context.Context, q repo.PageQuery, active bool) ([]model.Rating, int64, error) {
	args := m.Called(ctx, q, active)
	ratings, _ := args.Get(0).([]model.Rating)
	return ratings, args.Get(1).(int64), args.Error(2)
}

type BrandRepoMock struct{ mock.Mock }

func (m *BrandRepoMock) Create(ctx context.Context, brand *model.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *BrandRepoMock) FindByID(ctx context.Context, brandID int64) (model.Brand, error) {
	args := m.Called(ctx, brandID)
	b, _ := args.Get(0).(model.Brand)
	return b, args.Error(1)
}

func (m *BrandRepoMock) FindBySlug(ctx context.Context, slug string) (model.Brand, error) {
	args := m.Called(ctx, slug)
	b, _ := args.Get(0).(model.Brand)
	return b, args.Error(1)
}

func (m *BrandRepoMock) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *BrandRepoMock) Update(ctx context.Context, brand *model.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *BrandRepoMock) List(ctx context.Context, q repo.PageQuery, active bool) ([]model.Brand, int64, error) {
	args := m.Called(ctx, q, active)
	brands, _ := args.Get(0).([]model.Brand)
	return brands, args.Get(1).(int64), args.Error(2)
}

// =====================
// 取引・時刻・メールのフェイク
// =====================

// fnへそのまま渡すだけのTxManager
type fakeTxManager struct {
	users    repo.UserRepository
	profiles repo.ProfileRepository
	carts    repo.CartRepository
	orders   repo.OrderRepository
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f)
}

func (f *fakeTxManager) Users() repo.UserRepository       { return f.users }
func (f *fakeTxManager) Profiles() repo.ProfileRepository { return f.profiles }
func (f *fakeTxManager) Carts() repo.CartRepository       { return f.carts }
func (f *fakeTxManager) Orders() repo.OrderRepository     { return f.orders }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type mailerMock struct{ mock.Mock }

func (m *mailerMock) SendOTP(ctx context.Context, email string, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

type issuerStub struct {
	token string
	err   error
}

func (i *issuerStub) Issue(userID int64, role model.Role, now time.Time) (string, error) {
	return i.token, i.err
}
