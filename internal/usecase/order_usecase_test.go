package usecase_test

import (
	"context"
	"math"
	"testing"
	"time"

	"ecom/internal/domain/model"
	"ecom/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecase(oRepo *OrderRepoMock, cRepo *CartRepoMock, pRepo *ProductRepoMock, aRepo *AuditRepoMock) *usecase.OrderUsecase {
	tx := &fakeTxManager{carts: cRepo, orders: oRepo}
	clock := &fixedClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	return usecase.NewOrderUsecase(tx, oRepo, cRepo, pRepo, aRepo, clock)
}

// grandTotal = itemsTotal + 50 + round2(itemsTotal*0.18)
func TestOrderUsecase_Checkout_Pricing(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	discount := 99.99
	p1 := stockedProduct(10, 150)
	p1.DiscountPrice = &discount
	p2 := stockedProduct(11, 40)

	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).
		Return([]model.CartItem{
			{CartID: 7, ProductID: 10, Quantity: 2},
			{CartID: 7, ProductID: 11, Quantity: 1},
		}, nil)
	pRepo.On("FindByID", mock.Anything, int64(10)).Return(p1, nil)
	pRepo.On("FindByID", mock.Anything, int64(11)).Return(p2, nil)
	oRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cRepo.On("ClearItems", mock.Anything, int64(7)).Return(nil)

	order, err := uc.Checkout(ctx, 1, usecase.CheckoutInput{
		PaymentMethod: model.PaymentMethodCOD,
	})
	assert.NoError(t, err)

	itemsTotal := 99.99*2 + 40
	tax := math.Round(itemsTotal*0.18*100) / 100
	assert.InDelta(t, itemsTotal, order.Pricing.ItemsTotal, 1e-9)
	assert.Equal(t, float64(50), order.Pricing.ShippingFee)
	assert.InDelta(t, tax, order.Pricing.Tax, 1e-9)
	assert.InDelta(t, itemsTotal+50+tax, order.Pricing.GrandTotal, 1e-9)

	// スナップショットは割引価格を使う
	assert.Equal(t, 99.99, order.Items[0].Price)
	assert.Equal(t, model.OrderStatusPlaced, order.OrderStatus)
	assert.Equal(t, model.PaymentStatusPending, order.Payment.Status)
	assert.NotEmpty(t, order.Number)

	cRepo.AssertCalled(t, "ClearItems", mock.Anything, int64(7))
}

func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	cRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cRepo.On("ListItems", mock.Anything, int64(7)).Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(ctx, 1, usecase.CheckoutInput{PaymentMethod: model.PaymentMethodCOD})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "Cart is empty", he.Message)

	oRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// キャンセルはPLACEDからだけ
func TestOrderUsecase_Cancel_OnlyFromPlaced(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusShipped}, nil)

	_, err := uc.Cancel(ctx, 1, 5, "changed my mind")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	oRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Cancel_FromPlaced(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusPlaced}, nil)
	oRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	aRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	order, err := uc.Cancel(ctx, 1, 5, "changed my mind")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.OrderStatus)
	assert.NotNil(t, order.CancelledAt)
	assert.Equal(t, "changed my mind", order.CancellationReason)
}

// キャンセルは所有者だけ。管理者でも他人の注文は取り消せない。
func TestOrderUsecase_Cancel_NotOwner(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 42, OrderStatus: model.OrderStatusPlaced}, nil)

	// actor 1は管理者だが注文はuser 42のもの
	_, err := uc.Cancel(ctx, 1, 5, "")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
	assert.Equal(t, "Unauthorized action", he.Message)

	oRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// 他人の注文は見られない（管理者は見られる）
func TestOrderUsecase_GetByID_Ownership(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusPlaced}, nil)

	_, err := uc.GetByID(ctx, 2, model.RoleCustomer, 5)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)

	_, err = uc.GetByID(ctx, 2, model.RoleAdmin, 5)
	assert.NoError(t, err)
}

// DELIVEREDを設定すると配達フラグと日時も付く
func TestOrderUsecase_UpdateStatus_Delivered(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusShipped}, nil)
	oRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	aRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	order, err := uc.UpdateStatus(ctx, 99, 5, model.OrderStatusDelivered)
	assert.NoError(t, err)
	assert.True(t, order.IsDelivered)
	assert.NotNil(t, order.DeliveredAt)

	aRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateStatus_Invalid(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	_, err := uc.UpdateStatus(ctx, 99, 5, model.OrderStatus("TELEPORTED"))

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// 返品はDELIVEREDからだけ
func TestOrderUsecase_RequestReturn_OnlyDelivered(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusPlaced}, nil)

	_, err := uc.RequestReturn(ctx, 1, 5)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// 返品リクエストも所有者だけ
func TestOrderUsecase_RequestReturn_NotOwner(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 42, OrderStatus: model.OrderStatusDelivered}, nil)

	_, err := uc.RequestReturn(ctx, 1, 5)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)

	oRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ステータス変更履歴は監査ログから引く
func TestOrderUsecase_History(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusShipped}, nil)
	aRepo.On("ListByResource", mock.Anything, model.AuditResourceOrder, int64(5)).
		Return([]model.AuditLog{
			{ID: 1, Resource: model.AuditResourceOrder, ResourceID: 5, Action: model.AuditActionUpdateOrderStatus},
		}, nil)

	logs, err := uc.History(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)

	aRepo.AssertExpectations(t)
}

func TestOrderUsecase_MarkPaid(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, OrderStatus: model.OrderStatusPlaced}, nil)
	oRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	order, err := uc.MarkPaid(ctx, 1, model.RoleCustomer, 5, usecase.MarkPaidInput{
		Provider:      "razorpay",
		TransactionID: "txn_123",
	})
	assert.NoError(t, err)
	assert.True(t, order.IsPaid)
	assert.Equal(t, model.PaymentStatusSuccess, order.Payment.Status)
	assert.Equal(t, "txn_123", order.Payment.TransactionID)
	assert.NotNil(t, order.Payment.PaidAt)

	// ステータスは動かない
	assert.Equal(t, model.OrderStatusPlaced, order.OrderStatus)
}

func TestOrderUsecase_MarkPaid_AlreadyPaid(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newOrderUsecase(oRepo, cRepo, pRepo, aRepo)

	oRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 1, IsPaid: true, OrderStatus: model.OrderStatusPlaced}, nil)

	_, err := uc.MarkPaid(ctx, 1, model.RoleCustomer, 5, usecase.MarkPaidInput{TransactionID: "txn"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	oRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
