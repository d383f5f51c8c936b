package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/google/uuid"
)

// 送料は全注文一律
const shippingFee = 50.0

// 税率18%（itemsTotalに対して）
const taxRate = 0.18

type OrderUsecase struct {
	tx          repo.TransactionManager
	orderRepo   repo.OrderRepository
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
	clock       Clock
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		clock:       clock,
	}
}

type CheckoutInput struct {
	ShippingAddress model.ShippingAddress
	PaymentMethod   model.PaymentMethod
	Notes           string
}

// チェックアウト。カートの中身をスナップショットして注文を作り、
// 注文作成とカートのクリアは1トランザクションで行う。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (model.Order, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}

	// 明細スナップショット。価格はチェックアウト時点の実売価格。
	var orderItems []model.OrderItem
	var itemsTotal float64
	for _, item := range items {
		product, err := u.productRepo.FindByID(ctx, item.ProductID)
		if err == repo.ErrNotFound {
			return model.Order{}, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Product %d is no longer available", item.ProductID))
		}
		if err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !product.IsActive {
			return model.Order{}, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Product %d is no longer available", item.ProductID))
		}

		price := product.SellingPrice()
		subtotal := price * float64(item.Quantity)
		itemsTotal += subtotal

		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Thumbnail: product.Thumbnail,
			Price:     price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
	}

	tax := round2(itemsTotal * taxRate)
	order := model.Order{
		Number:          "ORD-" + uuid.NewString(),
		UserID:          userID,
		Items:           orderItems,
		ShippingAddress: in.ShippingAddress,
		Payment: model.Payment{
			Method: in.PaymentMethod,
			Status: model.PaymentStatusPending,
		},
		Pricing: model.Pricing{
			ItemsTotal:  itemsTotal,
			ShippingFee: shippingFee,
			Tax:         tax,
			GrandTotal:  itemsTotal + shippingFee + tax,
		},
		OrderStatus: model.OrderStatusPlaced,
		Notes:       in.Notes,
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().Create(ctx, &order); err != nil {
			return err
		}
		return r.Carts().ClearItems(ctx, cart.ID)
	})
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return order, nil
}

type OrderListOutput struct {
	Orders []model.Order
	Total  int64
}

// 自分の注文一覧
func (u *OrderUsecase) MyOrders(ctx context.Context, userID int64, q repo.PageQuery) (OrderListOutput, error) {
	orders, total, err := u.orderRepo.ListByUserID(ctx, userID, q)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderListOutput{Orders: orders, Total: total}, nil
}

// 注文1件。所有者か管理者だけ見られる。
func (u *OrderUsecase) GetByID(ctx context.Context, actorID int64, actorRole model.Role, orderID int64) (model.Order, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if order.UserID != actorID && actorRole != model.RoleAdmin {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "Unauthorized action")
	}

	return order, nil
}

type MarkPaidInput struct {
	Provider      string
	TransactionID string
}

// 支払い成功の記録。orderStatusは動かさない。
func (u *OrderUsecase) MarkPaid(ctx context.Context, actorID int64, actorRole model.Role, orderID int64, in MarkPaidInput) (model.Order, error) {
	order, err := u.GetByID(ctx, actorID, actorRole, orderID)
	if err != nil {
		return model.Order{}, err
	}

	if order.IsPaid {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order is already paid")
	}

	now := u.clock.Now()
	order.IsPaid = true
	order.Payment.Status = model.PaymentStatusSuccess
	order.Payment.Provider = in.Provider
	order.Payment.TransactionID = in.TransactionID
	order.Payment.PaidAt = &now

	if err := u.orderRepo.Save(ctx, &order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return order, nil
}

// 管理者によるステータス変更。DELIVEREDでは配達フラグも立てる。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorID, orderID int64, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid order status")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	before := order.OrderStatus
	order.OrderStatus = status

	now := u.clock.Now()
	switch status {
	case model.OrderStatusDelivered:
		order.IsDelivered = true
		order.DeliveredAt = &now
	case model.OrderStatusCancelled:
		if order.CancelledAt == nil {
			order.CancelledAt = &now
		}
	}

	if err := u.orderRepo.Save(ctx, &order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeStatusAudit(ctx, actorID, order.ID, before, status)
	return order, nil
}

// 注文キャンセル。PLACEDの間だけ所有者が取り消せる（管理者でも他人の注文は不可）。
func (u *OrderUsecase) Cancel(ctx context.Context, actorID, orderID int64, reason string) (model.Order, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if order.UserID != actorID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "Unauthorized action")
	}

	if order.OrderStatus != model.OrderStatusPlaced {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order cannot be cancelled at this stage")
	}

	before := order.OrderStatus
	now := u.clock.Now()
	order.OrderStatus = model.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = reason

	if err := u.orderRepo.Save(ctx, &order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeStatusAudit(ctx, actorID, order.ID, before, order.OrderStatus)
	return order, nil
}

// 返品リクエスト。DELIVERED後に所有者だけが出せる。
func (u *OrderUsecase) RequestReturn(ctx context.Context, actorID, orderID int64) (model.Order, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if order.UserID != actorID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "Unauthorized action")
	}

	if order.OrderStatus != model.OrderStatusDelivered {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Only delivered orders can be returned")
	}

	before := order.OrderStatus
	order.OrderStatus = model.OrderStatusReturnRequested

	if err := u.orderRepo.Save(ctx, &order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeStatusAudit(ctx, actorID, order.ID, before, order.OrderStatus)
	return order, nil
}

// 注文のステータス変更履歴（監査ログ）。管理者用。
func (u *OrderUsecase) History(ctx context.Context, orderID int64) ([]model.AuditLog, error) {
	if _, err := u.orderRepo.FindByID(ctx, orderID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	logs, err := u.auditRepo.ListByResource(ctx, model.AuditResourceOrder, orderID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

func (u *OrderUsecase) writeStatusAudit(ctx context.Context, actorID, orderID int64, before, after model.OrderStatus) {
	b, _ := json.Marshal(map[string]model.OrderStatus{"order_status": before})
	a, _ := json.Marshal(map[string]model.OrderStatus{"order_status": after})
	_ = u.auditRepo.Create(ctx, &model.AuditLog{
		ActorUserID: actorID,
		Action:      model.AuditActionUpdateOrderStatus,
		Resource:    model.AuditResourceOrder,
		ResourceID:  orderID,
		BeforeJSON:  string(b),
		AfterJSON:   string(a),
		CreatedAt:   u.clock.Now(),
	})
}

// 小数2桁に丸める（税計算用）
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
