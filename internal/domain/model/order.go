package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced          OrderStatus = "PLACED"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
	OrderStatusPacked          OrderStatus = "PACKED"
	OrderStatusShipped         OrderStatus = "SHIPPED"
	OrderStatusDelivered       OrderStatus = "DELIVERED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusReturnRequested OrderStatus = "RETURN_REQUESTED"
	OrderStatusReturned        OrderStatus = "RETURNED"
)

// 管理者が直接設定できるステータスか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusConfirmed, OrderStatusPacked,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusReturnRequested, OrderStatusReturned:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "COD"
	PaymentMethodCard       PaymentMethod = "CARD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "NET_BANKING"
	PaymentMethodWallet     PaymentMethod = "WALLET"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// 支払いサブ状態。orderStatusとは独立に更新される。
type Payment struct {
	Method        PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Provider      string        `gorm:"type:varchar(50)" json:"provider"`
	TransactionID string        `gorm:"type:varchar(100)" json:"transaction_id"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}

type ShippingAddress struct {
	FullName   string `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone      string `gorm:"type:varchar(30);not null" json:"phone"`
	Street     string `gorm:"type:varchar(255);not null" json:"street"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	State      string `gorm:"type:varchar(100);not null" json:"state"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country    string `gorm:"type:varchar(100);not null;default:'India'" json:"country"`
}

// 注文金額の内訳。作成時に確定し以後変わらない。
type Pricing struct {
	ItemsTotal  float64 `gorm:"not null" json:"items_total"`
	ShippingFee float64 `gorm:"not null;default:0" json:"shipping_fee"`
	Tax         float64 `gorm:"not null;default:0" json:"tax"`
	Discount    float64 `gorm:"not null;default:0" json:"discount"`
	GrandTotal  float64 `gorm:"not null" json:"grand_total"`
}

type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Number string `gorm:"type:varchar(40);uniqueIndex;not null" json:"number"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Payment         Payment         `gorm:"embedded;embeddedPrefix:pay_" json:"payment"`
	Pricing         Pricing         `gorm:"embedded;embeddedPrefix:price_" json:"pricing"`

	OrderStatus OrderStatus `gorm:"type:varchar(20);not null;default:'PLACED';index" json:"order_status"`

	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:varchar(255)" json:"cancellation_reason,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文明細スナップショット。商品が後で変わっても注文は動かない。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   int64 `gorm:"not null;index" json:"-"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	Title     string  `gorm:"type:varchar(255);not null" json:"title"`
	Thumbnail string  `gorm:"type:varchar(500)" json:"thumbnail"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int64   `gorm:"not null" json:"quantity"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"`
}
