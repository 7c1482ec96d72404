package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// PaymentMethod is a label only; no gateway integration exists.
type PaymentMethod string

const (
	PaymentWallet  PaymentMethod = "wallet"
	PaymentInstant PaymentMethod = "instant"
)

// ParseOrderStatus validates a status token from the URL or payload.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status %q", s)
}

// transitions is the allowed lifecycle graph. Completed orders may be
// reopened to processing for correction, cancelled orders back to pending.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusProcessing},
	StatusCancelled:  {StatusPending},
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PurchaseTerms freezes what was bought and at which price. The fields are
// copied from the catalog at creation time and never updated afterwards,
// so later catalog edits cannot change an existing order.
type PurchaseTerms struct {
	ProductID    string `gorm:"size:64;not null" json:"product_id"`
	ProductTitle string `gorm:"size:100;not null" json:"product_title"`
	PackageID    string `gorm:"size:64;not null" json:"package_id"`
	PackageName  string `gorm:"size:100;not null" json:"package_name"`
	Price        int    `gorm:"not null" json:"price"`
}

// Order is a purchase request stored in Postgres. Orders are never deleted.
type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	OrderNumber   string        `gorm:"uniqueIndex;not null" json:"order_id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	PlayerID      string        `gorm:"size:64;not null" json:"player_id"`
	PurchaseTerms `gorm:"embedded"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:'wallet'" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"-"`
}

// NewOrderNumber returns a human-facing, collision-resistant order id.
// Wall-clock based ids collide under concurrent checkouts; a uuid does not.
func NewOrderNumber() string {
	return "ORD-" + uuid.NewString()
}

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	ProductID     string        `json:"product_id" binding:"required"`
	PlayerID      string        `json:"player_id" binding:"required"`
	PackageID     string        `json:"package_id" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"omitempty,oneof=wallet instant"`
}

// UpdateOrderStatusRequest is the payload for PUT /orders/:id (admin).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
