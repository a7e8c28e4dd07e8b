package models

import "time"

// Order lifecycle statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Order represents a customer order. The total is computed once at checkout
// and never recomputed; fulfillment and payment workflows only mutate the
// status columns afterwards.
type Order struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	UserID           uint        `json:"user_id" gorm:"index;not null"`
	Name             string      `json:"name" gorm:"type:varchar(100);not null"`
	Email            string      `json:"email" gorm:"type:varchar(255)"`
	Phone            string      `json:"phone" gorm:"type:varchar(50)"`
	Address          string      `json:"address" gorm:"not null"`
	Notes            string      `json:"notes"`
	TotalPrice       float64     `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status           string      `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	PaymentStatus    string      `json:"payment_status" gorm:"type:varchar(20);not null;default:pending"`
	PaymentMethod    string      `json:"payment_method,omitempty" gorm:"type:varchar(50)"`
	PaymentReference string      `json:"payment_reference,omitempty" gorm:"type:varchar(100)"`
	TrackingNumber   string      `json:"tracking_number,omitempty" gorm:"type:varchar(100)"`
	ShippedAt        *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt      *time.Time  `json:"delivered_at,omitempty"`
	Items            []OrderItem `json:"items,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem is a single line of an order. Price is the unit price snapshot
// taken at order creation; it does not follow later catalog changes. The
// product/part references are kept for display joins only.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"index;not null"`
	ProductID *uint   `json:"product_id"`
	StarterID *uint   `json:"starter_id"`
	RingID    *uint   `json:"ring_id"`
	TopID     *uint   `json:"top_id"`
	Quantity  int     `json:"quantity" gorm:"not null;check:quantity >= 1"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
}

// OrderItemDetail is an OrderItem joined with the display names of the
// product and parts it references.
type OrderItemDetail struct {
	OrderItem
	ProductName string `json:"product_name,omitempty"`
	StarterName string `json:"starter_name,omitempty"`
	RingName    string `json:"ring_name,omitempty"`
	TopName     string `json:"top_name,omitempty"`
}
