package repositories

import (
	"telemax/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateWithItems persists the order header and all of its items as one
	// transaction. On success the order's generated ID and item IDs are
	// filled in; on failure nothing is persisted.
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	// GetItemDetails returns the order's items joined with product and part
	// display names.
	GetItemDetails(orderID uint) ([]models.OrderItemDetail, error)
	// ListByUser returns the user's orders, newest first, without items.
	ListByUser(userID uint) ([]models.Order, error)
	// UpdateStatus moves the order through its lifecycle. A shipped status
	// records the tracking number and shipping time; completed records the
	// delivery time.
	UpdateStatus(id uint, status string, trackingNumber string) error
	UpdatePayment(id uint, paymentStatus, method, reference string) error
}
