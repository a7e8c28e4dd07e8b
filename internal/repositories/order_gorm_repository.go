package repositories

import (
	"fmt"
	"time"

	"telemax/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateWithItems inserts the order header and its items inside one
// transaction. The header insert must complete first to obtain the generated
// order ID the items reference; the items then go in as a single batched
// insert. Any failure rolls the whole transaction back, and the connection is
// returned to the pool on every exit path, including panics.
func (r *GORMOrderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}
		order.Items = items
		return nil
	})
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetItemDetails returns the order's items joined with the names of the
// product and parts each item references.
func (r *GORMOrderRepository) GetItemDetails(orderID uint) ([]models.OrderItemDetail, error) {
	var details []models.OrderItemDetail
	err := r.db.Table("order_items AS oi").
		Select("oi.*, p.name AS product_name, s.name AS starter_name, r.name AS ring_name, t.name AS top_name").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Joins("LEFT JOIN parts s ON s.id = oi.starter_id").
		Joins("LEFT JOIN parts r ON r.id = oi.ring_id").
		Joins("LEFT JOIN parts t ON t.id = oi.top_id").
		Where("oi.order_id = ?", orderID).
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	return details, nil
}

// ListByUser returns the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus updates the lifecycle status of an order. Shipping records the
// tracking number and timestamp; completion records the delivery timestamp.
func (r *GORMOrderRepository) UpdateStatus(id uint, status string, trackingNumber string) error {
	updates := map[string]interface{}{"status": status}

	now := time.Now()
	if status == models.OrderStatusShipped && trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
		updates["shipped_at"] = now
	}
	if status == models.OrderStatusCompleted {
		updates["delivered_at"] = now
	}

	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	return nil
}

// UpdatePayment updates the payment status of an order.
func (r *GORMOrderRepository) UpdatePayment(id uint, paymentStatus, method, reference string) error {
	updates := map[string]interface{}{
		"payment_status":    paymentStatus,
		"payment_method":    method,
		"payment_reference": reference,
	}

	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for payment update", id)
	}
	return nil
}
