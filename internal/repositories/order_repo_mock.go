package repositories

import (
	"fmt"
	"sync"
	"time"

	"telemax/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[uint]models.Order
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		nextID: 1,
	}
}

// CreateWithItems stores the order and its items atomically under the mutex,
// assigning sequential order and item IDs like an auto-increment store would.
func (r *MockOrderRepository) CreateWithItems(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].ID = uint(i) + 1
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d not found", id)
	}
	return &order, nil
}

// GetItemDetails returns the order's items without name joins; the mock has
// no catalog to join against.
func (r *MockOrderRepository) GetItemDetails(orderID uint) ([]models.OrderItemDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order with ID %d not found", orderID)
	}
	details := make([]models.OrderItemDetail, 0, len(order.Items))
	for _, item := range order.Items {
		details = append(details, models.OrderItemDetail{OrderItem: item})
	}
	return details, nil
}

// ListByUser returns the user's orders.
func (r *MockOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id uint, status string, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	order.Status = status
	now := time.Now()
	if status == models.OrderStatusShipped && trackingNumber != "" {
		order.TrackingNumber = trackingNumber
		order.ShippedAt = &now
	}
	if status == models.OrderStatusCompleted {
		order.DeliveredAt = &now
	}
	order.UpdatedAt = now
	r.orders[id] = order
	return nil
}

// UpdatePayment updates the payment status of an order.
func (r *MockOrderRepository) UpdatePayment(id uint, paymentStatus, method, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %d not found for payment update", id)
	}
	order.PaymentStatus = paymentStatus
	order.PaymentMethod = method
	order.PaymentReference = reference
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
