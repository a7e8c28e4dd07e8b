package services

import (
	"fmt"

	"telemax/internal/models"
	"telemax/internal/repositories"
)

// OrderService handles reads and fulfillment/payment updates for existing
// orders. Order creation lives in CheckoutService.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetUserOrders retrieves a user's orders, newest first.
func (s *OrderService) GetUserOrders(userID uint) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrderByID retrieves a single order with its items.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderItemDetails retrieves an order's items joined with product and part
// display names.
func (s *OrderService) GetOrderItemDetails(orderID uint) ([]models.OrderItemDetail, error) {
	return s.orderRepo.GetItemDetails(orderID)
}

// UpdateOrderStatus moves an order through its lifecycle. Shipping may carry
// a tracking number, which is recorded together with the shipping time.
func (s *OrderService) UpdateOrderStatus(id uint, status string, trackingNumber string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusProcessing: true,
		models.OrderStatusShipped:    true,
		models.OrderStatusCompleted:  true,
		models.OrderStatusCancelled:  true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("%w: invalid order status: %s", ErrInvalidInput, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status, trackingNumber); err != nil {
		return fmt.Errorf("failed to update order status for order %d: %w", id, err)
	}
	return nil
}

// UpdatePaymentStatus records the outcome of a payment attempt.
func (s *OrderService) UpdatePaymentStatus(id uint, paymentStatus, method, reference string) error {
	validStatuses := map[string]bool{
		models.PaymentStatusPending:  true,
		models.PaymentStatusPaid:     true,
		models.PaymentStatusFailed:   true,
		models.PaymentStatusRefunded: true,
	}
	if _, ok := validStatuses[paymentStatus]; !ok {
		return fmt.Errorf("%w: invalid payment status: %s", ErrInvalidInput, paymentStatus)
	}

	if err := s.orderRepo.UpdatePayment(id, paymentStatus, method, reference); err != nil {
		return fmt.Errorf("failed to update payment status for order %d: %w", id, err)
	}
	return nil
}
