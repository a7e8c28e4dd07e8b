package services_test

import (
	"fmt"
	"testing"

	"telemax/internal/models"
	"telemax/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestOrderService_GetUserOrders(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	expected := []models.Order{
		{ID: 2, UserID: 1, TotalPrice: 15.75},
		{ID: 1, UserID: 1, TotalPrice: 39.98},
	}
	mockRepo.On("ListByUser", uint(1)).Return(expected, nil).Once()

	orders, err := service.GetUserOrders(1)

	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	expected := &models.Order{ID: 1, UserID: 1, TotalPrice: 39.98}
	mockRepo.On("GetByID", uint(1)).Return(expected, nil).Once()
	order, err := service.GetOrderByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expected, order)

	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("order with ID 99 not found")).Once()
	order, err = service.GetOrderByID(99)
	assert.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	// Valid transition, tracking number passed through.
	mockRepo.On("UpdateStatus", uint(1), models.OrderStatusShipped, "TRK-123").Return(nil).Once()
	err := service.UpdateOrderStatus(1, models.OrderStatusShipped, "TRK-123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Unknown status is rejected before touching the repository.
	err = service.UpdateOrderStatus(1, "teleported", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "UpdateStatus", uint(1), "teleported", "")

	// Repository failure propagates.
	mockRepo.On("UpdateStatus", uint(99), models.OrderStatusCancelled, "").Return(fmt.Errorf("order with ID 99 not found for status update")).Once()
	err = service.UpdateOrderStatus(99, models.OrderStatusCancelled, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	mockRepo.On("UpdatePayment", uint(1), models.PaymentStatusPaid, "card", "PAY-9").Return(nil).Once()
	err := service.UpdatePaymentStatus(1, models.PaymentStatusPaid, "card", "PAY-9")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	err = service.UpdatePaymentStatus(1, "maybe", "", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "UpdatePayment", uint(1), "maybe", "", "")
}
