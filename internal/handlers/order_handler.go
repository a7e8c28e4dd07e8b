package handlers

import (
	"errors"
	"log"
	"strings"

	"telemax/internal/models"
	"telemax/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetUserOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/:id/payment", h.HandleUpdatePaymentStatus)
}

// checkoutRequest is the POST /orders body: the buyer record plus the
// requested line items.
type checkoutRequest struct {
	UserID   uint                     `json:"user_id"`
	FullName string                   `json:"full_name"`
	Email    string                   `json:"email"`
	Phone    string                   `json:"phone"`
	Address  string                   `json:"address"`
	Notes    string                   `json:"notes"`
	Items    []models.LineItemRequest `json:"items"`
}

// HandleCreateOrder runs a checkout: price resolution, total computation and
// the atomic order write.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	buyer := models.BuyerInfo{
		UserID:   req.UserID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Notes:    req.Notes,
	}

	result, err := h.checkout.CreateOrder(buyer, req.Items)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order creation rejected",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleGetUserOrders retrieves the orders of the user given by the user_id
// query parameter, newest first.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A positive user_id query parameter is required.",
		})
	}

	orders, err := h.orders.GetUserOrders(uint(userID))
	if err != nil {
		log.Printf("Error listing orders for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order with its items joined to
// product and part names for display.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order ID must be a positive integer.",
		})
	}

	order, err := h.orders.GetOrderByID(uint(orderID))
	if err != nil {
		log.Printf("Error getting order by ID %d: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}

	items, err := h.orders.GetOrderItemDetails(uint(orderID))
	if err != nil {
		log.Printf("Error getting items for order %d: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order items",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"order": order,
		"items": items,
	})
}

// HandleUpdateOrderStatus updates the lifecycle status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order ID must be a positive integer.",
		})
	}

	var updateData struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.orders.UpdateOrderStatus(uint(orderID), updateData.Status, updateData.TrackingNumber); err != nil {
		log.Printf("Error updating order status for order %d: %v", orderID, err)
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order update rejected",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}

// HandleUpdatePaymentStatus records the outcome of a payment attempt.
func (h *OrderHandler) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order ID must be a positive integer.",
		})
	}

	var updateData struct {
		PaymentStatus    string `json:"payment_status"`
		PaymentMethod    string `json:"payment_method"`
		PaymentReference string `json:"payment_reference"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for payment update",
			"error":   err.Error(),
		})
	}
	if updateData.PaymentStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "payment_status is required for payment update.",
		})
	}

	if err := h.orders.UpdatePaymentStatus(uint(orderID), updateData.PaymentStatus, updateData.PaymentMethod, updateData.PaymentReference); err != nil {
		log.Printf("Error updating payment status for order %d: %v", orderID, err)
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment update rejected",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update payment status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Payment status updated successfully",
	})
}
