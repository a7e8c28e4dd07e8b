package services

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"telemax/internal/models"
	"telemax/internal/repositories"
	"telemax/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CheckoutService is the order transaction engine: it resolves authoritative
// unit prices for a batch of requested line items, computes the order total,
// and persists the order header and its items atomically.
//
// Idempotency is not guaranteed: two identical calls create two orders.
// Prices reflect catalog state at the instant of the batched lookup; a price
// change between lookup and commit is not re-validated.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	catalog   repositories.CatalogRepository
	mqClient  *rabbitmq.Client
	validate  *validator.Validate
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, catalog repositories.CatalogRepository, mqClient *rabbitmq.Client) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		catalog:   catalog,
		mqClient:  mqClient,
		validate:  validator.New(),
	}
}

// CreateOrder prices the requested items, computes the total, and writes the
// order and all of its items in one transaction. On any failure nothing is
// persisted and the error carries one of ErrInvalidInput, ErrStoreUnavailable
// or ErrPersistence.
//
// An empty (but present) item list is accepted and produces a zero-total
// order with no items; an item referencing an unknown product or part prices
// at zero rather than failing. Both are deliberate leniencies carried over
// from the storefront this engine serves.
func (s *CheckoutService) CreateOrder(buyer models.BuyerInfo, items []models.LineItemRequest) (*models.CheckoutResult, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: items list is missing", ErrInvalidInput)
	}
	if err := s.validate.Struct(buyer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Normalize every request into its pricing variant and collect the
	// distinct product and part IDs referenced across the whole batch.
	lines := make([]models.OrderLine, 0, len(items))
	var productIDs, partIDs []uint
	for _, item := range items {
		line := item.Normalize()
		lines = append(lines, line)

		switch l := line.(type) {
		case models.ProductLine:
			productIDs = append(productIDs, l.ProductID)
		case models.AssemblyLine:
			for _, id := range []*uint{l.StarterID, l.RingID, l.TopID} {
				if id != nil {
					partIDs = append(partIDs, *id)
				}
			}
		}
	}
	productIDs = lo.Uniq(productIDs)
	partIDs = lo.Uniq(partIDs)

	// At most one batched query per ID set, issued concurrently. Both must
	// complete before totaling. Database round-trips stay O(1) regardless of
	// line-item count.
	var productPrices, partPrices map[uint]float64
	var g errgroup.Group
	g.Go(func() error {
		var err error
		productPrices, err = s.catalog.ProductPrices(productIDs)
		return err
	})
	g.Go(func() error {
		var err error
		partPrices, err = s.catalog.PartPrices(partIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, classifyStoreError(fmt.Errorf("price lookup: %w", err))
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		var unit float64
		var item models.OrderItem

		switch l := line.(type) {
		case models.ProductLine:
			unit = productPrices[l.ProductID]
			id := l.ProductID
			item = models.OrderItem{ProductID: &id, Quantity: l.Quantity}
		case models.AssemblyLine:
			unit = partPrice(partPrices, l.StarterID) + partPrice(partPrices, l.RingID) + partPrice(partPrices, l.TopID)
			item = models.OrderItem{StarterID: l.StarterID, RingID: l.RingID, TopID: l.TopID, Quantity: l.Quantity}
		}

		item.Price = unit
		orderItems = append(orderItems, item)
		total = total.Add(decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Half-up to 2 decimals, then persist order and items as one unit.
	totalPrice, _ := total.Round(2).Float64()

	order := &models.Order{
		UserID:        buyer.UserID,
		Name:          buyer.FullName,
		Email:         buyer.Email,
		Phone:         buyer.Phone,
		Address:       buyer.Address,
		Notes:         buyer.Notes,
		TotalPrice:    totalPrice,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Items:         orderItems,
	}
	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, classifyStoreError(err)
	}

	s.publishOrderCreated(order)

	return &models.CheckoutResult{OrderID: order.ID, TotalPrice: totalPrice}, nil
}

// publishOrderCreated emits an order.created event after a successful commit.
// Publishing is best-effort: a broker failure is logged and never unwinds the
// already-committed order.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalPrice,
		"status":   order.Status,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order created event for order %d: %v", order.ID, err)
		return
	}
	if err := s.mqClient.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %d: %v", order.ID, err)
	}
}

func partPrice(prices map[uint]float64, id *uint) float64 {
	if id == nil {
		return 0
	}
	return prices[*id]
}

// classifyStoreError sorts a store failure into the transient/integrity halves
// of the error taxonomy. Connection-level faults are retryable; anything else
// is treated as a constraint or integrity failure whose transaction has
// already been rolled back.
func classifyStoreError(err error) error {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, gorm.ErrInvalidDB) || errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
