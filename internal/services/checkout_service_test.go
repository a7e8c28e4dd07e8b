package services_test

import (
	"database/sql/driver"
	"fmt"
	"sync"
	"testing"

	"telemax/internal/models"
	"telemax/internal/repositories"
	"telemax/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithItems(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetItemDetails(orderID uint) ([]models.OrderItemDetail, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderItemDetail), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(id uint, status string, trackingNumber string) error {
	args := m.Called(id, status, trackingNumber)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePayment(id uint, paymentStatus, method, reference string) error {
	args := m.Called(id, paymentStatus, method, reference)
	return args.Error(0)
}

// MockCatalogRepository is a mock implementation of repositories.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetAllProducts() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetProductByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogRepository) CreateProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteProduct(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetParts(partType string) ([]models.Part, error) {
	args := m.Called(partType)
	return args.Get(0).([]models.Part), args.Error(1)
}

func (m *MockCatalogRepository) GetPartByID(id uint) (*models.Part, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockCatalogRepository) CreatePart(part *models.Part) error {
	args := m.Called(part)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdatePart(part *models.Part) error {
	args := m.Called(part)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeletePart(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCatalogRepository) ProductPrices(ids []uint) (map[uint]float64, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

func (m *MockCatalogRepository) PartPrices(ids []uint) (map[uint]float64, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

func uintPtr(v uint) *uint { return &v }

func testBuyer() models.BuyerInfo {
	return models.BuyerInfo{UserID: 1, FullName: "Jess Doe", Address: "1 Main St"}
}

func TestCheckoutService_ProductOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	mockCatalog.On("ProductPrices", []uint{10}).Return(map[uint]float64{10: 19.99}, nil).Once()
	mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()

	var created *models.Order
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Order)
		created.ID = 42
	}).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{ProductID: uintPtr(10), Quantity: 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), result.OrderID)
	assert.Equal(t, 39.98, result.TotalPrice)

	assert.Equal(t, 39.98, created.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, created.Status)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.Len(t, created.Items, 1)
	assert.Equal(t, 2, created.Items[0].Quantity)
	assert.Equal(t, 19.99, created.Items[0].Price)
	assert.Equal(t, uint(10), *created.Items[0].ProductID)
	mockOrders.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
}

func TestCheckoutService_AssemblyOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	mockCatalog.On("ProductPrices", []uint{}).Return(map[uint]float64{}, nil).Once()
	mockCatalog.On("PartPrices", mock.MatchedBy(func(ids []uint) bool {
		return len(ids) == 3
	})).Return(map[uint]float64{1: 5.00, 2: 7.50, 3: 3.25}, nil).Once()

	var created *models.Order
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Order)
		created.ID = 7
	}).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{StarterID: uintPtr(1), RingID: uintPtr(2), TopID: uintPtr(3), Quantity: 1},
	})

	assert.NoError(t, err)
	assert.Equal(t, 15.75, result.TotalPrice)
	assert.Len(t, created.Items, 1)
	assert.Equal(t, 15.75, created.Items[0].Price)
	assert.Nil(t, created.Items[0].ProductID)
	assert.Equal(t, uint(1), *created.Items[0].StarterID)
	mockOrders.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
}

func TestCheckoutService_MissingPartPricesAsZero(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	// Only the starter is referenced; ring and top are absent and contribute
	// zero to the unit price.
	mockCatalog.On("ProductPrices", []uint{}).Return(map[uint]float64{}, nil).Once()
	mockCatalog.On("PartPrices", []uint{5}).Return(map[uint]float64{5: 4.40}, nil).Once()

	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{StarterID: uintPtr(5), Quantity: 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, 8.80, result.TotalPrice)
	mockCatalog.AssertExpectations(t)
}

func TestCheckoutService_UnknownProductPricesAtZero(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	mockCatalog.On("ProductPrices", []uint{999}).Return(map[uint]float64{}, nil).Once()
	mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()

	var created *models.Order
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Order)
	}).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{ProductID: uintPtr(999)},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.00, result.TotalPrice)
	assert.Equal(t, 0.00, created.Items[0].Price)
	mockCatalog.AssertExpectations(t)
}

func TestCheckoutService_QuantityClampedToOne(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	mockCatalog.On("ProductPrices", []uint{10}).Return(map[uint]float64{10: 2.50}, nil).Once()
	mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()

	var created *models.Order
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Order)
	}).Return(nil).Once()

	// Zero, negative and absent quantities all clamp to 1.
	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{ProductID: uintPtr(10), Quantity: 0},
		{ProductID: uintPtr(10), Quantity: -3},
		{ProductID: uintPtr(10)},
	})

	assert.NoError(t, err)
	assert.Equal(t, 7.50, result.TotalPrice)
	for _, item := range created.Items {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestCheckoutService_DeduplicatesPriceLookups(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	// Product 10 is referenced twice but must be looked up once.
	mockCatalog.On("ProductPrices", []uint{10, 11}).Return(map[uint]float64{10: 1.00, 11: 2.00}, nil).Once()
	mockCatalog.On("PartPrices", []uint{4}).Return(map[uint]float64{4: 0.50}, nil).Once()

	var created *models.Order
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Order)
	}).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{ProductID: uintPtr(10)},
		{ProductID: uintPtr(11)},
		{ProductID: uintPtr(10)},
		{StarterID: uintPtr(4), RingID: uintPtr(4)},
	})

	assert.NoError(t, err)
	assert.Equal(t, 5.00, result.TotalPrice)
	assert.Len(t, created.Items, 4)
	mockCatalog.AssertExpectations(t)
}

func TestCheckoutService_RoundsTotalHalfUp(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	mockCatalog.On("ProductPrices", []uint{10}).Return(map[uint]float64{10: 1.115}, nil).Once()
	mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{
		{ProductID: uintPtr(10), Quantity: 1},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1.12, result.TotalPrice)
}

func TestCheckoutService_EmptyItemsCreateZeroTotalOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	mockCatalog.On("ProductPrices", []uint{}).Return(map[uint]float64{}, nil).Once()
	mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()

	var created *models.Order
	mockOrders.On("CreateWithItems", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Order)
	}).Return(nil).Once()

	result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 0.00, result.TotalPrice)
	assert.Empty(t, created.Items)
}

func TestCheckoutService_NilItemsRejected(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	result, err := service.CreateOrder(testBuyer(), nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	mockCatalog.AssertNotCalled(t, "ProductPrices", mock.Anything)
	mockCatalog.AssertNotCalled(t, "PartPrices", mock.Anything)
	mockOrders.AssertNotCalled(t, "CreateWithItems", mock.Anything)
}

func TestCheckoutService_MissingAddressRejected(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCatalog := new(MockCatalogRepository)
	service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

	buyer := models.BuyerInfo{UserID: 1, FullName: "Jess Doe"}
	result, err := service.CreateOrder(buyer, []models.LineItemRequest{{ProductID: uintPtr(10)}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	mockOrders.AssertNotCalled(t, "CreateWithItems", mock.Anything)
}

func TestCheckoutService_StoreErrorClassification(t *testing.T) {
	t.Run("bad connection is StoreUnavailable", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockCatalog := new(MockCatalogRepository)
		service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

		mockCatalog.On("ProductPrices", []uint{10}).Return(map[uint]float64{10: 1.00}, nil).Once()
		mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()
		mockOrders.On("CreateWithItems", mock.Anything).Return(fmt.Errorf("failed to insert order: %w", driver.ErrBadConn)).Once()

		result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{{ProductID: uintPtr(10)}})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, services.ErrStoreUnavailable)
	})

	t.Run("constraint violation is PersistenceError", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockCatalog := new(MockCatalogRepository)
		service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

		mockCatalog.On("ProductPrices", []uint{10}).Return(map[uint]float64{10: 1.00}, nil).Once()
		mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Once()
		mockOrders.On("CreateWithItems", mock.Anything).Return(fmt.Errorf("failed to insert order: NOT NULL constraint failed")).Once()

		result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{{ProductID: uintPtr(10)}})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, services.ErrPersistence)
	})

	t.Run("price lookup failure surfaces without persisting", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockCatalog := new(MockCatalogRepository)
		service := services.NewCheckoutService(mockOrders, mockCatalog, nil)

		mockCatalog.On("ProductPrices", []uint{10}).Return(nil, driver.ErrBadConn).Once()
		mockCatalog.On("PartPrices", []uint{}).Return(map[uint]float64{}, nil).Maybe()

		result, err := service.CreateOrder(testBuyer(), []models.LineItemRequest{{ProductID: uintPtr(10)}})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, services.ErrStoreUnavailable)
		mockOrders.AssertNotCalled(t, "CreateWithItems", mock.Anything)
	})
}

func TestCheckoutService_ConcurrentCheckouts(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	catalogRepo := repositories.NewMockCatalogRepository()
	service := services.NewCheckoutService(orderRepo, catalogRepo, nil)

	assert.NoError(t, catalogRepo.CreateProduct(&models.Product{ID: 10, Name: "Classic 9mm", Price: 19.99, Stock: 5}))
	assert.NoError(t, catalogRepo.CreatePart(&models.Part{ID: 1, Type: models.PartTypeStarter, Price: 5.00}))
	assert.NoError(t, catalogRepo.CreatePart(&models.Part{ID: 2, Type: models.PartTypeRing, Price: 7.50}))
	assert.NoError(t, catalogRepo.CreatePart(&models.Part{ID: 3, Type: models.PartTypeTop, Price: 3.25}))

	var wg sync.WaitGroup
	results := make([]*models.CheckoutResult, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = service.CreateOrder(
			models.BuyerInfo{UserID: 1, Address: "1 Main St"},
			[]models.LineItemRequest{{ProductID: uintPtr(10), Quantity: 2}},
		)
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = service.CreateOrder(
			models.BuyerInfo{UserID: 2, Address: "2 Elm St"},
			[]models.LineItemRequest{{StarterID: uintPtr(1), RingID: uintPtr(2), TopID: uintPtr(3)}},
		)
	}()
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.NotEqual(t, results[0].OrderID, results[1].OrderID)
	assert.Equal(t, 39.98, results[0].TotalPrice)
	assert.Equal(t, 15.75, results[1].TotalPrice)

	// Each persisted order carries its own independently correct total.
	first, err := orderRepo.GetByID(results[0].OrderID)
	assert.NoError(t, err)
	assert.Equal(t, 39.98, first.TotalPrice)
	second, err := orderRepo.GetByID(results[1].OrderID)
	assert.NoError(t, err)
	assert.Equal(t, 15.75, second.TotalPrice)
}
