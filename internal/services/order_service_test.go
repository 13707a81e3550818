package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderEvent(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

type orderFixture struct {
	svc         *services.OrderService
	productRepo *repositories.MemoryProductRepository
	cartRepo    *repositories.MemoryCartRepository
	publisher   *MockEventPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	productRepo := repositories.NewMemoryProductRepository()
	products := []models.Product{
		{Name: "Headphones", Price: "299.99", Stock: 25, IsActive: true},
		{Name: "Watch", Price: "199.99", Stock: 30, IsActive: true},
	}
	for i := range products {
		assert.NoError(t, productRepo.Create(&products[i]))
	}

	cartRepo := repositories.NewMemoryCartRepository()
	publisher := new(MockEventPublisher)
	svc := services.NewOrderService(
		repositories.NewMemoryOrderRepository(),
		productRepo,
		cartRepo,
		repositories.NewMemoryCategoryRepository(),
		publisher,
	)
	return &orderFixture{svc: svc, productRepo: productRepo, cartRepo: cartRepo, publisher: publisher}
}

func TestOrderService_CreateOrderComputesTotalAndClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	f.cartRepo.Add(1, 1, 2)
	f.cartRepo.Add(1, 2, 1)
	f.publisher.On("PublishOrderEvent", "order.created", mock.Anything).Return(nil).Once()

	order, err := f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, "799.97", order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// The buyer's cart is cleared as part of checkout.
	items, _ := f.cartRepo.GetByUser(1)
	assert.Empty(t, items)
	f.publisher.AssertExpectations(t)
}

func TestOrderService_PriceSnapshotDecoupledFromLivePrice(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	order, err := f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 1, Quantity: 1}})
	assert.NoError(t, err)

	// Reprice the live product after the order exists.
	newPrice := "1.00"
	_, err = f.productRepo.Update(1, models.ProductUpdate{Price: &newPrice})
	assert.NoError(t, err)

	withItems, err := f.svc.GetOrderWithItems(order.ID)
	assert.NoError(t, err)
	assert.Len(t, withItems.Items, 1)
	assert.Equal(t, "299.99", withItems.Items[0].Price)
	assert.Equal(t, "299.99", withItems.Order.Total)
	// The joined product reflects the live price.
	assert.Equal(t, "1.00", withItems.Items[0].Product.Price)
}

func TestOrderService_CreateOrderRejections(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.CreateOrder(1, "1 Main St", "card", nil)
	assert.ErrorIs(t, err, services.ErrEmptyOrder)

	_, err = f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 99, Quantity: 1}})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 1, Quantity: 26}})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	// No order was persisted by any of the failed attempts.
	orders, _ := f.svc.GetAllOrders()
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrderWithoutPublisher(t *testing.T) {
	f := newOrderFixture(t)
	svc := services.NewOrderService(
		repositories.NewMemoryOrderRepository(),
		f.productRepo,
		f.cartRepo,
		repositories.NewMemoryCategoryRepository(),
		nil,
	)

	// A nil publisher disables events without affecting the order flow.
	order, err := svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 1, Quantity: 1}})
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestOrderService_GetOrderDropsDanglingItems(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	order, err := f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	})
	assert.NoError(t, err)

	assert.NoError(t, f.productRepo.Delete(2))
	withItems, err := f.svc.GetOrderWithItems(order.ID)
	assert.NoError(t, err)
	assert.Len(t, withItems.Items, 1)
	assert.Equal(t, 1, withItems.Items[0].ProductID)
}

func TestOrderService_UpdateStatusPublishes(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.On("PublishOrderEvent", "order.created", mock.Anything).Return(nil).Once()
	f.publisher.On("PublishOrderEvent", "order.status_updated", mock.Anything).Return(nil).Once()

	order, err := f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 1, Quantity: 1}})
	assert.NoError(t, err)

	updated, err := f.svc.UpdateOrderStatus(order.ID, models.OrderStatusShipped)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	f.publisher.AssertExpectations(t)

	_, err = f.svc.UpdateOrderStatus(99, models.OrderStatusShipped)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_Stats(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 1, Quantity: 2}})
	assert.NoError(t, err)
	_, err = f.svc.CreateOrder(2, "2 Side St", "paypal", []services.OrderLine{{ProductID: 2, Quantity: 1}})
	assert.NoError(t, err)
	_, err = f.svc.CreateOrder(1, "1 Main St", "card", []services.OrderLine{{ProductID: 2, Quantity: 1}})
	assert.NoError(t, err)

	stats, err := f.svc.Stats()
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 0, stats.TotalCategories)
	assert.Equal(t, "999.96", stats.Revenue)
	assert.Equal(t, 2, stats.TotalCustomers)
}
