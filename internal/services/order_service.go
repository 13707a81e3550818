package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// EventPublisher publishes order lifecycle events. A nil publisher disables
// publication; the order flow never depends on a broker being reachable.
type EventPublisher interface {
	PublishOrderEvent(routingKey string, body []byte) error
}

// ErrEmptyOrder is returned when an order is submitted without items.
var ErrEmptyOrder = errors.New("order has no items")

// ErrInsufficientStock is returned when a requested quantity exceeds the
// product's current stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderLine is a requested order position. The unit price is resolved
// server-side from the live product at creation time.
type OrderLine struct {
	ProductID int `json:"productId" validate:"required"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	cartRepo     repositories.CartRepository
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
}

// NewOrderService creates a new OrderService. The publisher may be nil.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	cartRepo repositories.CartRepository,
	categoryRepo repositories.CategoryRepository,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// GetAllOrders retrieves every order in the store.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetUserOrders retrieves the orders placed by one user.
func (s *OrderService) GetUserOrders(userID int) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderWithItems retrieves an order joined with its item rows and their
// products. Items whose product has since been deleted are dropped.
func (s *OrderService) GetOrderWithItems(id int) (*models.OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}

	joined := make([]models.OrderItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		joined = append(joined, models.OrderItemWithProduct{OrderItem: item, Product: *product})
	}
	return &models.OrderWithItems{Order: *order, Items: joined}, nil
}

// CreateOrder resolves each line's product, snapshots its unit price,
// computes the total, persists the order and its items as a unit, and clears
// the buyer's cart. Submitting the order again cannot double the rows: the
// cart is empty once this returns.
func (s *OrderService) CreateOrder(userID int, shippingAddress, paymentMethod string, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, err)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
				product.Name, line.Quantity, product.Stock, ErrInsufficientStock)
		}

		price, err := decimal.NewFromString(product.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d has unparseable price %q: %w", product.ID, product.Price, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Total:           total.StringFixed(2),
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
	}
	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.ClearUser(userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %d after order %d: %v", userID, order.ID, err)
	}

	s.publish("order.created", map[string]interface{}{
		"orderId": order.ID,
		"userId":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	})

	return order, nil
}

// UpdateOrderStatus overwrites an order's status. Any transition is
// permitted; only membership in the fixed status set is checked by the
// handler.
func (s *OrderService) UpdateOrderStatus(id int, status string) (*models.Order, error) {
	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	s.publish("order.status_updated", map[string]interface{}{
		"orderId": order.ID,
		"status":  order.Status,
	})

	return order, nil
}

// StoreStats aggregates storefront counters for the admin dashboard.
type StoreStats struct {
	TotalProducts   int    `json:"totalProducts"`
	TotalOrders     int    `json:"totalOrders"`
	TotalCategories int    `json:"totalCategories"`
	Revenue         string `json:"revenue"`
	TotalCustomers  int    `json:"totalCustomers"`
}

// Stats computes active product, order and category counts, the revenue sum
// over all order totals, and the number of distinct customers.
func (s *OrderService) Stats() (*StoreStats, error) {
	products, err := s.productRepo.GetAll(nil)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	customers := make(map[int]bool)
	for _, order := range orders {
		total, err := decimal.NewFromString(order.Total)
		if err != nil {
			return nil, fmt.Errorf("order %d has unparseable total %q: %w", order.ID, order.Total, err)
		}
		revenue = revenue.Add(total)
		customers[order.UserID] = true
	}

	return &StoreStats{
		TotalProducts:   len(products),
		TotalOrders:     len(orders),
		TotalCategories: len(categories),
		Revenue:         revenue.StringFixed(2),
		TotalCustomers:  len(customers),
	}, nil
}

func (s *OrderService) publish(routingKey string, event map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.PublishOrderEvent(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
