package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// Orders and their items live behind the same mutex so an order and its
// items are created as a unit; no reader can observe the order without them.
type MemoryOrderRepository struct {
	orders     map[int]models.Order
	items      map[int]models.OrderItem
	nextID     int
	nextItemID int
	mu         sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:     make(map[int]models.Order),
		items:      make(map[int]models.OrderItem),
		nextID:     1,
		nextItemID: 1,
	}
}

// GetAll returns all orders in insertion order.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, o)
	}
	sortOrders(list)
	return list, nil
}

// GetByUser returns a user's orders in insertion order.
func (r *MemoryOrderRepository) GetByUser(userID int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			list = append(list, o)
		}
	}
	sortOrders(list)
	return list, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id int) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetItems returns the item rows of an order in insertion order.
func (r *MemoryOrderRepository) GetItems(orderID int) ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.OrderItem{}
	for _, item := range r.items {
		if item.OrderID == orderID {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Create assigns an order ID, defaults the status to pending when empty,
// stamps the creation time, and inserts the order together with all of its
// item rows under one lock.
func (r *MemoryOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = *order

	for i := range items {
		items[i].ID = r.nextItemID
		r.nextItemID++
		items[i].OrderID = order.ID
		r.items[items[i].ID] = items[i]
	}
	return nil
}

// UpdateStatus overwrites an order's status. Any status may replace any
// other; transitions are deliberately not validated.
func (r *MemoryOrderRepository) UpdateStatus(id int, status string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	order.Status = status
	r.orders[id] = order
	return &order, nil
}

func sortOrders(list []models.Order) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
