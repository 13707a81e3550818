package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders, payment processing and the
// admin stats endpoint.
type OrderHandler struct {
	service   *services.OrderService
	processor services.PaymentProcessor
	validate  *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, processor services.PaymentProcessor) *OrderHandler {
	return &OrderHandler{
		service:   service,
		processor: processor,
		validate:  validator.New(),
	}
}

// RegisterRoutes registers the order, payment and admin stats routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	orders := router.Group("/orders", authRequired)
	orders.Get("/", h.HandleGetOrders)
	orders.Get("/:id", h.HandleGetOrder)
	orders.Post("/", h.HandleCreateOrder)
	orders.Put("/:id/status", adminRequired, h.HandleUpdateOrderStatus)

	router.Get("/admin/stats", authRequired, adminRequired, h.HandleStats)
	router.Post("/payment/process", authRequired, h.HandleProcessPayment)
}

// HandleGetOrders returns the caller's orders, or every order for admins.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	var (
		orders []models.Order
		err    error
	)
	if principal.IsAdmin {
		orders, err = h.service.GetAllOrders()
	} else {
		orders, err = h.service.GetUserOrders(principal.ID)
	}
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleGetOrder returns a single order with its items. Non-admin callers
// may only view their own orders.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	order, err := h.service.GetOrderWithItems(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}

	principal := middleware.Principal(c)
	if !principal.IsAdmin && order.UserID != principal.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
		})
	}
	return c.JSON(order)
}

// CreateOrderRequest represents the request body for order creation. Item
// prices are not accepted from the client; the server snapshots the live
// product price for each line.
type CreateOrderRequest struct {
	ShippingAddress string               `json:"shippingAddress" validate:"required"`
	PaymentMethod   string               `json:"paymentMethod" validate:"required"`
	Items           []services.OrderLine `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder creates an order from the submitted lines and clears the
// caller's cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order data",
		})
	}

	order, err := h.service.CreateOrder(middleware.Principal(c).ID, req.ShippingAddress, req.PaymentMethod, req.Items)
	if err != nil {
		if errors.Is(err, services.ErrEmptyOrder) ||
			errors.Is(err, services.ErrInsufficientStock) ||
			errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order data",
			})
		}
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrderStatusRequest represents the request body for a status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus overwrites an order's status. The status must be
// one of the fixed set, but any transition between members is allowed.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil || !models.OrderStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status",
		})
	}

	order, err := h.service.UpdateOrderStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error updating status of order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
		})
	}
	return c.JSON(order)
}

// HandleStats returns aggregate storefront counters.
func (h *OrderHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		log.Printf("Error computing stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute stats",
		})
	}
	return c.JSON(stats)
}

// PaymentRequest represents the request body for payment processing.
type PaymentRequest struct {
	Amount        string `json:"amount" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// HandleProcessPayment charges through the configured payment processor.
func (h *OrderHandler) HandleProcessPayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid payment data",
		})
	}

	result, err := h.processor.Charge(c.UserContext(), req.Amount, req.PaymentMethod)
	if err != nil {
		log.Printf("Error processing payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Payment processing failed",
		})
	}
	return c.JSON(result)
}
