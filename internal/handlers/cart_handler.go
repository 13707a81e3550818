package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// CartHandler handles HTTP requests for carts and wishlists. All routes
// operate on the authenticated principal's rows.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart and wishlist routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cart := router.Group("/cart", authRequired)
	cart.Get("/", h.HandleGetCart)
	cart.Post("/", h.HandleAddToCart)
	cart.Put("/:id", h.HandleUpdateCartItem)
	cart.Delete("/:id", h.HandleRemoveFromCart)
	cart.Delete("/", h.HandleClearCart)

	wishlist := router.Group("/wishlist", authRequired)
	wishlist.Get("/", h.HandleGetWishlist)
	wishlist.Post("/", h.HandleAddToWishlist)
	wishlist.Delete("/:productId", h.HandleRemoveFromWishlist)
}

// HandleGetCart returns the caller's cart rows joined with their products.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.GetCart(middleware.Principal(c).ID)
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(items)
}

// AddToCartRequest represents the request body for adding to the cart.
// Quantity is optional and defaults to 1.
type AddToCartRequest struct {
	ProductID int `json:"productId" validate:"required"`
	Quantity  int `json:"quantity"`
}

// HandleAddToCart adds a product to the caller's cart, incrementing the
// existing row when the product is already in it.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item data",
		})
	}

	item, err := h.service.AddToCart(middleware.Principal(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateCartItemRequest represents the request body for a quantity update.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// HandleUpdateCartItem overwrites a cart row's quantity. A non-positive
// quantity removes the row; that policy lives here, not in the repository.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item id",
		})
	}

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity is required",
		})
	}

	if *req.Quantity <= 0 {
		if err := h.service.RemoveFromCart(id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "Cart item not found",
				})
			}
			log.Printf("Error removing cart item %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not remove cart item",
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}

	item, err := h.service.SetQuantity(id, *req.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error updating cart item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
		})
	}
	return c.JSON(item)
}

// HandleRemoveFromCart removes a single cart row.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item id",
		})
	}

	if err := h.service.RemoveFromCart(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error removing cart item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClearCart removes all of the caller's cart rows.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(middleware.Principal(c).ID); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetWishlist returns the caller's wishlist joined with products.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	items, err := h.service.GetWishlist(middleware.Principal(c).ID)
	if err != nil {
		log.Printf("Error getting wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
		})
	}
	return c.JSON(items)
}

// AddToWishlistRequest represents the request body for a wishlist add.
type AddToWishlistRequest struct {
	ProductID int `json:"productId" validate:"required"`
}

// HandleAddToWishlist adds a product to the caller's wishlist. The add is
// idempotent: wishing an already-wished product returns the existing row.
func (h *CartHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req AddToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid wishlist data",
		})
	}

	item, err := h.service.AddToWishlist(middleware.Principal(c).ID, req.ProductID)
	if err != nil {
		log.Printf("Error adding to wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to wishlist",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemoveFromWishlist removes the wishlist row for a product.
func (h *CartHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	if err := h.service.RemoveFromWishlist(middleware.Principal(c).ID, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Wishlist item not found",
			})
		}
		log.Printf("Error removing from wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from wishlist",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
