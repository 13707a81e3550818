package services

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for carts and wishlists. Joined views
// silently drop rows whose product has since been deleted; dangling
// references are dropped, not errored.
type CartService struct {
	cartRepo     repositories.CartRepository
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// GetCart returns the user's cart rows joined with their product records.
func (s *CartService) GetCart(userID int) ([]models.CartItemWithProduct, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	joined := make([]models.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		joined = append(joined, models.CartItemWithProduct{CartItem: item, Product: *product})
	}
	return joined, nil
}

// AddToCart adds a product to the user's cart, incrementing the existing row
// for the pair when there is one. An unspecified or non-positive quantity
// defaults to 1.
func (s *CartService) AddToCart(userID, productID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.cartRepo.Add(userID, productID, quantity)
}

// SetQuantity overwrites a cart row's quantity.
func (s *CartService) SetQuantity(id, quantity int) (*models.CartItem, error) {
	return s.cartRepo.UpdateQuantity(id, quantity)
}

// RemoveFromCart removes a cart row by its ID.
func (s *CartService) RemoveFromCart(id int) error {
	return s.cartRepo.Remove(id)
}

// ClearCart removes all of the user's cart rows.
func (s *CartService) ClearCart(userID int) error {
	return s.cartRepo.ClearUser(userID)
}

// GetWishlist returns the user's wishlist rows joined with their products.
func (s *CartService) GetWishlist(userID int) ([]models.WishlistItemWithProduct, error) {
	items, err := s.wishlistRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	joined := make([]models.WishlistItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		joined = append(joined, models.WishlistItemWithProduct{WishlistItem: item, Product: *product})
	}
	return joined, nil
}

// AddToWishlist adds a product to the user's wishlist. Adding a product that
// is already wished is a no-op returning the existing row.
func (s *CartService) AddToWishlist(userID, productID int) (*models.WishlistItem, error) {
	return s.wishlistRepo.Add(userID, productID)
}

// RemoveFromWishlist removes the wishlist row for the given product.
func (s *CartService) RemoveFromWishlist(userID, productID int) error {
	return s.wishlistRepo.RemoveByProduct(userID, productID)
}
