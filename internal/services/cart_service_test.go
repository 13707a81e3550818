package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MemoryProductRepository) {
	t.Helper()
	productRepo := repositories.NewMemoryProductRepository()
	p := &models.Product{Name: "Laptop", Price: "1200.00", Stock: 10, IsActive: true}
	assert.NoError(t, productRepo.Create(p))
	svc := services.NewCartService(
		repositories.NewMemoryCartRepository(),
		repositories.NewMemoryWishlistRepository(),
		productRepo,
	)
	return svc, productRepo
}

func TestCartService_AddDefaultsQuantityToOne(t *testing.T) {
	svc, _ := newCartFixture(t)

	item, err := svc.AddToCart(1, 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	// Adding again with an explicit quantity merges into the same row.
	item, err = svc.AddToCart(1, 1, 4)
	assert.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestCartService_GetCartJoinsProducts(t *testing.T) {
	svc, _ := newCartFixture(t)
	svc.AddToCart(1, 1, 2)

	cart, err := svc.GetCart(1)
	assert.NoError(t, err)
	assert.Len(t, cart, 1)
	assert.Equal(t, "Laptop", cart[0].Product.Name)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestCartService_GetCartDropsDanglingRows(t *testing.T) {
	svc, productRepo := newCartFixture(t)
	svc.AddToCart(1, 1, 2)

	// Deleting the product leaves the cart row dangling; the joined view
	// drops it silently instead of erroring.
	assert.NoError(t, productRepo.Delete(1))
	cart, err := svc.GetCart(1)
	assert.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCartService_WishlistJoinsAndDropsDangling(t *testing.T) {
	svc, productRepo := newCartFixture(t)

	_, err := svc.AddToWishlist(1, 1)
	assert.NoError(t, err)
	// Idempotent: a second add does not create a second row.
	_, err = svc.AddToWishlist(1, 1)
	assert.NoError(t, err)

	wishlist, err := svc.GetWishlist(1)
	assert.NoError(t, err)
	assert.Len(t, wishlist, 1)
	assert.Equal(t, "Laptop", wishlist[0].Product.Name)

	assert.NoError(t, productRepo.Delete(1))
	wishlist, err = svc.GetWishlist(1)
	assert.NoError(t, err)
	assert.Empty(t, wishlist)
}
