package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }

func seedProducts(t *testing.T) *repositories.MemoryProductRepository {
	t.Helper()
	repo := repositories.NewMemoryProductRepository()
	products := []models.Product{
		{Name: "Laptop", Description: strptr("High performance laptop"), Price: "1200.00", Stock: 10, CategoryID: intptr(1), IsActive: true},
		{Name: "Keyboard", Description: strptr("Mechanical keyboard"), Price: "75.00", Stock: 25, CategoryID: intptr(1), IsActive: true},
		{Name: "Backpack", Description: strptr("Durable travel gear"), Price: "89.99", Stock: 40, CategoryID: intptr(2), IsActive: true},
		{Name: "Retired Mouse", Price: "25.00", Stock: 0, CategoryID: intptr(1), IsActive: false},
	}
	for i := range products {
		assert.NoError(t, repo.Create(&products[i]))
	}
	return repo
}

func TestProductRepository_GetAllActiveOnlyInsertionOrder(t *testing.T) {
	repo := seedProducts(t)

	products, err := repo.GetAll(nil)
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{products[0].ID, products[1].ID, products[2].ID})
}

func TestProductRepository_GetAllCategoryFilter(t *testing.T) {
	repo := seedProducts(t)

	products, err := repo.GetAll(intptr(1))
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.GetAll(intptr(99))
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_GetByIDIncludesInactive(t *testing.T) {
	repo := seedProducts(t)

	product, err := repo.GetByID(4)
	assert.NoError(t, err)
	assert.False(t, product.IsActive)

	_, err = repo.GetByID(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductRepository_Search(t *testing.T) {
	repo := seedProducts(t)

	// Case-insensitive match on name.
	products, err := repo.Search("LAPTOP")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Laptop", products[0].Name)

	// Match on description only.
	products, err = repo.Search("travel")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Backpack", products[0].Name)

	// Inactive products never match, even by name.
	products, err = repo.Search("mouse")
	assert.NoError(t, err)
	assert.Empty(t, products)

	// No match is an empty list, not an error.
	products, err = repo.Search("zzzzz")
	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_UpdateMerges(t *testing.T) {
	repo := seedProducts(t)

	updated, err := repo.Update(1, models.ProductUpdate{Price: strptr("999.00"), Stock: intptr(5)})
	assert.NoError(t, err)
	assert.Equal(t, "999.00", updated.Price)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, "High performance laptop", *updated.Description)

	inactive := false
	updated, err = repo.Update(1, models.ProductUpdate{IsActive: &inactive})
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)

	products, _ := repo.GetAll(nil)
	assert.Len(t, products, 2)

	_, err = repo.Update(99, models.ProductUpdate{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductRepository_DeleteIsHard(t *testing.T) {
	repo := seedProducts(t)

	assert.NoError(t, repo.Delete(1))
	_, err := repo.GetByID(1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(1), repositories.ErrNotFound)

	// The freed ID is not reused.
	p := &models.Product{Name: "New", Price: "1.00", IsActive: true}
	assert.NoError(t, repo.Create(p))
	assert.Equal(t, 5, p.ID)
}
