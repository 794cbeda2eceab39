package service

import (
	"testing"

	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductServiceCreateUpdateDelete(t *testing.T) {
	f := setupCartFixture(t)
	svc := NewProductService(f.productRepo)

	created, err := svc.Create(1, CreateProductInput{
		Name:         " Syltherine ",
		Description:  "Stylish cafe chair",
		Category:     "dining",
		Image:        "/images/syltherine.png",
		Price:        models.MustMoney("2500000"),
		OldPrice:     models.MustMoney("3500000"),
		CountInStock: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Syltherine", created.Name)
	require.NotNil(t, created.CreatedByID)

	updated, err := svc.Update(created.ID, CreateProductInput{
		Name:         "Syltherine",
		Category:     "dining",
		Image:        "/images/syltherine.png",
		Price:        models.MustMoney("2400000"),
		CountInStock: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, "2400000.00", updated.Price.String())
	assert.Equal(t, 0, updated.CountInStock)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(created.ID), ErrProductNotFound)
}

func TestProductServiceRejectsInvalidInput(t *testing.T) {
	f := setupCartFixture(t)
	svc := NewProductService(f.productRepo)

	cases := []CreateProductInput{
		{Category: "living", Image: "/a.png", Price: models.MustMoney("1")},
		{Name: "sofa", Image: "/a.png", Price: models.MustMoney("1")},
		{Name: "sofa", Category: "living", Image: "/a.png", Price: models.MustMoney("-1")},
		{Name: "sofa", Category: "living", Image: "/a.png", Price: models.MustMoney("1"), CountInStock: -2},
		{Name: "sofa", Category: "living", Image: "/a.png", Price: models.MustMoney("1"), Rating: 6},
	}
	for _, input := range cases {
		_, err := svc.Create(0, input)
		assert.ErrorIs(t, err, ErrInvalidProduct, "input=%+v", input)
	}
}

func TestProductServiceListPublicFiltersCategory(t *testing.T) {
	f := setupCartFixture(t)
	svc := NewProductService(f.productRepo)
	f.product(t, "sofa", "150", 3)
	_, err := svc.Create(0, CreateProductInput{Name: "bed", Category: "bedroom", Image: "/bed.png", Price: models.MustMoney("300"), CountInStock: 1})
	require.NoError(t, err)

	items, total, err := svc.ListPublic("bedroom", "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "bed", items[0].Name)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bedroom", "living"}, categories)

	all, _, err := svc.ListAdmin(repository.ProductListFilter{Search: "so"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sofa", all[0].Name)
}
