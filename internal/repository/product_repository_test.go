package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/furniro/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, name, category, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:         name,
		Description:  name + " description",
		Category:     category,
		Price:        models.MustMoney(price),
		Image:        "/images/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".png",
		CountInStock: stock,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo := NewProductRepository(openRepositoryTestDB(t))
	createTestProduct(t, repo, "Syltherine", "chairs", "250", 5)
	createTestProduct(t, repo, "Leviosa", "chairs", "120", 0)
	createTestProduct(t, repo, "Lolito Sofa", "sofas", "700", 3)

	rows, total, err := repo.List(ProductListFilter{Category: "chairs", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 chairs, got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ProductListFilter{Category: "chairs", OnlyInStock: true})
	if err != nil {
		t.Fatalf("list in stock failed: %v", err)
	}
	if total != 1 || rows[0].Name != "Syltherine" {
		t.Fatalf("expected only Syltherine in stock, got %+v", rows)
	}

	rows, _, err = repo.List(ProductListFilter{Search: "sofa"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Lolito Sofa" {
		t.Fatalf("expected sofa search hit, got %+v", rows)
	}

	rows, total, err = repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(rows) != 1 {
		t.Fatalf("expected page 2 with one row, got total=%d len=%d", total, len(rows))
	}
}

func TestProductRepositoryGetAndDelete(t *testing.T) {
	repo := NewProductRepository(openRepositoryTestDB(t))
	product := createTestProduct(t, repo, "Grifo", "lamps", "150", 4)

	got, err := repo.GetByID(product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Price.String() != "150.00" {
		t.Fatalf("price want 150.00 got %s", got.Price.String())
	}

	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	got, err = repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get deleted product failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted product should not be returned")
	}

	missing, err := repo.GetByID(9999)
	if err != nil || missing != nil {
		t.Fatalf("missing product should return nil,nil got %v %v", missing, err)
	}
}

func TestProductRepositoryListCategories(t *testing.T) {
	repo := NewProductRepository(openRepositoryTestDB(t))
	createTestProduct(t, repo, "Respira", "tables", "500", 1)
	createTestProduct(t, repo, "Potty", "chairs", "80", 1)
	createTestProduct(t, repo, "Muggo", "chairs", "90", 1)

	categories, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "chairs" || categories[1] != "tables" {
		t.Fatalf("unexpected categories: %v", categories)
	}
}
