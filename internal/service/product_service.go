package service

import (
	"strings"

	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	Name         string
	Description  string
	Category     string
	Brand        string
	Image        string
	Price        models.Money
	OldPrice     models.Money
	CountInStock int
	Rating       float64
	NumReviews   int
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: category,
		Search:   search,
	})
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// ListCategories 获取商品分类
func (s *ProductService) ListCategories() ([]string, error) {
	return s.repo.ListCategories()
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(operatorID uint, input CreateProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if operatorID != 0 {
		product.CreatedByID = &operatorID
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "operator_id", operatorID)
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func applyProductInput(product *models.Product, input CreateProductInput) error {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	image := strings.TrimSpace(input.Image)
	if name == "" || category == "" || image == "" {
		return ErrInvalidProduct
	}
	if input.Price.IsNegative() || input.OldPrice.IsNegative() || input.CountInStock < 0 {
		return ErrInvalidProduct
	}
	if input.Rating < 0 || input.Rating > 5 || input.NumReviews < 0 {
		return ErrInvalidProduct
	}
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Category = category
	product.Brand = strings.TrimSpace(input.Brand)
	product.Image = image
	product.Price = input.Price
	product.OldPrice = input.OldPrice
	product.CountInStock = input.CountInStock
	product.Rating = input.Rating
	product.NumReviews = input.NumReviews
	return nil
}
