package repository

import (
	"context"
	"errors"

	"github.com/furniro/storefront/internal/models"

	"gorm.io/gorm"
)

// ErrCartNotInitialized 用户从未创建过购物车
var ErrCartNotInitialized = errors.New("cart not initialized")

// CartRepository 服务端购物车存储接口（每个用户一个购物车）
type CartRepository interface {
	Get(ctx context.Context, userID uint) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error)
	UpsertItem(ctx context.Context, userID uint, item models.CartItem) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uint, productID uint) (*models.Cart, error)
	Clear(ctx context.Context, userID uint) (*models.Cart, error)
}

// GormCartRepository GORM 实现（carts + cart_items）
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Get 获取购物车，不存在时返回 nil
func (r *GormCartRepository) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	return findCart(r.db.WithContext(ctx), userID)
}

// GetOrCreate 获取购物车，不存在时创建空购物车
func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	if _, err := ensureCart(db, userID); err != nil {
		return nil, err
	}
	return findCart(db, userID)
}

// UpsertItem 存在同商品时覆盖数量与快照字段，否则追加到末尾
func (r *GormCartRepository) UpsertItem(ctx context.Context, userID uint, item models.CartItem) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		cart, err := ensureCart(tx, userID)
		if err != nil {
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, item.ProductID).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Updates(map[string]interface{}{
				"name":           item.Name,
				"image":          item.Image,
				"price":          item.Price,
				"quantity":       item.Quantity,
				"count_in_stock": item.CountInStock,
				"category":       item.Category,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var maxPosition int
		if err := tx.Model(&models.CartItem{}).
			Where("cart_id = ?", cart.ID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		row := models.CartItem{
			CartID:       cart.ID,
			ProductID:    item.ProductID,
			Name:         item.Name,
			Image:        item.Image,
			Price:        item.Price,
			Quantity:     item.Quantity,
			CountInStock: item.CountInStock,
			Category:     item.Category,
			Position:     maxPosition + 1,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return findCart(db, userID)
}

// RemoveItem 删除购物车项，商品不在购物车中时不做任何修改
func (r *GormCartRepository) RemoveItem(ctx context.Context, userID uint, productID uint) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	cart, err := findCart(db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotInitialized
	}
	if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return findCart(db, userID)
}

// Clear 清空购物车
func (r *GormCartRepository) Clear(ctx context.Context, userID uint) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	cart, err := findCart(db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotInitialized
	}
	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return cart, nil
}

func ensureCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func findCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items", func(q *gorm.DB) *gorm.DB {
		return q.Order("position ASC, id ASC")
	}).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}
