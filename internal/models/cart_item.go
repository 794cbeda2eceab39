package models

import (
	"time"
)

// Cart 用户购物车（每个用户唯一）
type Cart struct {
	ID        uint       `gorm:"primarykey" json:"id"`             // 主键
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user"` // 用户ID
	CreatedAt time.Time  `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time  `json:"updated_at"`                       // 更新时间
	Items     []CartItem `gorm:"foreignKey:CartID" json:"cart_items"`
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项，商品信息为加入时的快照
type CartItem struct {
	ID           uint      `gorm:"primarykey" json:"-"`                                  // 主键
	CartID       uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"-"`       // 购物车ID
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product"` // 商品ID
	Name         string    `gorm:"type:varchar(200)" json:"name"`                        // 名称快照
	Image        string    `gorm:"type:varchar(500)" json:"image"`                       // 图片快照
	Price        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`   // 单价快照
	Quantity     int       `gorm:"not null;default:1" json:"qty"`                        // 数量
	CountInStock int       `gorm:"not null;default:0" json:"count_in_stock"`             // 库存快照
	Category     string    `gorm:"type:varchar(80)" json:"category"`                     // 分类快照
	Position     int       `gorm:"not null;default:0" json:"-"`                          // 加入顺序
	CreatedAt    time.Time `json:"created_at"`                                           // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
