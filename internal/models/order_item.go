package models

import (
	"time"
)

// OrderItem 订单项表（购物车项的深拷贝）
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	OrderID   uint      `gorm:"index;not null" json:"-"`                            // 订单ID
	ProductID uint      `gorm:"index;not null" json:"product"`                      // 商品ID
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`             // 名称快照
	Image     string    `gorm:"type:varchar(500)" json:"image"`                     // 图片快照
	Category  string    `gorm:"type:varchar(80)" json:"category"`                   // 分类快照
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Quantity  int       `gorm:"not null" json:"qty"`                                // 数量
	CreatedAt time.Time `json:"created_at"`                                         // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
