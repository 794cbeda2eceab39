package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                   // 主键
	Name         string         `gorm:"type:varchar(200);not null;index" json:"name"`           // 名称
	Description  string         `gorm:"type:text;not null" json:"description"`                  // 描述
	Category     string         `gorm:"type:varchar(80);not null;index" json:"category"`        // 分类
	Price        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 售价
	OldPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"old_price"` // 划线价
	Brand        string         `gorm:"type:varchar(120);default:''" json:"brand"`              // 品牌
	Image        string         `gorm:"type:varchar(500);not null" json:"image"`                // 主图
	CountInStock int            `gorm:"not null;default:0" json:"count_in_stock"`               // 库存
	Rating       float64        `gorm:"not null;default:0" json:"rating"`                       // 评分
	NumReviews   int            `gorm:"not null;default:0" json:"num_reviews"`                  // 评价数
	CreatedByID  *uint          `gorm:"index" json:"created_by_id,omitempty"`                   // 创建人
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
