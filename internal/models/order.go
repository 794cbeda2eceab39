package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（下单后不可变，仅支付/发货状态可由管理员推进）
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user"`                                  // 用户ID
	Address       string         `gorm:"type:varchar(255);not null" json:"-"`                         // 收货地址
	City          string         `gorm:"type:varchar(120);not null" json:"-"`                         // 城市
	PostalCode    string         `gorm:"type:varchar(40);not null" json:"-"`                          // 邮编
	Country       string         `gorm:"type:varchar(120);not null" json:"-"`                         // 国家
	PaymentMethod string         `gorm:"type:varchar(40);not null" json:"payment_method"`             // 支付方式
	ItemsPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`    // 商品小计
	ShippingPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"` // 运费
	TaxPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`      // 税费
	TotalPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`    // 合计
	IsPaid        bool           `gorm:"not null;default:false;index" json:"is_paid"`                 // 是否已支付
	PaidAt        *time.Time     `gorm:"index" json:"paid_at"`                                        // 支付时间
	IsDelivered   bool           `gorm:"not null;default:false;index" json:"is_delivered"`            // 是否已发货
	DeliveredAt   *time.Time     `json:"delivered_at"`                                                // 发货时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ShippingAddress 返回订单收货地址
func (o Order) ShippingAddress() ShippingAddress {
	return ShippingAddress{
		Address:    o.Address,
		City:       o.City,
		PostalCode: o.PostalCode,
		Country:    o.Country,
	}
}
